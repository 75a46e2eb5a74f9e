package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"pagesync/internal/align"
	"pagesync/internal/chapter"
	"pagesync/internal/logging"
	"pagesync/internal/phash"
)

// Options tunes one alignment run.
type Options struct {
	// Threshold is the maximum accepted pairing distance; negative falls
	// back to align.DefaultThreshold. Zero is a valid, maximally strict
	// threshold: only identical fingerprints pair.
	Threshold int
	// HashSize controls fingerprint resolution; zero means the default.
	HashSize int
	// Workers bounds the fingerprinting pool; zero means one per CPU.
	Workers int
}

func (o Options) threshold() int {
	if o.Threshold < 0 {
		return align.DefaultThreshold
	}
	return o.Threshold
}

// Run is the outcome of aligning two chapter archives, including the raw
// page payloads so downstream consumers (the remapper) can re-apply the
// alignment without re-reading the archives.
type Run struct {
	Result align.Result
	PagesA []chapter.Page
	PagesB []chapter.Page
}

// AlignArchives reads both chapter archives, fingerprints their pages in
// parallel, and computes the alignment.
func AlignArchives(ctx context.Context, pathA, pathB string, opts Options, logger *slog.Logger) (*Run, error) {
	logger = logging.NewComponentLogger(logger, "pipeline")

	pagesA, err := chapter.ReadPages(pathA)
	if err != nil {
		return nil, err
	}
	pagesB, err := chapter.ReadPages(pathB)
	if err != nil {
		return nil, err
	}

	analyzeOpts := phash.AnalyzeOptions{HashSize: opts.HashSize, Workers: opts.Workers}
	seqA := phash.AnalyzeChapter(ctx, toSources(pagesA), analyzeOpts, logger)
	seqB := phash.AnalyzeChapter(ctx, toSources(pagesB), analyzeOpts, logger)
	logger.Info("fingerprinted chapters",
		logging.Args(
			logging.String("file_a", pathA),
			logging.Int("pages_a", len(seqA)),
			logging.String("file_b", pathB),
			logging.Int("pages_b", len(seqB)),
		)...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := align.Align(seqA, seqB, opts.threshold())
	if err != nil {
		return nil, fmt.Errorf("align %s with %s: %w", pathA, pathB, err)
	}

	return &Run{
		Result: align.NewResult(pathA, pathB, len(seqA), len(seqB), entries),
		PagesA: pagesA,
		PagesB: pagesB,
	}, nil
}

func toSources(pages []chapter.Page) []phash.Source {
	sources := make([]phash.Source, len(pages))
	for i, page := range pages {
		sources[i] = phash.Source{Name: page.Name, Data: page.Data}
	}
	return sources
}
