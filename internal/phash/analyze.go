package phash

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"pagesync/internal/logging"
)

// Source is one raw page awaiting fingerprinting.
type Source struct {
	Name string
	Data []byte
}

// PageFingerprint describes one fingerprinted page. Index is the page's
// zero-based position in its own sequence, assigned from the input order and
// never reassigned: a page that fails to decode leaves a hole rather than
// shifting its successors.
type PageFingerprint struct {
	Index    int    `json:"index"`
	Filename string `json:"filename"`
	Digest   Digest `json:"phash"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// AnalyzeOptions tunes chapter fingerprinting.
type AnalyzeOptions struct {
	// HashSize controls digest resolution; zero means DefaultHashSize.
	HashSize int
	// Workers bounds the pool; zero means one worker per CPU.
	Workers int
}

// AnalyzeChapter fingerprints every page of a chapter on a bounded worker
// pool. Results come back in original page order regardless of completion
// order. Pages that fail to decode are logged and omitted; they never reach
// the aligner. Cancellation stops scheduling new pages but already-started
// pages finish.
func AnalyzeChapter(ctx context.Context, sources []Source, opts AnalyzeOptions, logger *slog.Logger) []PageFingerprint {
	logger = logging.NewComponentLogger(logger, "phash")

	hashSize := opts.HashSize
	if hashSize == 0 {
		hashSize = DefaultHashSize
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(sources) {
		workers = len(sources)
	}
	if len(sources) == 0 {
		return nil
	}

	// Completion order is arbitrary; the slot array keyed by input index
	// restores the canonical order the aligner depends on.
	slots := make([]*PageFingerprint, len(sources))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				src := sources[idx]
				digest, width, height, err := Compute(src.Data, hashSize)
				if err != nil {
					logger.Warn("failed to fingerprint page",
						logging.Args(
							logging.String("page", src.Name),
							logging.Error(err),
						)...)
					continue
				}
				slots[idx] = &PageFingerprint{
					Index:    idx,
					Filename: src.Name,
					Digest:   digest,
					Width:    width,
					Height:   height,
				}
			}
		}()
	}

dispatch:
	for idx := range sources {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	result := make([]PageFingerprint, 0, len(sources))
	for _, fp := range slots {
		if fp != nil {
			result = append(result, *fp)
		}
	}
	return result
}
