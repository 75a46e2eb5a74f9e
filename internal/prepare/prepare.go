package prepare

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"pagesync/internal/align"
	"pagesync/internal/chapter"
	"pagesync/internal/logging"
	"pagesync/internal/pipeline"
)

// Options tunes chapter preparation.
type Options struct {
	Pipeline pipeline.Options
	Sides    chapter.Sides
}

// Result reports where a prepared chapter landed.
type Result struct {
	Chapter      string
	RunID        string
	ArchiveA     string
	ArchiveB     string
	ManifestPath string
	TotalPages   int
	Matched      int
	OnlyA        int
	OnlyB        int
	AvgDistance  float64
	Alignment    align.Result
}

// Chapter aligns the two archives and writes the synchronized output:
//
//	<outputDir>/<slug>/chapters/<num>_<langA>.zip
//	<outputDir>/<slug>/chapters/<num>_<langB>.zip
//	<outputDir>/<slug>/chapters/<num>_alignment.json
func Chapter(ctx context.Context, slug, pathA, pathB, outputDir string, opts Options, logger *slog.Logger) (*Result, error) {
	logger = logging.NewComponentLogger(logger, "prepare")

	if err := opts.Sides.Validate(); err != nil {
		return nil, err
	}
	number := chapter.Number(pathA)
	logger.Info("preparing chapter",
		logging.Args(
			logging.String("manga", slug),
			logging.String(logging.FieldChapter, number),
		)...)

	run, err := pipeline.AlignArchives(ctx, pathA, pathB, opts.Pipeline, logger)
	if err != nil {
		return nil, err
	}

	pages := BuildPages(run.Result.Entries)

	chaptersDir := filepath.Join(outputDir, slug, "chapters")
	archiveA := filepath.Join(chaptersDir, fmt.Sprintf("%s_%s.zip", number, opts.Sides.A))
	archiveB := filepath.Join(chaptersDir, fmt.Sprintf("%s_%s.zip", number, opts.Sides.B))

	if err := writeAligned(archiveA, pages, run.PagesA, sideA); err != nil {
		return nil, err
	}
	if err := writeAligned(archiveB, pages, run.PagesB, sideB); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	manifest := NewManifest(number, runID, opts.Sides, pages, run.Result.AvgDistance)
	manifestPath := filepath.Join(chaptersDir, fmt.Sprintf("%s_alignment.json", number))
	if err := manifest.Save(manifestPath); err != nil {
		return nil, err
	}

	logger.Info("prepared chapter",
		logging.Args(
			logging.String(logging.FieldChapter, number),
			logging.Int("total_pages", len(pages)),
			logging.Int("matched", manifest.Matched),
			logging.Int("only_"+opts.Sides.A, manifest.OnlyA),
			logging.Int("only_"+opts.Sides.B, manifest.OnlyB),
		)...)

	return &Result{
		Chapter:      number,
		RunID:        runID,
		ArchiveA:     archiveA,
		ArchiveB:     archiveB,
		ManifestPath: manifestPath,
		TotalPages:   len(pages),
		Matched:      manifest.Matched,
		OnlyA:        manifest.OnlyA,
		OnlyB:        manifest.OnlyB,
		AvgDistance:  run.Result.AvgDistance,
		Alignment:    run.Result,
	}, nil
}

type side int

const (
	sideA side = iota
	sideB
)

func (s side) source(page AlignedPage) string {
	if s == sideA {
		return page.SourceA
	}
	return page.SourceB
}

// writeAligned copies this side's contributing pages into a new archive
// under their dense position numbers, preserving the original extension.
// Positions the side did not contribute to are simply absent.
func writeAligned(path string, pages []AlignedPage, source []chapter.Page, s side) error {
	byName := make(map[string][]byte, len(source))
	for _, page := range source {
		byName[page.Name] = page.Data
	}

	out := make([]chapter.Page, 0, len(pages))
	for _, page := range pages {
		name := s.source(page)
		if name == "" {
			continue
		}
		data, ok := byName[name]
		if !ok {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		out = append(out, chapter.Page{
			Name: fmt.Sprintf("%03d%s", page.Index, ext),
			Data: data,
		})
	}
	return chapter.WritePages(path, out)
}
