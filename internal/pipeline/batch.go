package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"pagesync/internal/chapter"
	"pagesync/internal/logging"
)

// ChapterSummary is one row of a batch run.
type ChapterSummary struct {
	Chapter     string  `json:"chapter"`
	PagesA      int     `json:"pages_a"`
	PagesB      int     `json:"pages_b"`
	Matched     int     `json:"matched"`
	OnlyA       int     `json:"only_a"`
	OnlyB       int     `json:"only_b"`
	AvgDistance float64 `json:"avg_distance"`
	Status      string  `json:"status"`
	Error       string  `json:"error,omitempty"`
}

// BatchSummary aggregates a directory-wide alignment run.
type BatchSummary struct {
	Sides          chapter.Sides    `json:"-"`
	SideA          string           `json:"side_a"`
	SideB          string           `json:"side_b"`
	TotalChapters  int              `json:"total_chapters"`
	PerfectMatches int              `json:"perfect_matches"`
	HasInsertions  int              `json:"has_insertions"`
	Chapters       []ChapterSummary `json:"chapters"`
}

// AlignDirectory aligns every chapter pair found in dir. When outputDir is
// non-empty, a per-chapter alignment result and a summary.json land there.
// Individual chapter failures are recorded in the summary rather than
// aborting the batch.
func AlignDirectory(ctx context.Context, dir, outputDir string, sides chapter.Sides, opts Options, logger *slog.Logger) (*BatchSummary, error) {
	logger = logging.NewComponentLogger(logger, "batch")

	if err := sides.Validate(); err != nil {
		return nil, err
	}
	pairs, err := chapter.FindPairs(dir, sides)
	if err != nil {
		return nil, err
	}
	logger.Info("found chapter pairs", logging.Args(logging.Int("pairs", len(pairs)))...)

	summary := &BatchSummary{
		Sides:         sides,
		SideA:         sides.A,
		SideB:         sides.B,
		TotalChapters: len(pairs),
		Chapters:      make([]ChapterSummary, 0, len(pairs)),
	}

	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		run, err := AlignArchives(ctx, pair.PathA, pair.PathB, opts, logger)
		if err != nil {
			logger.Warn("chapter alignment failed",
				logging.Args(
					logging.String(logging.FieldChapter, pair.Number),
					logging.Error(err),
				)...)
			summary.Chapters = append(summary.Chapters, ChapterSummary{
				Chapter: pair.Number,
				Status:  "ERROR",
				Error:   err.Error(),
			})
			continue
		}

		row := ChapterSummary{
			Chapter:     pair.Number,
			PagesA:      run.Result.PagesA,
			PagesB:      run.Result.PagesB,
			Matched:     run.Result.MatchedCount,
			OnlyA:       run.Result.InsertACount,
			OnlyB:       run.Result.InsertBCount,
			AvgDistance: run.Result.AvgDistance,
		}
		if row.OnlyA == 0 && row.OnlyB == 0 {
			row.Status = "PERFECT"
			summary.PerfectMatches++
		} else {
			row.Status = fmt.Sprintf("DIFF (+%d%s, +%d%s)", row.OnlyA, sides.A, row.OnlyB, sides.B)
			summary.HasInsertions++
		}
		summary.Chapters = append(summary.Chapters, row)

		logger.Info("aligned chapter",
			logging.Args(
				logging.String(logging.FieldChapter, pair.Number),
				logging.Int("matched", row.Matched),
				logging.String("status", row.Status),
			)...)

		if outputDir != "" {
			target := filepath.Join(outputDir, fmt.Sprintf("chapter_%s.json", pair.Number))
			if err := writeJSONFile(target, run.Result); err != nil {
				return nil, err
			}
		}
	}

	if outputDir != "" {
		if err := writeJSONFile(filepath.Join(outputDir, "summary.json"), summary); err != nil {
			return nil, err
		}
	}

	return summary, nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
