package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pagesync/internal/align"
	"pagesync/internal/pipeline"
)

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var threshold int
	var outputPath string
	var jsonOut bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "align <a.zip> <b.zip>",
		Short: "Align pages between two chapter archives",
		Long: `Align fingerprints every page of both archives, computes the
minimum-cost order-preserving page alignment, and reports which pages match
and which exist in only one version.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			for _, path := range args {
				if _, err := os.Stat(path); err != nil {
					return fmt.Errorf("archive not found: %s", path)
				}
			}

			run, err := pipeline.AlignArchives(cmd.Context(), args[0], args[1], pipelineOptions(cfg, threshold), ctx.ensureLogger())
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, run.Result)
			}
			if !quiet {
				printAlignment(cmd, cfg.Sides.A, cfg.Sides.B, run.Result)
			}
			if outputPath != "" {
				if err := saveResult(run.Result, outputPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved alignment to %s\n", outputPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&threshold, "threshold", "t", -1, "Similarity threshold; lower is stricter (default from config)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the alignment result JSON to this path")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the alignment result as JSON on stdout")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Don't print the alignment table")
	return cmd
}

func printAlignment(cmd *cobra.Command, sideA, sideB string, result align.Result) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "File A: %s (%d pages)\n", filepath.Base(result.FileA), result.PagesA)
	fmt.Fprintf(out, "File B: %s (%d pages)\n", filepath.Base(result.FileB), result.PagesB)
	fmt.Fprintf(out, "Matched: %d   Only %s: %d   Only %s: %d   Avg distance: %s\n",
		result.MatchedCount, sideA, result.InsertACount, sideB, result.InsertBCount,
		formatAvg(result.AvgDistance))

	rows := make([][]string, 0, len(result.Entries))
	for idx, entry := range result.Entries {
		var nameA, nameB string
		if entry.PageA != nil {
			nameA = entry.PageA.Filename
		}
		if entry.PageB != nil {
			nameB = entry.PageB.Filename
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", idx+1),
			truncateName(nameA, 20),
			truncateName(nameB, 20),
			formatDistance(entry.Distance),
			outcomeMarker(entry.Outcome, sideA, sideB),
		})
	}
	fmt.Fprintln(out, renderTable(out,
		[]string{"#", sideA, sideB, "Dist", "Status"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
	))
}

func outcomeMarker(outcome align.Outcome, sideA, sideB string) string {
	switch outcome {
	case align.OutcomeMatch:
		return "✓"
	case align.OutcomeWeakMatch:
		return "~"
	case align.OutcomeAOnly:
		return "← " + sideA + " only"
	case align.OutcomeBOnly:
		return "→ " + sideB + " only"
	default:
		return string(outcome)
	}
}

func saveResult(result align.Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal alignment result: %w", err)
	}
	data = append(data, '\n')
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write alignment result: %w", err)
	}
	return nil
}
