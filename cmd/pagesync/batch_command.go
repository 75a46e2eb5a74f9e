package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pagesync/internal/chapter"
	"pagesync/internal/pipeline"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var threshold int
	var outputDir string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "batch <chapters-dir>",
		Short: "Align every chapter pair in a directory",
		Long: `Batch scans a directory of <chapter>_<lang>.zip archives, pairs
chapters that exist in both configured languages, aligns each pair, and
prints a per-chapter summary. With --output, per-chapter alignment results
and a summary.json are written there.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			info, err := os.Stat(args[0])
			if err != nil {
				return fmt.Errorf("directory not found: %s", args[0])
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", args[0])
			}

			sides := chapter.Sides{A: cfg.Sides.A, B: cfg.Sides.B}
			summary, err := pipeline.AlignDirectory(cmd.Context(), args[0], outputDir, sides, pipelineOptions(cfg, threshold), ctx.ensureLogger())
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, summary)
			}
			printBatchSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().IntVarP(&threshold, "threshold", "t", -1, "Similarity threshold; lower is stricter (default from config)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for per-chapter results and summary.json")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the batch summary as JSON on stdout")
	return cmd
}

func printBatchSummary(cmd *cobra.Command, summary *pipeline.BatchSummary) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Total chapters: %d   Perfect: %d   With differences: %d\n",
		summary.TotalChapters, summary.PerfectMatches, summary.HasInsertions)
	if len(summary.Chapters) == 0 {
		fmt.Fprintf(out, "No %s/%s chapter pairs found\n", summary.SideA, summary.SideB)
		return
	}

	rows := make([][]string, 0, len(summary.Chapters))
	for _, ch := range summary.Chapters {
		if ch.Error != "" {
			rows = append(rows, []string{ch.Chapter, "-", "-", "-", "-", "-", "ERROR: " + ch.Error})
			continue
		}
		rows = append(rows, []string{
			ch.Chapter,
			fmt.Sprintf("%d", ch.PagesA),
			fmt.Sprintf("%d", ch.PagesB),
			fmt.Sprintf("%d", ch.Matched),
			fmt.Sprintf("%d", ch.OnlyA),
			fmt.Sprintf("%d", ch.OnlyB),
			ch.Status,
		})
	}
	fmt.Fprintln(out, renderTable(out,
		[]string{"Ch", summary.SideA, summary.SideB, "Match", "+" + summary.SideA, "+" + summary.SideB, "Status"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
	))
}
