package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pagesync/internal/chapter"
	"pagesync/internal/library"
	"pagesync/internal/prepare"
)

func newPrepareCommand(ctx *commandContext) *cobra.Command {
	var threshold int
	var outputDir string
	var noTrack bool

	cmd := &cobra.Command{
		Use:   "prepare <manga-slug> <a.zip> <b.zip>",
		Short: "Align a chapter pair and write synchronized archives",
		Long: `Prepare aligns the two chapter archives and writes new ones with
synchronized page numbering (001.jpg in one matches 001.jpg in the other),
plus an alignment manifest, under <output>/<manga-slug>/chapters/. The
result is recorded in the library tracker unless --no-track is given.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			slug, pathA, pathB := args[0], args[1], args[2]
			for _, path := range []string{pathA, pathB} {
				if _, err := os.Stat(path); err != nil {
					return fmt.Errorf("archive not found: %s", path)
				}
			}
			target := outputDir
			if target == "" {
				target = cfg.Paths.OutputDir
			}

			opts := prepare.Options{
				Pipeline: pipelineOptions(cfg, threshold),
				Sides:    chapter.Sides{A: cfg.Sides.A, B: cfg.Sides.B},
			}
			result, err := prepare.Chapter(cmd.Context(), slug, pathA, pathB, target, opts, ctx.ensureLogger())
			if err != nil {
				return err
			}

			if !noTrack {
				if err := trackPrepared(cmd.Context(), ctx, slug, opts, result); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Prepared chapter %s for %s\n", result.Chapter, slug)
			fmt.Fprintf(out, "  Pages:    %d (%d matched, %d %s-only, %d %s-only)\n",
				result.TotalPages, result.Matched, result.OnlyA, cfg.Sides.A, result.OnlyB, cfg.Sides.B)
			fmt.Fprintf(out, "  %s: %s\n", cfg.Sides.A, result.ArchiveA)
			fmt.Fprintf(out, "  %s: %s\n", cfg.Sides.B, result.ArchiveB)
			fmt.Fprintf(out, "  Manifest: %s\n", result.ManifestPath)
			return nil
		},
	}

	cmd.Flags().IntVarP(&threshold, "threshold", "t", -1, "Similarity threshold; lower is stricter (default from config)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default from config)")
	cmd.Flags().BoolVar(&noTrack, "no-track", false, "Skip recording the chapter in the library tracker")
	return cmd
}

func trackPrepared(cmdCtx context.Context, ctx *commandContext, slug string, opts prepare.Options, result *prepare.Result) error {
	return ctx.withStore(func(store *library.Store) error {
		manga, err := store.AddManga(cmdCtx, slug, slug)
		if err != nil {
			return err
		}
		pagesA := result.Matched + result.OnlyA
		pagesB := result.Matched + result.OnlyB
		if err := store.RecordChapter(cmdCtx, manga.ID, result.Chapter, opts.Sides.A, result.ArchiveA, pagesA); err != nil {
			return err
		}
		if err := store.RecordChapter(cmdCtx, manga.ID, result.Chapter, opts.Sides.B, result.ArchiveB, pagesB); err != nil {
			return err
		}
		return store.RecordRun(cmdCtx, library.RunRecord{
			RunID:         result.RunID,
			MangaID:       manga.ID,
			ChapterNumber: result.Chapter,
			TotalPages:    result.TotalPages,
			Matched:       result.Matched,
			OnlyA:         result.OnlyA,
			OnlyB:         result.OnlyB,
			AvgDistance:   result.AvgDistance,
			Threshold:     opts.Pipeline.Threshold,
		})
	})
}
