package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pagesync/internal/chapter"
	"pagesync/internal/manifest"
)

func newManifestCommand(ctx *commandContext) *cobra.Command {
	var mangaID string
	var mangaTitle string
	var coverPath string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "manifest <manga-slug>",
		Short: "Generate the library manifest for a prepared manga",
		Long: `Manifest walks <output>/<manga-slug>/chapters/ and writes a
manifest.json listing every chapter available in both languages, with
archive paths and page counts. Only chapters prepared in both languages are
included.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			slug := args[0]
			id := mangaID
			if id == "" {
				id = slug
			}
			title := mangaTitle
			if title == "" {
				title = slug
			}

			chaptersDir := filepath.Join(cfg.Paths.OutputDir, slug, "chapters")
			if _, err := os.Stat(chaptersDir); err != nil {
				return fmt.Errorf("no prepared chapters for %s (expected %s)", slug, chaptersDir)
			}

			sides := chapter.Sides{A: cfg.Sides.A, B: cfg.Sides.B}
			m, err := manifest.Generate(id, title, chaptersDir, sides, coverPath)
			if err != nil {
				return err
			}

			target := outputPath
			if target == "" {
				target = filepath.Join(cfg.Paths.OutputDir, slug, "manifest.json")
			}
			if err := manifest.Save(m, target); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote manifest with %d chapters to %s\n", len(m.Chapters), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&mangaID, "id", "", "Manga identifier (default: slug)")
	cmd.Flags().StringVar(&mangaTitle, "title", "", "Manga title (default: slug)")
	cmd.Flags().StringVar(&coverPath, "cover", "", "Cover image path recorded in the manifest")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Manifest path (default <output>/<slug>/manifest.json)")
	return cmd
}
