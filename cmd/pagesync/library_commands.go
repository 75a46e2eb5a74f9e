package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pagesync/internal/library"
)

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Inspect and maintain the manga tracker",
	}

	libraryCmd.AddCommand(newLibraryAddCommand(ctx))
	libraryCmd.AddCommand(newLibraryListCommand(ctx))
	libraryCmd.AddCommand(newLibraryShowCommand(ctx))
	libraryCmd.AddCommand(newLibraryStatusCommand(ctx))

	return libraryCmd
}

func newLibraryAddCommand(ctx *commandContext) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "add <slug>",
		Short: "Add a manga to the tracker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				manga, err := store.AddManga(cmd.Context(), args[0], title)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tracked %s (%s) as #%d\n", manga.Slug, manga.Title, manga.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Display title (default: slug)")
	return cmd
}

func newLibraryListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked manga",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				mangas, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(mangas) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No manga tracked yet; use 'pagesync library add'")
					return nil
				}

				rows := make([][]string, 0, len(mangas))
				for _, m := range mangas {
					rows = append(rows, []string{
						m.Slug,
						m.Title,
						string(m.Status),
						fmt.Sprintf("%d", m.PreparedChapters),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(cmd.OutOrStdout(),
					[]string{"Slug", "Title", "Status", "Chapters"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}

func newLibraryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <slug>",
		Short: "Show one manga's prepared chapters and alignment history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				manga, err := store.GetBySlug(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%s)\n", manga.Title, manga.Slug)
				fmt.Fprintf(out, "Status: %s   Prepared chapters: %d\n", manga.Status, manga.PreparedChapters)

				chapters, err := store.Chapters(cmd.Context(), manga.ID)
				if err != nil {
					return err
				}
				if len(chapters) > 0 {
					rows := make([][]string, 0, len(chapters))
					for _, c := range chapters {
						rows = append(rows, []string{
							c.Number,
							c.Language,
							fmt.Sprintf("%d", c.PageCount),
							c.ArchivePath,
						})
					}
					fmt.Fprintln(out, renderTable(out,
						[]string{"Ch", "Lang", "Pages", "Archive"},
						rows,
						[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
					))
				}

				runs, err := store.Runs(cmd.Context(), manga.ID)
				if err != nil {
					return err
				}
				if len(runs) > 0 {
					rows := make([][]string, 0, len(runs))
					for _, r := range runs {
						rows = append(rows, []string{
							r.ChapterNumber,
							fmt.Sprintf("%d", r.TotalPages),
							fmt.Sprintf("%d", r.Matched),
							fmt.Sprintf("%d", r.OnlyA),
							fmt.Sprintf("%d", r.OnlyB),
							formatAvg(r.AvgDistance),
							r.CreatedAt,
						})
					}
					fmt.Fprintln(out, renderTable(out,
						[]string{"Ch", "Pages", "Match", "+A", "+B", "Avg", "When"},
						rows,
						[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
					))
				}
				return nil
			})
		},
	}
}

func newLibraryStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <slug> <wishlist|preparing|completed>",
		Short: "Update a manga's lifecycle status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				if err := store.SetStatus(cmd.Context(), args[0], library.Status(args[1])); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", args[0], args[1])
				return nil
			})
		},
	}
}
