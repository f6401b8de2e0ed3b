package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mrlokans/biblereader/internal/entities"
)

func newLoadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "load <corpus.yaml|corpus.json>",
		Short: "Load a corpus file into the reader database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			stats, err := app.LoadCorpus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s\n", stats)
			return nil
		},
	}
}

func newBooksCmd(opts *rootOptions) *cobra.Command {
	var testament string

	cmd := &cobra.Command{
		Use:   "books [name filter]",
		Short: "List books in canonical order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			var books []entities.Book
			switch {
			case len(args) == 1:
				books, err = app.Queries.SearchBooksByName(ctx, args[0])
			case testament != "":
				books, err = app.Queries.Books(ctx, parseTestament(testament))
			default:
				books, err = app.Queries.Books(ctx, "")
			}
			if err != nil {
				return err
			}

			t := newTable(cmd)
			t.AppendHeader(table.Row{"#", "Book", "Testament", "Chapters"})
			for _, b := range books {
				chapters, err := app.Queries.Chapters(ctx, b.ID)
				if err != nil {
					return err
				}
				t.AppendRow(table.Row{b.Order, b.Name, b.Testament, len(chapters)})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&testament, "testament", "", "Only list books of the Old or New testament")
	return cmd
}

func parseTestament(s string) entities.Testament {
	if strings.EqualFold(s, "new") {
		return entities.TestamentNew
	}
	return entities.TestamentOld
}

func newReadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "read <book> <chapter>",
		Short: "Print a chapter with its headings, bookmarks and highlights",
		Example: `  biblereader read Genesis 1
  biblereader read "1 John" 4 --language ru`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[1])
			if err != nil || number < 1 {
				return fmt.Errorf("invalid chapter %q", args[1])
			}

			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			languageID, err := opts.languageID(ctx, app)
			if err != nil {
				return err
			}

			book, err := app.Content.FindBookByName(ctx, args[0])
			if err != nil {
				return fmt.Errorf("book %q: %w", args[0], err)
			}
			chapter, err := app.Content.GetChapterByNumber(ctx, book.ID, number)
			if err != nil {
				return fmt.Errorf("chapter %s %d: %w", book.Name, number, err)
			}

			display, err := app.Engine.Chapter(ctx, chapter.ID, languageID)
			if err != nil {
				return err
			}

			ref := entities.ChapterReference{ChapterID: chapter.ID, BookID: book.ID, BookName: book.Name, ChapterNumber: chapter.Number}
			renderChapter(cmd.OutOrStdout(), ref.String(), display.Items)
			return nil
		},
	}
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Find verses containing a keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			languageID, err := opts.languageID(ctx, app)
			if err != nil {
				return err
			}

			results, err := app.Queries.SearchByKeyword(ctx, strings.Join(args, " "), languageID)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No verses found")
				return nil
			}

			t := newTable(cmd)
			t.AppendHeader(table.Row{"Reference", "Text"})
			for _, r := range results {
				t.AppendRow(table.Row{r.Reference(), wrap(r.Text, 70)})
			}
			t.AppendFooter(table.Row{"", fmt.Sprintf("%d verses", len(results))})
			t.Render()
			return nil
		},
	}
}

func newLookupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "lookup <reference>",
		Short:   "Print a single verse",
		Example: `  biblereader lookup "John 3:16"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			languageID, err := opts.languageID(ctx, app)
			if err != nil {
				return err
			}

			res, err := app.Queries.LookupReference(ctx, strings.Join(args, " "), languageID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", referenceStyle.Sprint(res.Reference()), res.Translation.Text)
			return nil
		},
	}
}
