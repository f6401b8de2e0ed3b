package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrlokans/biblereader/internal/entities"
	"github.com/mrlokans/biblereader/internal/entrypoint"
	"github.com/mrlokans/biblereader/internal/reference"
)

// resolveVerse finds the verse a reference names without requiring a
// translation, so untranslated verses can still be annotated.
func resolveVerse(ctx context.Context, app *entrypoint.App, text string) (*entities.Verse, string, error) {
	ref, err := reference.Parse(text)
	if err != nil {
		return nil, "", err
	}
	book, err := app.Content.FindBookByName(ctx, ref.Book)
	if err != nil {
		return nil, "", fmt.Errorf("book %q: %w", ref.Book, err)
	}
	chapter, err := app.Content.GetChapterByNumber(ctx, book.ID, ref.Chapter)
	if err != nil {
		return nil, "", fmt.Errorf("chapter %s %d: %w", book.Name, ref.Chapter, err)
	}
	verse, err := app.Content.GetVerseByNumber(ctx, chapter.ID, ref.Verse)
	if err != nil {
		return nil, "", fmt.Errorf("verse %s %d:%d: %w", book.Name, ref.Chapter, ref.Verse, err)
	}
	return verse, fmt.Sprintf("%s %d:%d", book.Name, chapter.Number, verse.Number), nil
}

func newBookmarkCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "bookmark <reference>",
		Short:   "Toggle the bookmark on a verse",
		Example: `  biblereader bookmark "John 3:16"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			verse, label, err := resolveVerse(ctx, app, strings.Join(args, " "))
			if err != nil {
				return err
			}
			bookmarked, err := app.Mutator.ToggleBookmark(ctx, verse.ID)
			if err != nil {
				return err
			}
			if bookmarked {
				fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %s\n", label)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed bookmark from %s\n", label)
			}
			return nil
		},
	}
}

func newHighlightCmd(opts *rootOptions) *cobra.Command {
	var color string
	var set bool

	cmd := &cobra.Command{
		Use:   "highlight <reference>",
		Short: "Toggle or recolour the highlight on a verse",
		Example: `  biblereader highlight "Genesis 1:1" --color "#FFEB3B"
  biblereader highlight "Genesis 1:1" --set --color "#90CAF9"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			verse, label, err := resolveVerse(ctx, app, strings.Join(args, " "))
			if err != nil {
				return err
			}

			var colorPtr *string
			if color != "" {
				colorPtr = &color
			}

			out := cmd.OutOrStdout()
			if set {
				h, err := app.Mutator.SetHighlightColor(ctx, verse.ID, colorPtr)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Highlighted %s %s\n", label, colorLabel(h.ColorHex))
				return nil
			}

			highlighted, err := app.Mutator.ToggleHighlight(ctx, verse.ID, colorPtr)
			if err != nil {
				return err
			}
			if highlighted {
				fmt.Fprintf(out, "Highlighted %s %s\n", label, colorLabel(colorPtr))
			} else {
				fmt.Fprintf(out, "Removed highlight from %s\n", label)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&color, "color", "c", "", "Highlight colour, #RGB or #RRGGBB")
	cmd.Flags().BoolVar(&set, "set", false, "Create or recolour the highlight instead of toggling it")
	return cmd
}

func colorLabel(color *string) string {
	if color == nil {
		return "(no colour)"
	}
	return strings.ToUpper(*color)
}

func newAnnotationsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "annotations",
		Short: "List bookmarks and highlights, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			bookmarks, err := app.Queries.BookmarksWithContext(ctx, languageID)
			if err != nil {
				return err
			}
			highlights, err := app.Queries.HighlightsWithContext(ctx, languageID)
			if err != nil {
				return err
			}

			t := newTable(cmd)
			t.AppendHeader(table.Row{"Type", "Reference", "Colour", "Created", "Text"})
			for _, b := range bookmarks {
				t.AppendRow(table.Row{"bookmark", b.Reference(), "", formatTime(b.CreatedAt()), wrap(b.Text, 50)})
			}
			for _, h := range highlights {
				t.AppendRow(table.Row{"highlight", h.Reference(), swatch(h.ColorHex), formatTime(h.CreatedAt()), wrap(h.Text, 50)})
			}
			t.AppendFooter(table.Row{"", fmt.Sprintf("%d bookmarks", len(bookmarks)), fmt.Sprintf("%d highlights", len(highlights))})
			t.Render()
			return nil
		},
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all bookmarks and highlights as a portable document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			doc, err := app.Mutator.Export(cmd.Context())
			if err != nil {
				return err
			}

			if output == "" {
				return encodeDocument(cmd.OutOrStdout(), doc, false)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer f.Close()

			if err := encodeDocument(f, doc, isYAML(output)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookmarks and %d highlights to %s\n",
				len(doc.Bookmarks), len(doc.Highlights), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (.json or .yaml); stdout when empty")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a bookmark and highlight document into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			doc, err := decodeDocument(f, isYAML(args[0]))
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}

			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.Mutator.Import(cmd.Context(), doc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bookmarks and %d highlights\n", result.Bookmarks, result.Highlights)
			return nil
		},
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func encodeDocument(w io.Writer, doc entities.AnnotationDocument, asYAML bool) error {
	if asYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func decodeDocument(r io.Reader, asYAML bool) (entities.AnnotationDocument, error) {
	var doc entities.AnnotationDocument
	var err error
	if asYAML {
		err = yaml.NewDecoder(r).Decode(&doc)
	} else {
		err = json.NewDecoder(r).Decode(&doc)
	}
	if err == io.EOF {
		return doc, nil
	}
	return doc, err
}
