package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/mrlokans/biblereader/internal/entities"
	"github.com/mrlokans/biblereader/internal/reader"
	"github.com/mrlokans/biblereader/internal/utils"
)

var (
	titleStyle     = color.New(color.Bold)
	headingStyle   = color.New(color.Bold, color.Underline)
	numberStyle    = color.New(color.Faint)
	referenceStyle = color.New(color.FgCyan)
	bookmarkStyle  = color.New(color.FgRed)
	missingStyle   = color.New(color.Italic, color.Faint)
)

const bookmarkMarker = "*"

func newTable(cmd *cobra.Command) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

func renderChapter(w io.Writer, title string, items []reader.DisplayItem) {
	titleStyle.Fprintln(w, title)
	if len(items) == 0 {
		missingStyle.Fprintln(w, "No text in this language")
		return
	}

	for _, item := range items {
		switch it := item.(type) {
		case reader.HeadingItem:
			fmt.Fprintln(w)
			headingStyle.Fprintln(w, it.Text)
		case reader.VerseItem:
			renderVerse(w, it)
		}
	}
}

func renderVerse(w io.Writer, v reader.VerseItem) {
	marker := " "
	if v.IsBookmarked {
		marker = bookmarkStyle.Sprint(bookmarkMarker)
	}

	body := v.Text
	switch {
	case v.Text == entities.MissingTranslationText:
		body = missingStyle.Sprint(v.Text)
	case v.IsHighlighted:
		body = highlightStyle(v.Color).Sprint(v.Text)
	}

	fmt.Fprintf(w, "%s%s %s\n", marker, numberStyle.Sprintf("%3d", v.Number), body)
}

// highlightStyle paints the verse background with its highlight colour,
// picking black or white text for contrast.
func highlightStyle(hex *string) *color.Color {
	c := entities.DefaultHighlightColor
	if hex != nil {
		c = *hex
	}
	r, g, b, err := utils.HexToRGB(c)
	if err != nil {
		return color.New(color.ReverseVideo)
	}

	style := color.BgRGB(int(r), int(g), int(b))
	if utils.IsLightColor(c) {
		return style.AddRGB(0, 0, 0)
	}
	return style.AddRGB(255, 255, 255)
}

func swatch(hex *string) string {
	if hex == nil {
		return "-"
	}
	return highlightStyle(hex).Sprint(*hex)
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// wrap breaks s into lines of at most width runes on word boundaries.
func wrap(s string, width int) string {
	return text.WrapSoft(strings.TrimSpace(s), width)
}
