// Package reader builds the sequence a reader sees for one chapter in one
// language: verses in order, section headings placed before the verse they
// introduce, and each verse's bookmark and highlight state.
package reader

import (
	"encoding/json"
	"sort"

	"github.com/mrlokans/biblereader/internal/entities"
)

// ItemKind discriminates display items in their JSON form.
type ItemKind string

const (
	KindHeading ItemKind = "heading"
	KindVerse   ItemKind = "verse"
)

// DisplayItem is either a HeadingItem or a VerseItem.
type DisplayItem interface {
	Kind() ItemKind
	displayItem()
}

// HeadingItem is a section heading shown before the verse it introduces.
type HeadingItem struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

func (HeadingItem) Kind() ItemKind { return KindHeading }
func (HeadingItem) displayItem()   {}

// VerseItem is one verse with its text in the selected language and its
// annotation state. Color is nil unless the verse is highlighted with a colour.
type VerseItem struct {
	ID            uint    `json:"id"`
	Number        int     `json:"number"`
	Text          string  `json:"text"`
	IsBookmarked  bool    `json:"is_bookmarked"`
	IsHighlighted bool    `json:"is_highlighted"`
	Color         *string `json:"color,omitempty"`
}

func (VerseItem) Kind() ItemKind { return KindVerse }
func (VerseItem) displayItem()   {}

// MarshalJSON tags the heading with its kind.
func (h HeadingItem) MarshalJSON() ([]byte, error) {
	type plain HeadingItem
	return json.Marshal(struct {
		Kind ItemKind `json:"kind"`
		plain
	}{KindHeading, plain(h)})
}

// MarshalJSON tags the verse with its kind.
func (v VerseItem) MarshalJSON() ([]byte, error) {
	type plain VerseItem
	return json.Marshal(struct {
		Kind ItemKind `json:"kind"`
		plain
	}{KindVerse, plain(v)})
}

// BookmarkSet answers whether a verse is bookmarked.
type BookmarkSet interface {
	Contains(verseID uint) bool
}

// BuildDisplay merges a chapter's verses, translations, headings and
// annotation state into display order. It is a pure function.
//
// The result is empty when the chapter has no verses or no translations in
// the language. Otherwise every verse appears once, in verse-number order,
// preceded by the headings anchored to its number. Untranslated verses
// carry entities.MissingTranslationText. Headings whose anchor matches no
// verse are dropped.
func BuildDisplay(
	verses []entities.Verse,
	translations []entities.Translation,
	headings []entities.Heading,
	bookmarked BookmarkSet,
	highlights map[uint]entities.Highlight,
) []DisplayItem {
	if len(verses) == 0 || len(translations) == 0 {
		return []DisplayItem{}
	}

	text := make(map[uint]string, len(translations))
	for _, t := range translations {
		text[t.VerseID] = t.Text
	}

	anchored := make(map[int][]entities.Heading)
	for _, h := range headings {
		anchored[h.Order] = append(anchored[h.Order], h)
	}
	for _, group := range anchored {
		sort.SliceStable(group, func(i, j int) bool { return group[i].ID < group[j].ID })
	}

	ordered := make([]entities.Verse, len(verses))
	copy(ordered, verses)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })

	items := make([]DisplayItem, 0, len(ordered)+len(headings))
	for _, v := range ordered {
		for _, h := range anchored[v.Number] {
			items = append(items, HeadingItem{ID: h.ID, Text: h.Text})
		}
		// A heading introduces the first verse with its number only.
		delete(anchored, v.Number)

		item := VerseItem{
			ID:     v.ID,
			Number: v.Number,
			Text:   entities.MissingTranslationText,
		}
		if t, ok := text[v.ID]; ok {
			item.Text = t
		}
		if bookmarked != nil {
			item.IsBookmarked = bookmarked.Contains(v.ID)
		}
		if h, ok := highlights[v.ID]; ok {
			item.IsHighlighted = true
			if h.ColorHex != nil {
				color := *h.ColorHex
				item.Color = &color
			}
		}
		items = append(items, item)
	}
	return items
}
