package entities

import (
	"fmt"
	"time"
)

// DefaultHighlightColor is how a highlight without a recorded colour is rendered.
const DefaultHighlightColor = "#FFEB3B"

// Bookmark marks a verse. Timestamp is unix milliseconds.
type Bookmark struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	VerseID   uint  `gorm:"column:verse_id;uniqueIndex" json:"verse_id"`
	Timestamp int64 `gorm:"column:timestamp" json:"timestamp"`
}

func (b Bookmark) CreatedAt() time.Time {
	return time.UnixMilli(b.Timestamp)
}

// Highlight colours a verse. ColorHex is nil when no colour was recorded.
type Highlight struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	VerseID   uint    `gorm:"column:verse_id;uniqueIndex" json:"verse_id"`
	ColorHex  *string `gorm:"column:color_hex" json:"color_hex,omitempty"`
	Timestamp int64   `gorm:"column:timestamp" json:"timestamp"`
}

func (h Highlight) CreatedAt() time.Time {
	return time.UnixMilli(h.Timestamp)
}

// AnnotationContext locates an annotated verse and carries its text in one language.
type AnnotationContext struct {
	VerseNumber   int    `json:"verse_number"`
	ChapterID     uint   `json:"chapter_id"`
	ChapterNumber int    `json:"chapter_number"`
	BookName      string `json:"book_name"`
	Text          string `json:"text"`
}

func (c AnnotationContext) Reference() string {
	return fmt.Sprintf("%s %d:%d", c.BookName, c.ChapterNumber, c.VerseNumber)
}

type BookmarkWithContext struct {
	Bookmark
	AnnotationContext
}

type HighlightWithContext struct {
	Highlight
	AnnotationContext
}
