package entities

import "fmt"

type Testament string

const (
	TestamentOld Testament = "Old"
	TestamentNew Testament = "New"
)

// MissingTranslationText stands in for a verse that has no text in the selected language.
const MissingTranslationText = "[Translation missing]"

type Language struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"column:code;uniqueIndex" json:"code"`
	Name string `gorm:"column:name" json:"name"`
}

type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:name" json:"name"`
	Testament Testament `gorm:"column:testament" json:"testament"`
	Order     int       `gorm:"column:book_order" json:"order"`
}

type Chapter struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	BookID uint `gorm:"column:book_id" json:"book_id"`
	Number int  `gorm:"column:chapter_number" json:"number"`
}

type Verse struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ChapterID uint `gorm:"column:chapter_id" json:"chapter_id"`
	Number    int  `gorm:"column:verse_number" json:"number"`
}

// Heading is a section title shown before the verse whose number equals Order.
type Heading struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ChapterID uint   `gorm:"column:chapter_id" json:"chapter_id"`
	Order     int    `gorm:"column:heading_order" json:"order"`
	Text      string `gorm:"column:heading_text" json:"text"`
}

type Translation struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	VerseID    uint   `gorm:"column:verse_id" json:"verse_id"`
	LanguageID uint   `gorm:"column:language_id" json:"language_id"`
	Text       string `gorm:"column:verse_text" json:"text"`
}

// ChapterReference is the human title of a chapter, e.g. "Genesis 1".
type ChapterReference struct {
	ChapterID     uint   `json:"chapter_id"`
	BookID        uint   `json:"book_id"`
	BookName      string `json:"book_name"`
	ChapterNumber int    `json:"chapter_number"`
}

func (r ChapterReference) String() string {
	return fmt.Sprintf("%s %d", r.BookName, r.ChapterNumber)
}

// VerseSearchResult is one keyword search hit joined with its location.
type VerseSearchResult struct {
	VerseID       uint   `json:"verse_id"`
	VerseNumber   int    `json:"verse_number"`
	ChapterID     uint   `json:"chapter_id"`
	ChapterNumber int    `json:"chapter_number"`
	BookID        uint   `json:"book_id"`
	BookName      string `json:"book_name"`
	BookOrder     int    `json:"book_order"`
	TranslationID uint   `json:"translation_id"`
	Text          string `json:"text"`
}

func (r VerseSearchResult) Reference() string {
	return fmt.Sprintf("%s %d:%d", r.BookName, r.ChapterNumber, r.VerseNumber)
}
