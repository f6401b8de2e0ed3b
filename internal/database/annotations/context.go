package annotations

import (
	"context"

	"github.com/mrlokans/biblereader/internal/database"
	"github.com/mrlokans/biblereader/internal/entities"
)

type contextRow struct {
	ID            uint
	VerseID       uint
	ColorHex      *string
	Timestamp     int64
	VerseNumber   int
	ChapterID     uint
	ChapterNumber int
	BookName      string
	Text          *string
}

func (row contextRow) annotationContext() entities.AnnotationContext {
	text := entities.MissingTranslationText
	if row.Text != nil {
		text = *row.Text
	}
	return entities.AnnotationContext{
		VerseNumber:   row.VerseNumber,
		ChapterID:     row.ChapterID,
		ChapterNumber: row.ChapterNumber,
		BookName:      row.BookName,
		Text:          text,
	}
}

const contextColumns = `verses.verse_number AS verse_number, chapters.id AS chapter_id,
	chapters.chapter_number AS chapter_number, books.name AS book_name, translations.verse_text AS text`

func (r *Repository) withContextQuery(ctx context.Context, table, columns string, languageID uint, dest *[]contextRow) error {
	return r.db.WithContext(ctx).
		Table(table).
		Select(columns+", "+contextColumns).
		Joins("JOIN verses ON verses.id = "+table+".verse_id").
		Joins("JOIN chapters ON chapters.id = verses.chapter_id").
		Joins("JOIN books ON books.id = chapters.book_id").
		Joins("LEFT JOIN translations ON translations.verse_id = verses.id AND translations.language_id = ?", languageID).
		Order(table + ".timestamp DESC, " + table + ".id DESC").
		Scan(dest).Error
}

// GetBookmarksWithContext returns every bookmark with its verse location and
// text in the given language, newest first.
func (r *Repository) GetBookmarksWithContext(ctx context.Context, languageID uint) ([]entities.BookmarkWithContext, error) {
	var rows []contextRow
	columns := "bookmarks.id AS id, bookmarks.verse_id AS verse_id, bookmarks.timestamp AS timestamp"
	if err := r.withContextQuery(ctx, database.TableBookmarks, columns, languageID, &rows); err != nil {
		return nil, database.Classify("get bookmarks with context", err)
	}

	result := make([]entities.BookmarkWithContext, 0, len(rows))
	for _, row := range rows {
		result = append(result, entities.BookmarkWithContext{
			Bookmark:          entities.Bookmark{ID: row.ID, VerseID: row.VerseID, Timestamp: row.Timestamp},
			AnnotationContext: row.annotationContext(),
		})
	}
	return result, nil
}

// GetHighlightsWithContext returns every highlight with its verse location
// and text in the given language, newest first.
func (r *Repository) GetHighlightsWithContext(ctx context.Context, languageID uint) ([]entities.HighlightWithContext, error) {
	var rows []contextRow
	columns := "highlights.id AS id, highlights.verse_id AS verse_id, highlights.color_hex AS color_hex, highlights.timestamp AS timestamp"
	if err := r.withContextQuery(ctx, database.TableHighlights, columns, languageID, &rows); err != nil {
		return nil, database.Classify("get highlights with context", err)
	}

	result := make([]entities.HighlightWithContext, 0, len(rows))
	for _, row := range rows {
		result = append(result, entities.HighlightWithContext{
			Highlight:         entities.Highlight{ID: row.ID, VerseID: row.VerseID, ColorHex: row.ColorHex, Timestamp: row.Timestamp},
			AnnotationContext: row.annotationContext(),
		})
	}
	return result, nil
}
