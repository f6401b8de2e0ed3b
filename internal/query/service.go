// Package query exposes the reader's read side: push-based projections that
// the display engine combines, plus one-shot search and reference lookups.
//
// Absence of content is never an error here. Projections emit empty values
// and lookups return an error matching database.ErrNotFound; only genuine
// storage failures surface as *database.StorageError.
package query

import (
	"context"

	"github.com/mrlokans/biblereader/internal/entities"
	"github.com/mrlokans/biblereader/internal/live"
)

// ContentReader is the corpus read surface used by the query layer.
type ContentReader interface {
	GetLanguages(ctx context.Context) ([]entities.Language, error)
	GetLanguageByID(ctx context.Context, id uint) (*entities.Language, error)
	GetLanguageByCode(ctx context.Context, code string) (*entities.Language, error)
	GetBooks(ctx context.Context) ([]entities.Book, error)
	GetBooksByTestament(ctx context.Context, testament entities.Testament) ([]entities.Book, error)
	GetBookByID(ctx context.Context, id uint) (*entities.Book, error)
	SearchBooksByName(ctx context.Context, query string) ([]entities.Book, error)
	FindBookByName(ctx context.Context, name string) (*entities.Book, error)
	GetChaptersByBook(ctx context.Context, bookID uint) ([]entities.Chapter, error)
	GetChapterByNumber(ctx context.Context, bookID uint, number int) (*entities.Chapter, error)
	GetChapterReference(ctx context.Context, chapterID uint) (*entities.ChapterReference, error)
	GetVersesByChapter(ctx context.Context, chapterID uint) ([]entities.Verse, error)
	GetVerseByNumber(ctx context.Context, chapterID uint, number int) (*entities.Verse, error)
	GetTranslationsByChapter(ctx context.Context, chapterID, languageID uint) ([]entities.Translation, error)
	GetTranslation(ctx context.Context, verseID, languageID uint) (*entities.Translation, error)
	GetHeadingsByChapter(ctx context.Context, chapterID uint) ([]entities.Heading, error)
	SearchTranslations(ctx context.Context, query string, languageID uint) ([]entities.VerseSearchResult, error)
}

// AnnotationReader is the annotation read surface used by the query layer.
type AnnotationReader interface {
	GetBookmarkedVerseIDs(ctx context.Context, chapterID uint) ([]uint, error)
	GetHighlightForVerse(ctx context.Context, verseID uint) (*entities.Highlight, error)
	GetHighlightsByChapter(ctx context.Context, chapterID uint) ([]entities.Highlight, error)
	GetBookmarksWithContext(ctx context.Context, languageID uint) ([]entities.BookmarkWithContext, error)
	GetHighlightsWithContext(ctx context.Context, languageID uint) ([]entities.HighlightWithContext, error)
}

// Service answers read queries against the content and annotation stores.
type Service struct {
	content     ContentReader
	annotations AnnotationReader
	changes     *live.Bus
}

// NewService creates a query service. changes must be the bus the
// annotation mutator publishes to, otherwise projections never refresh.
func NewService(content ContentReader, annotations AnnotationReader, changes *live.Bus) *Service {
	return &Service{
		content:     content,
		annotations: annotations,
		changes:     changes,
	}
}
