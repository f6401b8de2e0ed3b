package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/biblereader/internal/annotations"
	"github.com/mrlokans/biblereader/internal/entities"
	"github.com/mrlokans/biblereader/internal/live"
	"github.com/mrlokans/biblereader/internal/query"
	"github.com/mrlokans/biblereader/internal/reader"
)

// This file collects the interfaces the controllers depend on. The
// production implementations live in internal/query, internal/reader,
// internal/annotations, internal/tasks and internal/scheduler.

// CatalogReader lists languages, books and chapters.
type CatalogReader interface {
	Languages(ctx context.Context) ([]entities.Language, error)
	LanguageByCode(ctx context.Context, code string) (*entities.Language, error)
	Books(ctx context.Context, testament entities.Testament) ([]entities.Book, error)
	Book(ctx context.Context, id uint) (*entities.Book, error)
	SearchBooksByName(ctx context.Context, query string) ([]entities.Book, error)
	Chapters(ctx context.Context, bookID uint) ([]entities.Chapter, error)
	ChapterReference(ctx context.Context, chapterID uint) (*entities.ChapterReference, error)
	WatchBookSearch(ctx context.Context, query string) <-chan live.Snapshot[[]entities.Book]
}

// VerseFinder answers keyword searches and reference lookups.
type VerseFinder interface {
	SearchByKeyword(ctx context.Context, query string, languageID uint) ([]entities.VerseSearchResult, error)
	ResolveReference(ctx context.Context, book string, chapter, verse int, languageID uint) (*query.Resolution, error)
	LookupReference(ctx context.Context, text string, languageID uint) (*query.Resolution, error)
	WatchKeywordSearch(ctx context.Context, query string, languageID uint) <-chan live.Snapshot[[]entities.VerseSearchResult]
}

// AnnotationReader returns annotations for display.
type AnnotationReader interface {
	Highlight(ctx context.Context, verseID uint) (*entities.Highlight, error)
	WatchHighlight(ctx context.Context, verseID uint) <-chan live.Snapshot[*entities.Highlight]
	BookmarksWithContext(ctx context.Context, languageID uint) ([]entities.BookmarkWithContext, error)
	HighlightsWithContext(ctx context.Context, languageID uint) ([]entities.HighlightWithContext, error)
}

// Queries is the full read surface; *query.Service implements it.
type Queries interface {
	CatalogReader
	VerseFinder
	AnnotationReader
}

// DisplaySource renders chapters; *reader.Engine implements it.
type DisplaySource interface {
	Chapter(ctx context.Context, chapterID, languageID uint) (reader.Display, error)
	Watch(ctx context.Context, chapterID, languageID uint) <-chan live.Snapshot[reader.Display]
}

// AnnotationWriter mutates bookmarks and highlights; *annotations.Mutator implements it.
type AnnotationWriter interface {
	ToggleBookmark(ctx context.Context, verseID uint) (bool, error)
	ToggleHighlight(ctx context.Context, verseID uint, color *string) (bool, error)
	SetHighlightColor(ctx context.Context, verseID uint, color *string) (*entities.Highlight, error)
	Export(ctx context.Context) (entities.AnnotationDocument, error)
	Import(ctx context.Context, doc entities.AnnotationDocument) (annotations.ImportResult, error)
}

// TaskQueue enqueues background tasks and reports their state; *tasks.Client implements it.
type TaskQueue interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// MaintenanceRunner triggers an out-of-schedule maintenance run.
type MaintenanceRunner interface {
	RunNow(ctx context.Context) (string, error)
}
