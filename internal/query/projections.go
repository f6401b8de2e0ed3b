package query

import (
	"context"
	"errors"

	"github.com/mrlokans/biblereader/internal/database"
	"github.com/mrlokans/biblereader/internal/entities"
	"github.com/mrlokans/biblereader/internal/live"
)

// VerseSet is the set of verse ids carrying a bookmark.
type VerseSet map[uint]struct{}

func (s VerseSet) Contains(id uint) bool {
	_, ok := s[id]
	return ok
}

// HighlightMap maps verse ids to their highlight.
type HighlightMap map[uint]entities.Highlight

// WatchVerses emits the chapter's verses ordered by verse number.
func (s *Service) WatchVerses(ctx context.Context, chapterID uint) <-chan live.Snapshot[[]entities.Verse] {
	return live.Watch(ctx, s.changes, func(ctx context.Context) ([]entities.Verse, error) {
		return s.content.GetVersesByChapter(ctx, chapterID)
	}, database.TableVerses)
}

// WatchTranslations emits the chapter's translations in one language.
func (s *Service) WatchTranslations(ctx context.Context, chapterID, languageID uint) <-chan live.Snapshot[[]entities.Translation] {
	return live.Watch(ctx, s.changes, func(ctx context.Context) ([]entities.Translation, error) {
		return s.content.GetTranslationsByChapter(ctx, chapterID, languageID)
	}, database.TableTranslations, database.TableVerses)
}

// WatchHeadings emits the chapter's headings ordered by anchor.
func (s *Service) WatchHeadings(ctx context.Context, chapterID uint) <-chan live.Snapshot[[]entities.Heading] {
	return live.Watch(ctx, s.changes, func(ctx context.Context) ([]entities.Heading, error) {
		return s.content.GetHeadingsByChapter(ctx, chapterID)
	}, database.TableHeadings)
}

// WatchBookmarkedVerses emits the bookmarked verse ids of a chapter.
func (s *Service) WatchBookmarkedVerses(ctx context.Context, chapterID uint) <-chan live.Snapshot[VerseSet] {
	return live.Watch(ctx, s.changes, func(ctx context.Context) (VerseSet, error) {
		ids, err := s.annotations.GetBookmarkedVerseIDs(ctx, chapterID)
		if err != nil {
			return nil, err
		}
		set := make(VerseSet, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		return set, nil
	}, database.TableBookmarks, database.TableVerses)
}

// WatchHighlight emits the verse's highlight, or nil while it has none.
func (s *Service) WatchHighlight(ctx context.Context, verseID uint) <-chan live.Snapshot[*entities.Highlight] {
	return live.Watch(ctx, s.changes, func(ctx context.Context) (*entities.Highlight, error) {
		return s.Highlight(ctx, verseID)
	}, database.TableHighlights)
}

// WatchChapterHighlights emits the highlights of a chapter keyed by verse id.
func (s *Service) WatchChapterHighlights(ctx context.Context, chapterID uint) <-chan live.Snapshot[HighlightMap] {
	return live.Watch(ctx, s.changes, func(ctx context.Context) (HighlightMap, error) {
		highlights, err := s.annotations.GetHighlightsByChapter(ctx, chapterID)
		if err != nil {
			return nil, err
		}
		m := make(HighlightMap, len(highlights))
		for _, h := range highlights {
			m[h.VerseID] = h
		}
		return m, nil
	}, database.TableHighlights, database.TableVerses)
}

// WatchKeywordSearch is the reactive form of SearchByKeyword. Queries that
// are too short emit a single empty result without touching the store.
func (s *Service) WatchKeywordSearch(ctx context.Context, query string, languageID uint) <-chan live.Snapshot[[]entities.VerseSearchResult] {
	if !searchable(query) {
		return live.Once(ctx, []entities.VerseSearchResult{})
	}
	return live.Watch(ctx, s.changes, func(ctx context.Context) ([]entities.VerseSearchResult, error) {
		return s.SearchByKeyword(ctx, query, languageID)
	}, database.TableTranslations)
}

// WatchBookSearch is the reactive form of SearchBooksByName.
func (s *Service) WatchBookSearch(ctx context.Context, query string) <-chan live.Snapshot[[]entities.Book] {
	return live.Watch(ctx, s.changes, func(ctx context.Context) ([]entities.Book, error) {
		return s.SearchBooksByName(ctx, query)
	}, database.TableBooks)
}

// Highlight returns the verse's highlight, or nil if it has none.
func (s *Service) Highlight(ctx context.Context, verseID uint) (*entities.Highlight, error) {
	h, err := s.annotations.GetHighlightForVerse(ctx, verseID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	return h, err
}
