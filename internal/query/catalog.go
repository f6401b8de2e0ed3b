package query

import (
	"context"

	"github.com/mrlokans/biblereader/internal/entities"
)

// Languages returns every language.
func (s *Service) Languages(ctx context.Context) ([]entities.Language, error) {
	return s.content.GetLanguages(ctx)
}

func (s *Service) Language(ctx context.Context, id uint) (*entities.Language, error) {
	return s.content.GetLanguageByID(ctx, id)
}

// LanguageByCode matches a language code case-insensitively.
func (s *Service) LanguageByCode(ctx context.Context, code string) (*entities.Language, error) {
	return s.content.GetLanguageByCode(ctx, code)
}

// Books returns the books of one testament, or all books when testament is empty.
func (s *Service) Books(ctx context.Context, testament entities.Testament) ([]entities.Book, error) {
	if testament == "" {
		return s.content.GetBooks(ctx)
	}
	return s.content.GetBooksByTestament(ctx, testament)
}

func (s *Service) Book(ctx context.Context, id uint) (*entities.Book, error) {
	return s.content.GetBookByID(ctx, id)
}

// Chapters returns a book's chapters ordered by number.
func (s *Service) Chapters(ctx context.Context, bookID uint) ([]entities.Chapter, error) {
	return s.content.GetChaptersByBook(ctx, bookID)
}

// ChapterReference returns the display title of a chapter, e.g. "Genesis 1".
func (s *Service) ChapterReference(ctx context.Context, chapterID uint) (*entities.ChapterReference, error) {
	return s.content.GetChapterReference(ctx, chapterID)
}

// BookmarksWithContext lists bookmarks newest first with their verse text.
func (s *Service) BookmarksWithContext(ctx context.Context, languageID uint) ([]entities.BookmarkWithContext, error) {
	return s.annotations.GetBookmarksWithContext(ctx, languageID)
}

// HighlightsWithContext lists highlights newest first with their verse text.
func (s *Service) HighlightsWithContext(ctx context.Context, languageID uint) ([]entities.HighlightWithContext, error) {
	return s.annotations.GetHighlightsWithContext(ctx, languageID)
}
