package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/biblereader/internal/database"
	"github.com/mrlokans/biblereader/internal/entities"
	"github.com/mrlokans/biblereader/internal/reference"
)

// Resolution is a reference resolved down to its translated text.
type Resolution struct {
	Book        entities.Book        `json:"book"`
	Chapter     entities.Chapter     `json:"chapter"`
	Verse       entities.Verse       `json:"verse"`
	Translation entities.Translation `json:"translation"`
}

func (r Resolution) Reference() string {
	return fmt.Sprintf("%s %d:%d", r.Book.Name, r.Chapter.Number, r.Verse.Number)
}

// ResolveReference looks up the book by name, then the chapter in that
// book, then the verse in that chapter, then the verse's translation. It
// stops at the first step that does not resolve.
func (s *Service) ResolveReference(ctx context.Context, bookQuery string, chapterNumber, verseNumber int, languageID uint) (*Resolution, error) {
	book, err := s.content.FindBookByName(ctx, bookQuery)
	if err != nil {
		return nil, notFound(err, "book %q", bookQuery)
	}

	chapter, err := s.content.GetChapterByNumber(ctx, book.ID, chapterNumber)
	if err != nil {
		return nil, notFound(err, "chapter %s %d", book.Name, chapterNumber)
	}

	verse, err := s.content.GetVerseByNumber(ctx, chapter.ID, verseNumber)
	if err != nil {
		return nil, notFound(err, "verse %s %d:%d", book.Name, chapterNumber, verseNumber)
	}

	translation, err := s.content.GetTranslation(ctx, verse.ID, languageID)
	if err != nil {
		return nil, notFound(err, "translation of %s %d:%d in language %d", book.Name, chapterNumber, verseNumber, languageID)
	}

	return &Resolution{
		Book:        *book,
		Chapter:     *chapter,
		Verse:       *verse,
		Translation: *translation,
	}, nil
}

// LookupReference parses a free-text reference such as "1 John 3:16" and
// resolves it. Text that does not parse is reported as not found.
func (s *Service) LookupReference(ctx context.Context, text string, languageID uint) (*Resolution, error) {
	ref, err := reference.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", database.ErrNotFound, err)
	}
	return s.ResolveReference(ctx, ref.Book, ref.Chapter, ref.Verse, languageID)
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", database.ErrNotFound, fmt.Sprintf(format, args...))
	}
	return err
}
