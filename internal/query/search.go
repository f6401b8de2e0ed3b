package query

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/mrlokans/biblereader/internal/entities"
)

// MinKeywordLength is the shortest query SearchByKeyword sends to the store.
// Shorter substrings match too much of the corpus to be useful.
const MinKeywordLength = 2

func searchable(query string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(query)) >= MinKeywordLength
}

// SearchByKeyword returns verses whose text in the given language contains
// query, ordered by book, chapter and verse.
func (s *Service) SearchByKeyword(ctx context.Context, query string, languageID uint) ([]entities.VerseSearchResult, error) {
	if !searchable(query) {
		return []entities.VerseSearchResult{}, nil
	}
	return s.content.SearchTranslations(ctx, strings.TrimSpace(query), languageID)
}

// SearchBooksByName returns books whose name contains query, in canonical order.
// An empty query matches every book.
func (s *Service) SearchBooksByName(ctx context.Context, query string) ([]entities.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.content.GetBooks(ctx)
	}
	return s.content.SearchBooksByName(ctx, query)
}
