package annotations

import (
	"context"
	"fmt"
	"sort"

	"github.com/mrlokans/biblereader/internal/database"
	store "github.com/mrlokans/biblereader/internal/database/annotations"
	"github.com/mrlokans/biblereader/internal/entities"
)

// ImportResult counts the records written by an import.
type ImportResult struct {
	Bookmarks  int `json:"bookmarks"`
	Highlights int `json:"highlights"`
}

// Export returns every bookmark and highlight.
func (m *Mutator) Export(ctx context.Context) (entities.AnnotationDocument, error) {
	doc := entities.AnnotationDocument{
		Bookmarks:  []entities.BookmarkRecord{},
		Highlights: []entities.HighlightRecord{},
	}

	err := m.store.Transaction(ctx, func(tx *store.Repository) error {
		bookmarks, err := tx.GetAllBookmarks(ctx)
		if err != nil {
			return err
		}
		highlights, err := tx.GetAllHighlights(ctx)
		if err != nil {
			return err
		}

		for _, b := range bookmarks {
			doc.Bookmarks = append(doc.Bookmarks, entities.BookmarkToRecord(b))
		}
		for _, h := range highlights {
			doc.Highlights = append(doc.Highlights, entities.HighlightToRecord(h))
		}
		return nil
	})
	if err != nil {
		return entities.AnnotationDocument{}, database.Classify("export annotations", err)
	}
	return doc, nil
}

// Import upserts the document's records by verse: an existing bookmark or
// highlight on the same verse takes the imported timestamp and colour,
// other records are inserted. Record ids are ignored. When a verse appears
// more than once, the last record wins.
//
// The import is all-or-nothing. Any invalid record, including one that
// names a verse missing from the corpus, rolls the whole import back.
func (m *Mutator) Import(ctx context.Context, doc entities.AnnotationDocument) (ImportResult, error) {
	bookmarks, highlights, err := prepareImport(doc)
	if err != nil {
		return ImportResult{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	err = m.store.Transaction(ctx, func(tx *store.Repository) error {
		if err := requireVerses(ctx, tx, bookmarks, highlights); err != nil {
			return err
		}
		for i := range bookmarks {
			if err := tx.UpsertBookmark(ctx, &bookmarks[i]); err != nil {
				return err
			}
		}
		for i := range highlights {
			if err := tx.UpsertHighlight(ctx, &highlights[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, classify("import annotations", err)
	}

	m.changes.Publish(database.TableBookmarks, database.TableHighlights)
	return ImportResult{Bookmarks: len(bookmarks), Highlights: len(highlights)}, nil
}

func prepareImport(doc entities.AnnotationDocument) ([]entities.Bookmark, []entities.Highlight, error) {
	bookmarkIndex := make(map[uint]int)
	var bookmarks []entities.Bookmark
	for _, rec := range doc.Bookmarks {
		b := entities.Bookmark{VerseID: rec.VerseID, Timestamp: rec.Timestamp}
		if i, seen := bookmarkIndex[rec.VerseID]; seen {
			bookmarks[i] = b
			continue
		}
		bookmarkIndex[rec.VerseID] = len(bookmarks)
		bookmarks = append(bookmarks, b)
	}

	highlightIndex := make(map[uint]int)
	var highlights []entities.Highlight
	for _, rec := range doc.Highlights {
		color, err := normalizeColor(rec.ColorHex)
		if err != nil {
			return nil, nil, fmt.Errorf("highlight for verse %d: %w", rec.VerseID, err)
		}
		h := entities.Highlight{VerseID: rec.VerseID, ColorHex: color, Timestamp: rec.Timestamp}
		if i, seen := highlightIndex[rec.VerseID]; seen {
			highlights[i] = h
			continue
		}
		highlightIndex[rec.VerseID] = len(highlights)
		highlights = append(highlights, h)
	}

	return bookmarks, highlights, nil
}

func requireVerses(ctx context.Context, tx *store.Repository, bookmarks []entities.Bookmark, highlights []entities.Highlight) error {
	verseIDs := make(map[uint]struct{}, len(bookmarks)+len(highlights))
	for _, b := range bookmarks {
		verseIDs[b.VerseID] = struct{}{}
	}
	for _, h := range highlights {
		verseIDs[h.VerseID] = struct{}{}
	}

	var missing []uint
	for id := range verseIDs {
		ok, err := tx.VerseExists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return fmt.Errorf("%w: %v", ErrUnknownVerse, missing)
	}
	return nil
}
