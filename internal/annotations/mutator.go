// Package annotations is the only write path for bookmarks and highlights.
//
// Every toggle runs its existence check and its write inside one
// transaction while holding the mutator's lock, so concurrent toggles of
// the same verse cannot leave two rows behind. After a write commits the
// mutator announces the touched table on the change bus, which makes the
// query projections (and through them the chapter displays) re-emit.
package annotations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mrlokans/biblereader/internal/database"
	store "github.com/mrlokans/biblereader/internal/database/annotations"
	"github.com/mrlokans/biblereader/internal/entities"
	"github.com/mrlokans/biblereader/internal/live"
	"github.com/mrlokans/biblereader/internal/utils"
)

var (
	// ErrUnknownVerse is returned when a mutation names a verse that is not in the corpus.
	ErrUnknownVerse = errors.New("unknown verse")
	ErrInvalidColor = errors.New("invalid highlight color")
)

// Mutator is the only writer of bookmarks and highlights. Writes are
// serialised, and each one publishes its table after the transaction commits.
type Mutator struct {
	store   *store.Repository
	changes *live.Bus
	now     func() time.Time

	mu sync.Mutex
}

// Option configures a Mutator.
type Option func(*Mutator)

// WithClock replaces time.Now as the source of annotation timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Mutator) {
		m.now = now
	}
}

// NewMutator creates a mutator over repo that publishes to changes.
func NewMutator(repo *store.Repository, changes *live.Bus, opts ...Option) *Mutator {
	m := &Mutator{
		store:   repo,
		changes: changes,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ToggleBookmark removes the verse's bookmark if it has one and adds one
// otherwise. It returns whether the verse is bookmarked afterwards.
func (m *Mutator) ToggleBookmark(ctx context.Context, verseID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var bookmarked bool
	err := m.store.Transaction(ctx, func(tx *store.Repository) error {
		if err := requireVerse(ctx, tx, verseID); err != nil {
			return err
		}

		existing, err := tx.GetBookmarkForVerse(ctx, verseID)
		switch {
		case err == nil:
			bookmarked = false
			return tx.DeleteBookmark(ctx, existing.ID)
		case errors.Is(err, database.ErrNotFound):
			bookmarked = true
			return tx.CreateBookmark(ctx, &entities.Bookmark{VerseID: verseID, Timestamp: m.timestamp()})
		default:
			return err
		}
	})
	if err != nil {
		return false, classify("toggle bookmark", err)
	}

	m.changes.Publish(database.TableBookmarks)
	return bookmarked, nil
}

// ToggleHighlight removes the verse's highlight if it has one and adds one
// with the given colour otherwise. A nil colour records no colour. It
// returns whether the verse is highlighted afterwards.
func (m *Mutator) ToggleHighlight(ctx context.Context, verseID uint, color *string) (bool, error) {
	normalized, err := normalizeColor(color)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var highlighted bool
	err = m.store.Transaction(ctx, func(tx *store.Repository) error {
		if err := requireVerse(ctx, tx, verseID); err != nil {
			return err
		}

		existing, err := tx.GetHighlightForVerse(ctx, verseID)
		switch {
		case err == nil:
			highlighted = false
			return tx.DeleteHighlight(ctx, existing.ID)
		case errors.Is(err, database.ErrNotFound):
			highlighted = true
			return tx.CreateHighlight(ctx, &entities.Highlight{
				VerseID:   verseID,
				ColorHex:  normalized,
				Timestamp: m.timestamp(),
			})
		default:
			return err
		}
	})
	if err != nil {
		return false, classify("toggle highlight", err)
	}

	m.changes.Publish(database.TableHighlights)
	return highlighted, nil
}

// SetHighlightColor highlights the verse with the given colour. An existing
// highlight is replaced: it keeps its id but gets the new colour and a new
// timestamp.
func (m *Mutator) SetHighlightColor(ctx context.Context, verseID uint, color *string) (*entities.Highlight, error) {
	normalized, err := normalizeColor(color)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	highlight := &entities.Highlight{VerseID: verseID, ColorHex: normalized}
	err = m.store.Transaction(ctx, func(tx *store.Repository) error {
		if err := requireVerse(ctx, tx, verseID); err != nil {
			return err
		}

		existing, err := tx.GetHighlightForVerse(ctx, verseID)
		switch {
		case err == nil:
			if err := tx.DeleteHighlight(ctx, existing.ID); err != nil {
				return err
			}
			highlight.ID = existing.ID
		case !errors.Is(err, database.ErrNotFound):
			return err
		}

		highlight.Timestamp = m.timestamp()
		return tx.CreateHighlight(ctx, highlight)
	})
	if err != nil {
		return nil, classify("set highlight color", err)
	}

	m.changes.Publish(database.TableHighlights)
	return highlight, nil
}

func (m *Mutator) timestamp() int64 {
	return m.now().UnixMilli()
}

func requireVerse(ctx context.Context, tx *store.Repository, verseID uint) error {
	ok, err := tx.VerseExists(ctx, verseID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownVerse, verseID)
	}
	return nil
}

// normalizeColor treats nil and blank as "no colour".
func normalizeColor(color *string) (*string, error) {
	if color == nil || strings.TrimSpace(*color) == "" {
		return nil, nil
	}
	hex, err := utils.NormalizeHexColor(*color)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidColor, err)
	}
	return &hex, nil
}

// classify keeps request errors as they are and files everything else
// under storage failures.
func classify(op string, err error) error {
	if errors.Is(err, ErrUnknownVerse) || errors.Is(err, ErrInvalidColor) {
		return err
	}
	return database.Classify(op, err)
}
