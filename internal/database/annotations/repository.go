// Package annotations provides database operations for bookmarks and highlights.
//
// Nothing outside internal/annotations (the mutator) and the maintenance
// task should write through this repository.
//
// # Usage
//
//	repo := annotations.NewRepository(db)
//	ids, err := repo.GetBookmarkedVerseIDs(ctx, chapterID)
package annotations

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/biblereader/internal/database"
	"github.com/mrlokans/biblereader/internal/entities"
)

// Repository handles all annotation database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new annotations repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Transaction runs fn against a repository bound to a single transaction.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// VerseExists reports whether a verse with the given id is in the corpus.
func (r *Repository) VerseExists(ctx context.Context, verseID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table(database.TableVerses).Where("id = ?", verseID).Count(&count).Error
	if err != nil {
		return false, database.Classify("check verse", err)
	}
	return count > 0, nil
}

// GetBookmarkedVerseIDs returns the ids of bookmarked verses in a chapter.
func (r *Repository) GetBookmarkedVerseIDs(ctx context.Context, chapterID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&entities.Bookmark{}).
		Joins("JOIN verses ON verses.id = bookmarks.verse_id").
		Where("verses.chapter_id = ?", chapterID).
		Order("bookmarks.verse_id ASC").
		Pluck("bookmarks.verse_id", &ids).Error
	return ids, database.Classify("get bookmarked verses", err)
}

// GetBookmarkForVerse returns the verse's bookmark, or ErrNotFound.
func (r *Repository) GetBookmarkForVerse(ctx context.Context, verseID uint) (*entities.Bookmark, error) {
	var bookmark entities.Bookmark
	if err := r.db.WithContext(ctx).Where("verse_id = ?", verseID).First(&bookmark).Error; err != nil {
		return nil, database.Classify("get bookmark", err)
	}
	return &bookmark, nil
}

// GetHighlightForVerse returns ErrNotFound when the verse is not highlighted.
func (r *Repository) GetHighlightForVerse(ctx context.Context, verseID uint) (*entities.Highlight, error) {
	var highlight entities.Highlight
	if err := r.db.WithContext(ctx).Where("verse_id = ?", verseID).First(&highlight).Error; err != nil {
		return nil, database.Classify("get highlight", err)
	}
	return &highlight, nil
}

// GetHighlightsByChapter returns the highlights of every verse in a chapter.
func (r *Repository) GetHighlightsByChapter(ctx context.Context, chapterID uint) ([]entities.Highlight, error) {
	var highlights []entities.Highlight
	err := r.db.WithContext(ctx).
		Joins("JOIN verses ON verses.id = highlights.verse_id").
		Where("verses.chapter_id = ?", chapterID).
		Order("highlights.verse_id ASC").
		Find(&highlights).Error
	return highlights, database.Classify("get chapter highlights", err)
}

// GetAllBookmarks returns every bookmark ordered by id.
func (r *Repository) GetAllBookmarks(ctx context.Context) ([]entities.Bookmark, error) {
	var bookmarks []entities.Bookmark
	err := r.db.WithContext(ctx).Order("id ASC").Find(&bookmarks).Error
	return bookmarks, database.Classify("get bookmarks", err)
}

// GetAllHighlights returns every highlight ordered by id.
func (r *Repository) GetAllHighlights(ctx context.Context) ([]entities.Highlight, error) {
	var highlights []entities.Highlight
	err := r.db.WithContext(ctx).Order("id ASC").Find(&highlights).Error
	return highlights, database.Classify("get highlights", err)
}

// CreateBookmark inserts a bookmark; a second bookmark on the same verse violates the unique index.
func (r *Repository) CreateBookmark(ctx context.Context, bookmark *entities.Bookmark) error {
	return database.Classify("create bookmark", r.db.WithContext(ctx).Create(bookmark).Error)
}

// DeleteBookmark removes a bookmark by id.
func (r *Repository) DeleteBookmark(ctx context.Context, id uint) error {
	return database.Classify("delete bookmark", r.db.WithContext(ctx).Delete(&entities.Bookmark{}, id).Error)
}

// CreateHighlight inserts a highlight; at most one may exist per verse.
func (r *Repository) CreateHighlight(ctx context.Context, highlight *entities.Highlight) error {
	return database.Classify("create highlight", r.db.WithContext(ctx).Create(highlight).Error)
}

// DeleteHighlight removes a highlight by id.
func (r *Repository) DeleteHighlight(ctx context.Context, id uint) error {
	return database.Classify("delete highlight", r.db.WithContext(ctx).Delete(&entities.Highlight{}, id).Error)
}

// UpsertBookmark inserts a bookmark or overwrites the timestamp of the
// verse's existing one.
func (r *Repository) UpsertBookmark(ctx context.Context, bookmark *entities.Bookmark) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "verse_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"timestamp"}),
	}).Create(bookmark).Error
	return database.Classify("upsert bookmark", err)
}

// UpsertHighlight inserts a highlight or overwrites colour and timestamp of
// the verse's existing one.
func (r *Repository) UpsertHighlight(ctx context.Context, highlight *entities.Highlight) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "verse_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"color_hex", "timestamp"}),
	}).Create(highlight).Error
	return database.Classify("upsert highlight", err)
}

// PruneOrphans removes annotations whose verse no longer exists.
func (r *Repository) PruneOrphans(ctx context.Context) (bookmarks int64, highlights int64, err error) {
	err = r.Transaction(ctx, func(tx *Repository) error {
		orphaned := "verse_id NOT IN (SELECT id FROM verses)"

		res := tx.db.Where(orphaned).Delete(&entities.Bookmark{})
		if res.Error != nil {
			return res.Error
		}
		bookmarks = res.RowsAffected

		res = tx.db.Where(orphaned).Delete(&entities.Highlight{})
		if res.Error != nil {
			return res.Error
		}
		highlights = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, 0, database.Classify("prune orphans", err)
	}
	return bookmarks, highlights, nil
}
