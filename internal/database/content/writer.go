package content

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/biblereader/internal/database"
	"github.com/mrlokans/biblereader/internal/entities"
)

// Transaction runs fn against a repository bound to a single transaction.
// The corpus loader uses it so a half-loaded corpus is never visible.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// SaveLanguage inserts the language or updates the row with the same code.
func (r *Repository) SaveLanguage(ctx context.Context, language *entities.Language) error {
	return r.save(ctx, "save language", language, func(db *gorm.DB) *gorm.DB {
		return db.Where("code = ?", language.Code)
	}, func(id uint) { language.ID = id })
}

// SaveBook inserts the book or updates the row with the same name.
func (r *Repository) SaveBook(ctx context.Context, book *entities.Book) error {
	return r.save(ctx, "save book", book, func(db *gorm.DB) *gorm.DB {
		return db.Where("name = ?", book.Name)
	}, func(id uint) { book.ID = id })
}

// SaveChapter upserts a chapter keyed by book and number.
func (r *Repository) SaveChapter(ctx context.Context, chapter *entities.Chapter) error {
	return r.save(ctx, "save chapter", chapter, func(db *gorm.DB) *gorm.DB {
		return db.Where("book_id = ? AND chapter_number = ?", chapter.BookID, chapter.Number)
	}, func(id uint) { chapter.ID = id })
}

// SaveVerse upserts a verse keyed by chapter and number.
func (r *Repository) SaveVerse(ctx context.Context, verse *entities.Verse) error {
	return r.save(ctx, "save verse", verse, func(db *gorm.DB) *gorm.DB {
		return db.Where("chapter_id = ? AND verse_number = ?", verse.ChapterID, verse.Number)
	}, func(id uint) { verse.ID = id })
}

// SaveHeading upserts a heading keyed by chapter and order.
func (r *Repository) SaveHeading(ctx context.Context, heading *entities.Heading) error {
	return r.save(ctx, "save heading", heading, func(db *gorm.DB) *gorm.DB {
		return db.Where("chapter_id = ? AND heading_order = ?", heading.ChapterID, heading.Order)
	}, func(id uint) { heading.ID = id })
}

// SaveTranslation replaces the text of (verse, language) if it already exists.
func (r *Repository) SaveTranslation(ctx context.Context, translation *entities.Translation) error {
	return r.save(ctx, "save translation", translation, func(db *gorm.DB) *gorm.DB {
		return db.Where("verse_id = ? AND language_id = ?", translation.VerseID, translation.LanguageID)
	}, func(id uint) { translation.ID = id })
}

// save implements last-write-wins on a natural key: the row matched by
// scope is overwritten, otherwise a new row is created.
func (r *Repository) save(ctx context.Context, op string, row any, scope func(*gorm.DB) *gorm.DB, setID func(uint)) error {
	db := r.db.WithContext(ctx)
	setID(0)

	var existing struct{ ID uint }
	err := scope(db.Model(row)).Select("id").Take(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return database.Classify(op, db.Create(row).Error)
	case err != nil:
		return database.Classify(op, err)
	}

	setID(existing.ID)
	return database.Classify(op, db.Save(row).Error)
}
