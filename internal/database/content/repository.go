// Package content provides read access to the reader's corpus: books,
// chapters, verses, section headings, languages and translations.
//
// The corpus is loaded once by internal/corpus and never mutated at
// runtime, so every method here except the Save* family is a pure read.
//
// # Usage
//
//	repo := content.NewRepository(db)
//	verses, err := repo.GetVersesByChapter(ctx, chapterID)
package content

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/biblereader/internal/database"
	"github.com/mrlokans/biblereader/internal/entities"
)

// Repository handles all corpus database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new content repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetLanguages returns every language ordered by id.
func (r *Repository) GetLanguages(ctx context.Context) ([]entities.Language, error) {
	var languages []entities.Language
	err := r.db.WithContext(ctx).Order("id ASC").Find(&languages).Error
	return languages, database.Classify("get languages", err)
}

// GetLanguageByID returns ErrNotFound for an unknown id.
func (r *Repository) GetLanguageByID(ctx context.Context, id uint) (*entities.Language, error) {
	var language entities.Language
	if err := r.db.WithContext(ctx).First(&language, id).Error; err != nil {
		return nil, database.Classify("get language", err)
	}
	return &language, nil
}

// GetLanguageByCode matches the language code case-insensitively.
func (r *Repository) GetLanguageByCode(ctx context.Context, code string) (*entities.Language, error) {
	var language entities.Language
	err := r.db.WithContext(ctx).
		Where("ulower(code) = ulower(?)", strings.TrimSpace(code)).
		First(&language).Error
	if err != nil {
		return nil, database.Classify("get language by code", err)
	}
	return &language, nil
}

// GetBooks returns every book in canonical order.
func (r *Repository) GetBooks(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Order("book_order ASC").Find(&books).Error
	return books, database.Classify("get books", err)
}

// GetBooksByTestament returns one testament's books in canonical order.
func (r *Repository) GetBooksByTestament(ctx context.Context, testament entities.Testament) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).
		Where("testament = ?", testament).
		Order("book_order ASC").
		Find(&books).Error
	return books, database.Classify("get books by testament", err)
}

// GetBookByID returns ErrNotFound for an unknown id.
func (r *Repository) GetBookByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, database.Classify("get book", err)
	}
	return &book, nil
}

// SearchBooksByName performs a case-insensitive substring match on book names.
func (r *Repository) SearchBooksByName(ctx context.Context, query string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).
		Where(`ulower(name) LIKE ulower(?) ESCAPE '\'`, containsPattern(query)).
		Order("book_order ASC").
		Find(&books).Error
	return books, database.Classify("search books", err)
}

// FindBookByName picks the best book for a free-text name. An exact match
// beats a prefix match, which beats a substring match; ties go to the
// book that comes first in canonical order.
func (r *Repository) FindBookByName(ctx context.Context, name string) (*entities.Book, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, database.ErrNotFound
	}

	candidates := []struct {
		clause string
		arg    string
	}{
		{"ulower(name) = ulower(?)", name},
		{`ulower(name) LIKE ulower(?) ESCAPE '\'`, escapeLike(name) + "%"},
		{`ulower(name) LIKE ulower(?) ESCAPE '\'`, containsPattern(name)},
	}

	for _, c := range candidates {
		var books []entities.Book
		err := r.db.WithContext(ctx).
			Where(c.clause, c.arg).
			Order("book_order ASC").
			Limit(1).
			Find(&books).Error
		if err != nil {
			return nil, database.Classify("find book by name", err)
		}
		if len(books) > 0 {
			return &books[0], nil
		}
	}
	return nil, database.ErrNotFound
}

// GetChaptersByBook returns a book's chapters ordered by number.
func (r *Repository) GetChaptersByBook(ctx context.Context, bookID uint) ([]entities.Chapter, error) {
	var chapters []entities.Chapter
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("chapter_number ASC").
		Find(&chapters).Error
	return chapters, database.Classify("get chapters", err)
}

// GetChapterByID returns ErrNotFound for an unknown id.
func (r *Repository) GetChapterByID(ctx context.Context, id uint) (*entities.Chapter, error) {
	var chapter entities.Chapter
	if err := r.db.WithContext(ctx).First(&chapter, id).Error; err != nil {
		return nil, database.Classify("get chapter", err)
	}
	return &chapter, nil
}

// GetChapterByNumber finds a chapter by its number within a book.
func (r *Repository) GetChapterByNumber(ctx context.Context, bookID uint, number int) (*entities.Chapter, error) {
	var chapter entities.Chapter
	err := r.db.WithContext(ctx).
		Where("book_id = ? AND chapter_number = ?", bookID, number).
		First(&chapter).Error
	if err != nil {
		return nil, database.Classify("get chapter by number", err)
	}
	return &chapter, nil
}

// GetChapterReference returns the book name and number of a chapter.
func (r *Repository) GetChapterReference(ctx context.Context, chapterID uint) (*entities.ChapterReference, error) {
	var refs []entities.ChapterReference
	err := r.db.WithContext(ctx).
		Table("chapters").
		Select("chapters.id AS chapter_id, books.id AS book_id, books.name AS book_name, chapters.chapter_number AS chapter_number").
		Joins("JOIN books ON books.id = chapters.book_id").
		Where("chapters.id = ?", chapterID).
		Limit(1).
		Scan(&refs).Error
	if err != nil {
		return nil, database.Classify("get chapter reference", err)
	}
	if len(refs) == 0 {
		return nil, database.ErrNotFound
	}
	return &refs[0], nil
}

// GetVersesByChapter returns the verses of a chapter ordered by verse number.
func (r *Repository) GetVersesByChapter(ctx context.Context, chapterID uint) ([]entities.Verse, error) {
	var verses []entities.Verse
	err := r.db.WithContext(ctx).
		Where("chapter_id = ?", chapterID).
		Order("verse_number ASC").
		Find(&verses).Error
	return verses, database.Classify("get verses", err)
}

// GetVerseByID returns ErrNotFound for an unknown id.
func (r *Repository) GetVerseByID(ctx context.Context, id uint) (*entities.Verse, error) {
	var verse entities.Verse
	if err := r.db.WithContext(ctx).First(&verse, id).Error; err != nil {
		return nil, database.Classify("get verse", err)
	}
	return &verse, nil
}

// GetVerseByNumber finds a verse by its number within a chapter.
func (r *Repository) GetVerseByNumber(ctx context.Context, chapterID uint, number int) (*entities.Verse, error) {
	var verse entities.Verse
	err := r.db.WithContext(ctx).
		Where("chapter_id = ? AND verse_number = ?", chapterID, number).
		First(&verse).Error
	if err != nil {
		return nil, database.Classify("get verse by number", err)
	}
	return &verse, nil
}

// GetTranslationsByChapter returns the translations of a chapter's verses
// in one language. The result carries no particular order.
func (r *Repository) GetTranslationsByChapter(ctx context.Context, chapterID, languageID uint) ([]entities.Translation, error) {
	var translations []entities.Translation
	err := r.db.WithContext(ctx).
		Joins("JOIN verses ON verses.id = translations.verse_id").
		Where("verses.chapter_id = ? AND translations.language_id = ?", chapterID, languageID).
		Find(&translations).Error
	return translations, database.Classify("get chapter translations", err)
}

// GetTranslation returns a verse's text in one language, or ErrNotFound.
func (r *Repository) GetTranslation(ctx context.Context, verseID, languageID uint) (*entities.Translation, error) {
	var translation entities.Translation
	err := r.db.WithContext(ctx).
		Where("verse_id = ? AND language_id = ?", verseID, languageID).
		First(&translation).Error
	if err != nil {
		return nil, database.Classify("get translation", err)
	}
	return &translation, nil
}

// GetHeadingsByChapter returns a chapter's headings ordered by their anchor.
func (r *Repository) GetHeadingsByChapter(ctx context.Context, chapterID uint) ([]entities.Heading, error) {
	var headings []entities.Heading
	err := r.db.WithContext(ctx).
		Where("chapter_id = ?", chapterID).
		Order("heading_order ASC, id ASC").
		Find(&headings).Error
	return headings, database.Classify("get headings", err)
}

// SearchTranslations finds verses whose text in the given language contains
// query, case-insensitively, in canonical reading order.
func (r *Repository) SearchTranslations(ctx context.Context, query string, languageID uint) ([]entities.VerseSearchResult, error) {
	var results []entities.VerseSearchResult
	err := r.db.WithContext(ctx).
		Table("translations").
		Select(`verses.id AS verse_id, verses.verse_number AS verse_number,
			chapters.id AS chapter_id, chapters.chapter_number AS chapter_number,
			books.id AS book_id, books.name AS book_name, books.book_order AS book_order,
			translations.id AS translation_id, translations.verse_text AS text`).
		Joins("JOIN verses ON verses.id = translations.verse_id").
		Joins("JOIN chapters ON chapters.id = verses.chapter_id").
		Joins("JOIN books ON books.id = chapters.book_id").
		Where("translations.language_id = ?", languageID).
		Where(`ulower(translations.verse_text) LIKE ulower(?) ESCAPE '\'`, containsPattern(query)).
		Order("books.book_order ASC, chapters.chapter_number ASC, verses.verse_number ASC").
		Scan(&results).Error
	return results, database.Classify("search translations", err)
}

func containsPattern(s string) string {
	return "%" + escapeLike(s) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
