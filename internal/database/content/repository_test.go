package content

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/biblereader/internal/database"
	"github.com/mrlokans/biblereader/internal/entities"
)

type fixture struct {
	english, russian          entities.Language
	genesis, john, firstJohn  entities.Book
	genesis1, genesis2, john3 entities.Chapter
	gen1v1, gen1v2, gen1v3    entities.Verse
	john3v16                  entities.Verse
}

func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "content.db"), database.Options{LogLevel: logger.Silent})
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}
	return NewRepository(db.DB), cleanup
}

func seed(t *testing.T, repo *Repository) fixture {
	t.Helper()
	ctx := context.Background()
	var f fixture

	f.english = entities.Language{Code: "en", Name: "English"}
	f.russian = entities.Language{Code: "ru", Name: "Russian"}
	require.NoError(t, repo.SaveLanguage(ctx, &f.english))
	require.NoError(t, repo.SaveLanguage(ctx, &f.russian))

	// Inserted out of canonical order on purpose.
	f.firstJohn = entities.Book{Name: "1 John", Testament: entities.TestamentNew, Order: 62}
	f.john = entities.Book{Name: "John", Testament: entities.TestamentNew, Order: 43}
	f.genesis = entities.Book{Name: "Genesis", Testament: entities.TestamentOld, Order: 1}
	for _, b := range []*entities.Book{&f.firstJohn, &f.john, &f.genesis} {
		require.NoError(t, repo.SaveBook(ctx, b))
	}

	f.genesis2 = entities.Chapter{BookID: f.genesis.ID, Number: 2}
	f.genesis1 = entities.Chapter{BookID: f.genesis.ID, Number: 1}
	f.john3 = entities.Chapter{BookID: f.john.ID, Number: 3}
	for _, c := range []*entities.Chapter{&f.genesis2, &f.genesis1, &f.john3} {
		require.NoError(t, repo.SaveChapter(ctx, c))
	}

	f.gen1v3 = entities.Verse{ChapterID: f.genesis1.ID, Number: 3}
	f.gen1v1 = entities.Verse{ChapterID: f.genesis1.ID, Number: 1}
	f.gen1v2 = entities.Verse{ChapterID: f.genesis1.ID, Number: 2}
	f.john3v16 = entities.Verse{ChapterID: f.john3.ID, Number: 16}
	for _, v := range []*entities.Verse{&f.gen1v3, &f.gen1v1, &f.gen1v2, &f.john3v16} {
		require.NoError(t, repo.SaveVerse(ctx, v))
	}

	translations := []entities.Translation{
		{VerseID: f.gen1v1.ID, LanguageID: f.english.ID, Text: "In the beginning God created the heaven and the earth."},
		{VerseID: f.gen1v2.ID, LanguageID: f.english.ID, Text: "And the earth was without form, and void."},
		{VerseID: f.gen1v3.ID, LanguageID: f.english.ID, Text: "And God said, Let there be light: and there was light."},
		{VerseID: f.gen1v1.ID, LanguageID: f.russian.ID, Text: "В начале сотворил Бог небо и землю."},
		{VerseID: f.john3v16.ID, LanguageID: f.english.ID, Text: "For God so loved the world, that he gave his only begotten Son."},
	}
	for i := range translations {
		require.NoError(t, repo.SaveTranslation(ctx, &translations[i]))
	}

	headings := []entities.Heading{
		{ChapterID: f.genesis1.ID, Order: 3, Text: "Light"},
		{ChapterID: f.genesis1.ID, Order: 1, Text: "The Creation"},
	}
	for i := range headings {
		require.NoError(t, repo.SaveHeading(ctx, &headings[i]))
	}

	return f
}

func TestRepository_Languages(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	f := seed(t, repo)
	ctx := context.Background()

	languages, err := repo.GetLanguages(ctx)
	require.NoError(t, err)
	require.Len(t, languages, 2)
	assert.Equal(t, "en", languages[0].Code)

	lang, err := repo.GetLanguageByCode(ctx, " RU ")
	require.NoError(t, err)
	assert.Equal(t, f.russian.ID, lang.ID)

	_, err = repo.GetLanguageByCode(ctx, "xx")
	assert.ErrorIs(t, err, database.ErrNotFound)

	_, err = repo.GetLanguageByID(ctx, 999)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_Books(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	f := seed(t, repo)
	ctx := context.Background()

	t.Run("ordered by book order not id", func(t *testing.T) {
		books, err := repo.GetBooks(ctx)
		require.NoError(t, err)
		require.Len(t, books, 3)
		assert.Equal(t, []string{"Genesis", "John", "1 John"}, bookNames(books))
	})

	t.Run("filtered by testament", func(t *testing.T) {
		books, err := repo.GetBooksByTestament(ctx, entities.TestamentNew)
		require.NoError(t, err)
		assert.Equal(t, []string{"John", "1 John"}, bookNames(books))
	})

	t.Run("search is a case-insensitive substring match", func(t *testing.T) {
		books, err := repo.SearchBooksByName(ctx, "JOHN")
		require.NoError(t, err)
		assert.Equal(t, []string{"John", "1 John"}, bookNames(books))

		books, err = repo.SearchBooksByName(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("find prefers exact then prefix then substring", func(t *testing.T) {
		book, err := repo.FindBookByName(ctx, "john")
		require.NoError(t, err)
		assert.Equal(t, f.john.ID, book.ID)

		book, err = repo.FindBookByName(ctx, "1 jo")
		require.NoError(t, err)
		assert.Equal(t, f.firstJohn.ID, book.ID)

		book, err = repo.FindBookByName(ctx, "enes")
		require.NoError(t, err)
		assert.Equal(t, f.genesis.ID, book.ID)

		_, err = repo.FindBookByName(ctx, "Nonexistent")
		assert.ErrorIs(t, err, database.ErrNotFound)

		_, err = repo.FindBookByName(ctx, "  ")
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}

func TestRepository_Chapters(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	f := seed(t, repo)
	ctx := context.Background()

	chapters, err := repo.GetChaptersByBook(ctx, f.genesis.ID)
	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Equal(t, 1, chapters[0].Number)
	assert.Equal(t, 2, chapters[1].Number)

	chapter, err := repo.GetChapterByNumber(ctx, f.john.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, f.john3.ID, chapter.ID)

	_, err = repo.GetChapterByNumber(ctx, f.john.ID, 4)
	assert.ErrorIs(t, err, database.ErrNotFound)

	ref, err := repo.GetChapterReference(ctx, f.john3.ID)
	require.NoError(t, err)
	assert.Equal(t, "John 3", ref.String())
	assert.Equal(t, f.john.ID, ref.BookID)

	_, err = repo.GetChapterReference(ctx, 999)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_Verses(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	f := seed(t, repo)
	ctx := context.Background()

	verses, err := repo.GetVersesByChapter(ctx, f.genesis1.ID)
	require.NoError(t, err)
	require.Len(t, verses, 3)
	for i, v := range verses {
		assert.Equal(t, i+1, v.Number)
	}

	verses, err = repo.GetVersesByChapter(ctx, f.genesis2.ID)
	require.NoError(t, err)
	assert.Empty(t, verses)

	verse, err := repo.GetVerseByNumber(ctx, f.john3.ID, 16)
	require.NoError(t, err)
	assert.Equal(t, f.john3v16.ID, verse.ID)

	_, err = repo.GetVerseByNumber(ctx, f.john3.ID, 17)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_Translations(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	f := seed(t, repo)
	ctx := context.Background()

	translations, err := repo.GetTranslationsByChapter(ctx, f.genesis1.ID, f.english.ID)
	require.NoError(t, err)
	assert.Len(t, translations, 3)

	translations, err = repo.GetTranslationsByChapter(ctx, f.genesis1.ID, f.russian.ID)
	require.NoError(t, err)
	require.Len(t, translations, 1)
	assert.Equal(t, f.gen1v1.ID, translations[0].VerseID)

	_, err = repo.GetTranslation(ctx, f.gen1v2.ID, f.russian.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_SaveTranslationReplacesText(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	f := seed(t, repo)
	ctx := context.Background()

	original, err := repo.GetTranslation(ctx, f.gen1v1.ID, f.english.ID)
	require.NoError(t, err)

	replacement := entities.Translation{VerseID: f.gen1v1.ID, LanguageID: f.english.ID, Text: "In the beginning."}
	require.NoError(t, repo.SaveTranslation(ctx, &replacement))
	assert.Equal(t, original.ID, replacement.ID)

	got, err := repo.GetTranslation(ctx, f.gen1v1.ID, f.english.ID)
	require.NoError(t, err)
	assert.Equal(t, "In the beginning.", got.Text)
}

func TestRepository_Headings(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	f := seed(t, repo)

	headings, err := repo.GetHeadingsByChapter(context.Background(), f.genesis1.ID)
	require.NoError(t, err)
	require.Len(t, headings, 2)
	assert.Equal(t, "The Creation", headings[0].Text)
	assert.Equal(t, "Light", headings[1].Text)
}

func TestRepository_SearchTranslations(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	f := seed(t, repo)
	ctx := context.Background()

	results, err := repo.SearchTranslations(ctx, "god", f.english.ID)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "Genesis 1:1", results[0].Reference())
	assert.Equal(t, "Genesis 1:3", results[1].Reference())
	assert.Equal(t, "John 3:16", results[2].Reference())
	assert.Equal(t, f.john.ID, results[2].BookID)
	assert.Contains(t, results[2].Text, "loved the world")

	results, err = repo.SearchTranslations(ctx, "god", f.russian.ID)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRepository_CaseFoldingIsUnicodeAware(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	f := seed(t, repo)
	ctx := context.Background()

	for _, q := range []string{"Бог", "бог", "БОГ"} {
		results, err := repo.SearchTranslations(ctx, q, f.russian.ID)
		require.NoError(t, err, q)
		require.Len(t, results, 1, q)
		assert.Equal(t, "Genesis 1:1", results[0].Reference())
	}

	exodus := entities.Book{Name: "Исход", Testament: entities.TestamentOld, Order: 2}
	require.NoError(t, repo.SaveBook(ctx, &exodus))

	books, err := repo.SearchBooksByName(ctx, "ИСХ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Исход"}, bookNames(books))

	book, err := repo.FindBookByName(ctx, "исход")
	require.NoError(t, err)
	assert.Equal(t, exodus.ID, book.ID)

	lang, err := repo.GetLanguageByCode(ctx, "RU")
	require.NoError(t, err)
	assert.Equal(t, f.russian.ID, lang.ID)
}

func TestRepository_TransactionRollsBack(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	err := repo.Transaction(ctx, func(tx *Repository) error {
		if err := tx.SaveLanguage(ctx, &entities.Language{Code: "de", Name: "German"}); err != nil {
			return err
		}
		return tx.SaveChapter(ctx, &entities.Chapter{BookID: 12345, Number: 1})
	})
	require.Error(t, err)

	languages, err := repo.GetLanguages(ctx)
	require.NoError(t, err)
	assert.Empty(t, languages)
}

func bookNames(books []entities.Book) []string {
	names := make([]string, len(books))
	for i, b := range books {
		names[i] = b.Name
	}
	return names
}
