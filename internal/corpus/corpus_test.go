package corpus

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/biblereader/internal/database"
	"github.com/mrlokans/biblereader/internal/database/content"
	"github.com/mrlokans/biblereader/internal/entities"
	"github.com/mrlokans/biblereader/internal/live"
)

func setupTestDB(t *testing.T) (*content.Repository, func()) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "corpus.db"), database.Options{LogLevel: logger.Silent})
	require.NoError(t, err)
	return content.NewRepository(db.DB), func() { db.Close() }
}

func TestReadFile(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		c, err := ReadFile("testdata/sample.yaml")
		require.NoError(t, err)
		assert.Len(t, c.Languages, 2)
		require.Len(t, c.Books, 3)
		assert.Equal(t, "The Creation", c.Books[0].Chapters[0].Headings[0].Text)
		assert.Contains(t, c.Books[0].Chapters[0].Verses[0].Text["ru"], "В начале")
	})

	t.Run("json", func(t *testing.T) {
		c, err := ReadFile("testdata/sample.json")
		require.NoError(t, err)
		require.Len(t, c.Books, 1)
		assert.Equal(t, 16, c.Books[0].Chapters[0].Verses[0].Number)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := ReadFile("testdata/sample.csv")
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Corpus {
		return &Corpus{
			Languages: []Language{{Code: "en", Name: "English"}},
			Books: []Book{{
				Name: "Psalms", Testament: "Old", Order: 19,
				Chapters: []Chapter{{
					Number:   3,
					Headings: []Heading{{Order: 1, Text: "A Psalm of David"}},
					Verses: []Verse{
						{Number: 1, Text: map[string]string{"en": "LORD, how are they increased that trouble me!"}},
						{Number: 2},
					},
				}},
			}},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name    string
		mutate  func(c *Corpus)
		message string
	}{
		{"dangling heading", func(c *Corpus) {
			c.Books[0].Chapters[0].Headings = append(c.Books[0].Chapters[0].Headings, Heading{Order: 9, Text: "Selah"})
		}, "anchored to missing verse 9"},
		{"duplicate verse", func(c *Corpus) {
			c.Books[0].Chapters[0].Verses = append(c.Books[0].Chapters[0].Verses, Verse{Number: 2})
		}, "duplicate verse"},
		{"duplicate heading order", func(c *Corpus) {
			c.Books[0].Chapters[0].Headings = append(c.Books[0].Chapters[0].Headings, Heading{Order: 1, Text: "Again"})
		}, "duplicate heading order 1"},
		{"undeclared language", func(c *Corpus) {
			c.Books[0].Chapters[0].Verses[1].Text = map[string]string{"de": "Ach Herr"}
		}, `undeclared language "de"`},
		{"duplicate language", func(c *Corpus) {
			c.Languages = append(c.Languages, Language{Code: "en", Name: "English again"})
		}, `duplicate code "en"`},
		{"non-positive chapter", func(c *Corpus) {
			c.Books[0].Chapters[0].Number = 0
		}, "chapter number must be positive"},
		{"missing testament", func(c *Corpus) {
			c.Books[0].Testament = ""
		}, "testament is required"},
		{"padded language code", func(c *Corpus) {
			c.Languages[0].Code = " en"
		}, `code " en" has surrounding whitespace`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.ErrorIs(t, err, ErrInvalidCorpus)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoader_Load(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	c, err := ReadFile("testdata/sample.yaml")
	require.NoError(t, err)

	bus := live.NewBus()
	changed, unsubscribe := bus.Subscribe(database.TableVerses)
	defer unsubscribe()

	stats, err := NewLoader(repo, bus).Load(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, Stats{Languages: 2, Books: 3, Chapters: 3, Verses: 5, Headings: 1, Translations: 6}, stats)

	select {
	case <-changed:
	default:
		t.Fatal("expected a change notification for verses")
	}

	books, err := repo.GetBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, entities.TestamentNew, books[2].Testament)

	genesis, err := repo.FindBookByName(ctx, "Genesis")
	require.NoError(t, err)
	chapter, err := repo.GetChapterByNumber(ctx, genesis.ID, 1)
	require.NoError(t, err)
	verses, err := repo.GetVersesByChapter(ctx, chapter.ID)
	require.NoError(t, err)
	assert.Len(t, verses, 3)
}

func TestLoader_ReloadOverwritesByNaturalKey(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	loader := NewLoader(repo, nil)

	first, err := Decode(strings.NewReader(`{
		"languages": [{"code": "en", "name": "English"}],
		"books": [{"name": "Ruth", "testament": "Old", "order": 8, "chapters": [
			{"number": 1, "verses": [{"number": 16, "text": {"en": "Whither thou goest."}}]}
		]}]
	}`), FormatJSON)
	require.NoError(t, err)
	_, err = loader.Load(ctx, first)
	require.NoError(t, err)

	second := *first
	second.Books = []Book{{Name: "Ruth", Testament: "Old", Order: 8, Chapters: []Chapter{
		{Number: 1, Verses: []Verse{{Number: 16, Text: map[string]string{"en": "Whither thou goest, I will go."}}}},
	}}}
	_, err = loader.Load(ctx, &second)
	require.NoError(t, err)

	english, err := repo.GetLanguageByCode(ctx, "en")
	require.NoError(t, err)
	results, err := repo.SearchTranslations(ctx, "whither", english.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Whither thou goest, I will go.", results[0].Text)
}

func TestLoader_TrimsLanguageCodesOnDecode(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	c, err := Decode(strings.NewReader(`
languages:
  - code: " en "
    name: English
books:
  - name: Ruth
    testament: Old
    order: 8
    chapters:
      - number: 1
        verses:
          - number: 16
            text:
              "en ": Whither thou goest, I will go.
`), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "en", c.Languages[0].Code)
	assert.Contains(t, c.Books[0].Chapters[0].Verses[0].Text, "en")

	stats, err := NewLoader(repo, nil).Load(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Translations)

	english, err := repo.GetLanguageByCode(ctx, "en")
	require.NoError(t, err)
	results, err := repo.SearchTranslations(ctx, "whither", english.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Whither thou goest, I will go.", results[0].Text)
}

func TestDecode_RejectsTextKeysEqualAfterTrimming(t *testing.T) {
	_, err := Decode(strings.NewReader(`{
		"languages": [{"code": "en", "name": "English"}],
		"books": [{"name": "Ruth", "testament": "Old", "order": 8, "chapters": [
			{"number": 1, "verses": [{"number": 16, "text": {"en": "Whither", " en": "thou goest"}}]}
		]}]
	}`), FormatJSON)
	require.ErrorIs(t, err, ErrInvalidCorpus)
	assert.Contains(t, err.Error(), `text for "en" given twice`)
}

func TestLoader_RejectsInvalidCorpusWithoutWriting(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	c := &Corpus{
		Languages: []Language{{Code: "en", Name: "English"}},
		Books: []Book{{Name: "Jude", Testament: "New", Order: 65, Chapters: []Chapter{{
			Number:   1,
			Headings: []Heading{{Order: 30, Text: "Doxology"}},
			Verses:   []Verse{{Number: 1}},
		}}}},
	}

	_, err := NewLoader(repo, nil).Load(ctx, c)
	require.ErrorIs(t, err, ErrInvalidCorpus)

	languages, err := repo.GetLanguages(ctx)
	require.NoError(t, err)
	assert.Empty(t, languages)
}
