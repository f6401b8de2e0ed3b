package corpus

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/mrlokans/biblereader/internal/database"
	"github.com/mrlokans/biblereader/internal/database/content"
	"github.com/mrlokans/biblereader/internal/entities"
	"github.com/mrlokans/biblereader/internal/live"
)

// Stats counts the rows written by a load.
type Stats struct {
	Languages    int `json:"languages"`
	Books        int `json:"books"`
	Chapters     int `json:"chapters"`
	Verses       int `json:"verses"`
	Headings     int `json:"headings"`
	Translations int `json:"translations"`
}

func (s Stats) String() string {
	return fmt.Sprintf("%d languages, %d books, %d chapters, %d verses, %d headings, %d translations",
		s.Languages, s.Books, s.Chapters, s.Verses, s.Headings, s.Translations)
}

// Loader writes a validated corpus into the content store.
type Loader struct {
	repo    *content.Repository
	changes *live.Bus
}

// NewLoader creates a loader. changes may be nil when nothing is watching.
func NewLoader(repo *content.Repository, changes *live.Bus) *Loader {
	return &Loader{repo: repo, changes: changes}
}

// Load validates c and writes it in a single transaction. Rows that already
// exist under the same natural key are overwritten; nothing is deleted.
func (l *Loader) Load(ctx context.Context, c *Corpus) (Stats, error) {
	if err := c.Validate(); err != nil {
		return Stats{}, err
	}

	var stats Stats
	err := l.repo.Transaction(ctx, func(tx *content.Repository) error {
		stats = Stats{}

		languageIDs := make(map[string]uint, len(c.Languages))
		for _, lang := range c.Languages {
			row := entities.Language{Code: lang.Code, Name: lang.Name}
			if err := tx.SaveLanguage(ctx, &row); err != nil {
				return fmt.Errorf("language %q: %w", lang.Code, err)
			}
			languageIDs[lang.Code] = row.ID
			stats.Languages++
		}

		for _, book := range c.Books {
			if err := l.loadBook(ctx, tx, book, languageIDs, &stats); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("failed to load corpus: %w", err)
	}

	if l.changes != nil {
		l.changes.Publish(
			database.TableLanguages, database.TableBooks, database.TableChapters,
			database.TableVerses, database.TableHeadings, database.TableTranslations,
		)
	}

	log.Printf("[CORPUS] Loaded %s", stats)
	return stats, nil
}

func (l *Loader) loadBook(ctx context.Context, tx *content.Repository, book Book, languageIDs map[string]uint, stats *Stats) error {
	bookRow := entities.Book{Name: book.Name, Testament: entities.Testament(book.Testament), Order: book.Order}
	if err := tx.SaveBook(ctx, &bookRow); err != nil {
		return fmt.Errorf("book %q: %w", book.Name, err)
	}
	stats.Books++

	for _, chapter := range book.Chapters {
		chapterRow := entities.Chapter{BookID: bookRow.ID, Number: chapter.Number}
		if err := tx.SaveChapter(ctx, &chapterRow); err != nil {
			return fmt.Errorf("chapter %s %d: %w", book.Name, chapter.Number, err)
		}
		stats.Chapters++

		for _, verse := range chapter.Verses {
			verseRow := entities.Verse{ChapterID: chapterRow.ID, Number: verse.Number}
			if err := tx.SaveVerse(ctx, &verseRow); err != nil {
				return fmt.Errorf("verse %s %d:%d: %w", book.Name, chapter.Number, verse.Number, err)
			}
			stats.Verses++

			for _, code := range sortedKeys(verse.Text) {
				translation := entities.Translation{
					VerseID:    verseRow.ID,
					LanguageID: languageIDs[code],
					Text:       verse.Text[code],
				}
				if err := tx.SaveTranslation(ctx, &translation); err != nil {
					return fmt.Errorf("translation %s %d:%d [%s]: %w", book.Name, chapter.Number, verse.Number, code, err)
				}
				stats.Translations++
			}
		}

		for _, heading := range chapter.Headings {
			headingRow := entities.Heading{ChapterID: chapterRow.ID, Order: heading.Order, Text: heading.Text}
			if err := tx.SaveHeading(ctx, &headingRow); err != nil {
				return fmt.Errorf("heading %s %d (%d): %w", book.Name, chapter.Number, heading.Order, err)
			}
			stats.Headings++
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
