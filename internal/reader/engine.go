package reader

import (
	"context"

	"github.com/mrlokans/biblereader/internal/entities"
	"github.com/mrlokans/biblereader/internal/live"
	"github.com/mrlokans/biblereader/internal/query"
)

// Projections are the five streams a chapter display is built from.
type Projections interface {
	WatchVerses(ctx context.Context, chapterID uint) <-chan live.Snapshot[[]entities.Verse]
	WatchTranslations(ctx context.Context, chapterID, languageID uint) <-chan live.Snapshot[[]entities.Translation]
	WatchHeadings(ctx context.Context, chapterID uint) <-chan live.Snapshot[[]entities.Heading]
	WatchBookmarkedVerses(ctx context.Context, chapterID uint) <-chan live.Snapshot[query.VerseSet]
	WatchChapterHighlights(ctx context.Context, chapterID uint) <-chan live.Snapshot[query.HighlightMap]
}

// Display is one complete rendering of a chapter.
type Display struct {
	ChapterID  uint          `json:"chapter_id"`
	LanguageID uint          `json:"language_id"`
	Items      []DisplayItem `json:"items"`
}

// Engine keeps chapter displays up to date as their inputs change.
type Engine struct {
	source Projections
}

// NewEngine builds an engine over the given projections.
func NewEngine(source Projections) *Engine {
	return &Engine{source: source}
}

// Watch emits a fresh Display whenever verses, translations, headings,
// bookmarks or highlights of the chapter change. The first emission waits
// until every input has loaded. When an input fails, that emission carries
// the error and no items. The channel closes when ctx is done.
func (e *Engine) Watch(ctx context.Context, chapterID, languageID uint) <-chan live.Snapshot[Display] {
	inputs := live.CombineLatest(ctx,
		live.From(e.source.WatchVerses(ctx, chapterID)),
		live.From(e.source.WatchTranslations(ctx, chapterID, languageID)),
		live.From(e.source.WatchHeadings(ctx, chapterID)),
		live.From(e.source.WatchBookmarkedVerses(ctx, chapterID)),
		live.From(e.source.WatchChapterHighlights(ctx, chapterID)),
	)

	return live.Map(ctx, inputs, func(values []any) Display {
		return Display{
			ChapterID:  chapterID,
			LanguageID: languageID,
			Items: BuildDisplay(
				values[0].([]entities.Verse),
				values[1].([]entities.Translation),
				values[2].([]entities.Heading),
				values[3].(query.VerseSet),
				values[4].(query.HighlightMap),
			),
		}
	})
}

// Chapter returns the current Display of a chapter.
func (e *Engine) Chapter(ctx context.Context, chapterID, languageID uint) (Display, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	snap, ok := <-e.Watch(ctx, chapterID, languageID)
	if !ok {
		return Display{}, ctx.Err()
	}
	return snap.Value, snap.Err
}
