// Package interfaces documents the core abstractions used throughout the application.
//
// # Layers
//
// The reader is built bottom-up, each layer consuming the one below through
// a small interface declared where it is used:
//
//   - database/content, database/annotations: gorm repositories over the
//     reader database (languages, books, chapters, verses, headings,
//     translations, bookmarks, highlights).
//   - live: the change bus. Writers publish table names after a commit;
//     projections subscribe and re-query.
//   - query: one-shot reads plus live projections (query.ContentReader,
//     query.AnnotationReader).
//   - reader: merges projections into a chapter display (reader.Projections).
//   - annotations: the mutator, the only writer of bookmarks and highlights.
//   - http, cli: the outer surfaces (http.Queries, http.DisplaySource,
//     http.AnnotationWriter, http.TaskQueue, http.MaintenanceRunner).
//   - tasks, scheduler: backlite queues and the cron maintenance trigger
//     (tasks.AnnotationImporter, tasks.OrphanPruner, tasks.Optimizer,
//     scheduler.Enqueuer).
//
// # Adding a New Projection
//
//  1. Add the one-shot read to a repository in internal/database/...
//
//  2. Expose a Watch method on query.Service built with live.Watch, naming
//     every table the read depends on:
//
//     func (s *Service) WatchVerseNotes(ctx context.Context, verseID uint) <-chan live.Snapshot[[]entities.Note] {
//         return live.Watch(ctx, s.changes, func(ctx context.Context) ([]entities.Note, error) {
//             return s.notes.GetNotes(ctx, verseID)
//         }, database.TableNotes)
//     }
//
//  3. Publish the table from the writer after its transaction commits.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the checks wiring the reader together.
package interfaces
