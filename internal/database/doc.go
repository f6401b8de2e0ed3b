// Package database provides the data access layer for the reader.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, pool limits, PRAGMA helpers
//	├── migrate.go       # Embedded schema migrations (db/migrations)
//	├── errors.go        # ErrNotFound and StorageError
//	├── content/         # Books, chapters, verses, headings, languages, translations
//	└── annotations/     # Bookmarks and highlights
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./reader.db")
//
//	contentRepo := content.NewRepository(db.DB)
//	annotationRepo := annotations.NewRepository(db.DB)
//
//	verses, err := contentRepo.GetVersesByChapter(ctx, chapterID)
//	ids, err := annotationRepo.GetBookmarkedVerseIDs(ctx, chapterID)
//
// # Errors
//
// Repositories never return gorm errors directly. A missing row is
// reported as ErrNotFound; anything else the driver reports is wrapped
// in a *StorageError so callers can tell "nothing there" apart from
// "the store is broken".
//
// # Interface Implementations
//
//   - content.Repository: implements query.ContentReader and corpus.ContentWriter
//   - annotations.Repository: implements query.AnnotationReader and annotations.Store
package database
