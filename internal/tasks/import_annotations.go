package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/biblereader/internal/annotations"
	"github.com/mrlokans/biblereader/internal/entities"
)

const ImportAnnotationsQueue = "import_annotations"

// AnnotationImporter applies an annotation document to the store.
type AnnotationImporter interface {
	Import(ctx context.Context, doc entities.AnnotationDocument) (annotations.ImportResult, error)
}

// ImportAnnotationsTask imports a previously exported annotation document
// in the background.
type ImportAnnotationsTask struct {
	Document entities.AnnotationDocument `json:"document"`
}

func (t ImportAnnotationsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        ImportAnnotationsQueue,
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     10 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ImportAnnotationsProcessor does not retry: an import that fails
// validation fails the same way every time.
func ImportAnnotationsProcessor(importer AnnotationImporter) backlite.QueueProcessor[ImportAnnotationsTask] {
	return func(ctx context.Context, task ImportAnnotationsTask) error {
		if importer == nil {
			return fmt.Errorf("annotation importer not configured")
		}

		result, err := importer.Import(ctx, task.Document)
		if err != nil {
			return fmt.Errorf("import annotations: %w", err)
		}

		log.Printf("[TASK] Imported %d bookmarks and %d highlights", result.Bookmarks, result.Highlights)
		return nil
	}
}

func NewImportAnnotationsQueue(importer AnnotationImporter) backlite.Queue {
	return backlite.NewQueue(ImportAnnotationsProcessor(importer))
}
