package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/biblereader/internal/database"
	"github.com/mrlokans/biblereader/internal/live"
)

const PruneOrphanAnnotationsQueue = "prune_orphan_annotations"

// OrphanPruner deletes annotations whose verse has disappeared from the corpus.
type OrphanPruner interface {
	PruneOrphans(ctx context.Context) (bookmarks int64, highlights int64, err error)
}

// Optimizer refreshes the query planner statistics of the reader database.
type Optimizer interface {
	Optimize(ctx context.Context) error
}

// PruneOrphanAnnotationsTask is the periodic maintenance run.
type PruneOrphanAnnotationsTask struct {
	Optimize bool `json:"optimize"`
}

func (t PruneOrphanAnnotationsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        PruneOrphanAnnotationsQueue,
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PruneOrphanAnnotationsProcessor announces pruned tables on changes so open
// chapter views drop the removed annotations. optimizer and changes may be nil.
func PruneOrphanAnnotationsProcessor(pruner OrphanPruner, optimizer Optimizer, changes *live.Bus) backlite.QueueProcessor[PruneOrphanAnnotationsTask] {
	return func(ctx context.Context, task PruneOrphanAnnotationsTask) error {
		if pruner == nil {
			return fmt.Errorf("orphan pruner not configured")
		}

		bookmarks, highlights, err := pruner.PruneOrphans(ctx)
		if err != nil {
			return fmt.Errorf("prune orphan annotations: %w", err)
		}
		log.Printf("[TASK] Pruned %d orphaned bookmarks and %d orphaned highlights", bookmarks, highlights)

		if changes != nil {
			if bookmarks > 0 {
				changes.Publish(database.TableBookmarks)
			}
			if highlights > 0 {
				changes.Publish(database.TableHighlights)
			}
		}

		if task.Optimize && optimizer != nil {
			if err := optimizer.Optimize(ctx); err != nil {
				return fmt.Errorf("optimize database: %w", err)
			}
		}
		return nil
	}
}

func NewPruneOrphanAnnotationsQueue(pruner OrphanPruner, optimizer Optimizer, changes *live.Bus) backlite.Queue {
	return backlite.NewQueue(PruneOrphanAnnotationsProcessor(pruner, optimizer, changes))
}
