package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/biblereader/internal/annotations"
	"github.com/mrlokans/biblereader/internal/database"
	"github.com/mrlokans/biblereader/internal/entities"
	"github.com/mrlokans/biblereader/internal/live"
)

func TestDatabasePath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "reader-tasks.db"), DatabasePath(filepath.Join("data", "reader.db")))
	assert.Equal(t, "reader-tasks", DatabasePath("reader"))
}

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg)
	require.NoError(t, err)
	require.NotNil(t, client)

	_, err = os.Stat(filepath.Join(tmpDir, "test-tasks.db"))
	assert.NoError(t, err, "tasks database should be created")

	assert.NoError(t, client.Close())
}

func TestClientStartStop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), cfg)
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	assert.True(t, client.Stop(stopCtx), "stop should succeed gracefully")
}

func TestStopWithoutStart(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	assert.True(t, client.Stop(context.Background()))
}

type fakeImporter struct {
	docs chan entities.AnnotationDocument
}

func (f *fakeImporter) Import(_ context.Context, doc entities.AnnotationDocument) (annotations.ImportResult, error) {
	f.docs <- doc
	return annotations.ImportResult{Bookmarks: len(doc.Bookmarks), Highlights: len(doc.Highlights)}, nil
}

func TestImportAnnotationsTaskRunsOnQueue(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), cfg)
	require.NoError(t, err)
	defer client.Close()

	importer := &fakeImporter{docs: make(chan entities.AnnotationDocument, 1)}
	client.Register(NewImportAnnotationsQueue(importer))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	doc := entities.AnnotationDocument{
		Bookmarks: []entities.BookmarkRecord{{VerseID: 7, Timestamp: 1700000000000}},
	}
	id, err := client.Enqueue(ctx, ImportAnnotationsTask{Document: doc})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	select {
	case got := <-importer.docs:
		assert.Equal(t, doc, got)
	case <-time.After(5 * time.Second):
		t.Fatal("task was not executed within timeout")
	}
}

func TestTaskStatusUnknownID(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	status, err := client.Status(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, "not_found", StatusString(status))
}

func TestImportAnnotationsTaskConfig(t *testing.T) {
	cfg := ImportAnnotationsTask{}.Config()

	assert.Equal(t, ImportAnnotationsQueue, cfg.Name)
	assert.Equal(t, 1, cfg.MaxAttempts)
	assert.Equal(t, 10*time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

func TestPruneOrphanAnnotationsTaskConfig(t *testing.T) {
	cfg := PruneOrphanAnnotationsTask{}.Config()

	assert.Equal(t, PruneOrphanAnnotationsQueue, cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
}

type fakePruner struct {
	bookmarks, highlights int64
	err                   error
}

func (f fakePruner) PruneOrphans(context.Context) (int64, int64, error) {
	return f.bookmarks, f.highlights, f.err
}

type fakeOptimizer struct {
	calls int
}

func (f *fakeOptimizer) Optimize(context.Context) error {
	f.calls++
	return nil
}

func TestPruneOrphanAnnotationsProcessor(t *testing.T) {
	bus := live.NewBus()
	bookmarks, unsubscribe := bus.Subscribe(database.TableBookmarks)
	defer unsubscribe()
	highlights, unsubscribeHighlights := bus.Subscribe(database.TableHighlights)
	defer unsubscribeHighlights()

	optimizer := &fakeOptimizer{}
	process := PruneOrphanAnnotationsProcessor(fakePruner{bookmarks: 2}, optimizer, bus)

	require.NoError(t, process(context.Background(), PruneOrphanAnnotationsTask{Optimize: true}))
	assert.Equal(t, 1, optimizer.calls)

	select {
	case <-bookmarks:
	default:
		t.Fatal("expected bookmarks change notification")
	}
	select {
	case <-highlights:
		t.Fatal("no highlights were pruned")
	default:
	}
}

func TestPruneOrphanAnnotationsProcessorErrors(t *testing.T) {
	process := PruneOrphanAnnotationsProcessor(nil, nil, nil)
	assert.Error(t, process(context.Background(), PruneOrphanAnnotationsTask{}))

	boom := errors.New("boom")
	optimizer := &fakeOptimizer{}
	process = PruneOrphanAnnotationsProcessor(fakePruner{err: boom}, optimizer, nil)
	assert.ErrorIs(t, process(context.Background(), PruneOrphanAnnotationsTask{Optimize: true}), boom)
	assert.Zero(t, optimizer.calls)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "pending", StatusString(backlite.TaskStatusPending))
	assert.Equal(t, "running", StatusString(backlite.TaskStatusRunning))
	assert.Equal(t, "success", StatusString(backlite.TaskStatusSuccess))
	assert.Equal(t, "failure", StatusString(backlite.TaskStatusFailure))
}
