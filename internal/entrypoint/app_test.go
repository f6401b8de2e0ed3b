package entrypoint

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_LoadReadAnnotate(t *testing.T) {
	app, err := NewApp(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats, err := app.LoadCorpus(ctx, "../corpus/testdata/sample.yaml")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Books)

	res, err := app.Queries.LookupReference(ctx, "Genesis 1:3", 1)
	require.NoError(t, err)

	updates := app.Engine.Watch(ctx, res.Chapter.ID, 1)
	first := <-updates
	require.NoError(t, first.Err)

	bookmarked, err := app.Mutator.ToggleBookmark(ctx, res.Verse.ID)
	require.NoError(t, err)
	require.True(t, bookmarked)

	select {
	case snap := <-updates:
		require.NoError(t, snap.Err)
		require.Len(t, snap.Value.Items, 4)
		assert.Contains(t, string(mustJSON(t, snap.Value.Items[3])), `"is_bookmarked":true`)
	case <-ctx.Done():
		t.Fatal("display did not refresh after the bookmark toggle")
	}
}

func TestNewApp_BadPath(t *testing.T) {
	notADir := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(notADir, nil, 0o644))

	_, err := NewApp(filepath.Join(notADir, "app.db"))
	assert.Error(t, err)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
