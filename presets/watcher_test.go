package presets

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func next(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev, ok := <-w.Events():
		require.True(t, ok, "watcher stopped")
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	return Event{}
}

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "variants.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	w, err := Watch(context.Background(), path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("b"), 0o644))
	ev := next(t, w)
	require.NoError(t, ev.Err)
	assert.Equal(t, "b", string(ev.Data))
}

func TestWatchIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "variants.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	w, err := Watch(context.Background(), path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644))
	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchSeesReplaceByRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "variants.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	w, err := Watch(context.Background(), path, 50*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	tmp := filepath.Join(dir, ".variants.yaml.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("c"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	ev := next(t, w)
	require.NoError(t, ev.Err)
	assert.Equal(t, "c", string(ev.Data))
}

func TestCloseStopsWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "variants.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	w, err := Watch(ctx, path, 0)
	require.NoError(t, err)
	assert.Equal(t, path, w.Path())

	cancel()
	select {
	case _, ok := <-w.Events():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.NoError(t, w.Close())
}

func TestWatchMissingDirectory(t *testing.T) {
	_, err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "variants.yaml"), 0)
	assert.Error(t, err)
}
