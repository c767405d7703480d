package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherDebouncesWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.stl")
	require.NoError(t, os.WriteFile(path, []byte("solid a\n"), 0o644))

	w, err := New(50*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	changed := make(chan string, 10)
	require.NoError(t, w.Add([]string{path}, func(p string) { changed <- p }))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("solid b\n"), 0o644))
	}

	select {
	case p := <-changed:
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, p)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	// the burst collapses into a single callback
	select {
	case <-changed:
		t.Error("burst produced more than one callback")
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcherAddMissingFile(t *testing.T) {
	w, err := New(time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	err = w.Add([]string{filepath.Join(t.TempDir(), "missing.scad")}, func(string) {})
	assert.Error(t, err)
}

func TestWatcherRemoveAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.stl")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := New(time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Add([]string{path}, func(string) {}))
	require.NoError(t, w.RemoveAll())
	assert.Empty(t, w.callbacks)
}

func TestWatcherRemoveAllAfterLostWatch(t *testing.T) {
	dir := t.TempDir()
	gone := filepath.Join(dir, "gone.stl")
	kept := filepath.Join(dir, "kept.stl")
	require.NoError(t, os.WriteFile(gone, nil, 0o644))
	require.NoError(t, os.WriteFile(kept, nil, 0o644))

	w, err := New(time.Hour, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Add([]string{gone, kept}, func(string) {}))
	w.schedule(kept)
	require.NoError(t, w.fsw.Remove(gone))

	err = w.RemoveAll()
	assert.ErrorIs(t, err, fsnotify.ErrNonExistentWatch)
	assert.Empty(t, w.callbacks)
	assert.Empty(t, w.timers)
	assert.Empty(t, w.fsw.WatchList())
}
