package watcher

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, dir string, opts Options) *Watcher {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	w, err := New(logger, opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, w.Watch(dir))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go w.Start(ctx) //nolint:errcheck // Test goroutine

	return w
}

func TestNew(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	w, err := New(logger, Options{})
	require.NoError(t, err)
	require.NotNil(t, w)

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop(), "second stop is a no-op")
}

func TestWatcher_WatchMissingPath(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w, err := New(logger, Options{})
	require.NoError(t, err)
	defer w.Stop() //nolint:errcheck // Test cleanup

	assert.Error(t, w.Watch(filepath.Join(t.TempDir(), "missing")))
}

func TestWatcher_FileWrite(t *testing.T) {
	tmpDir := t.TempDir()
	w := startWatcher(t, tmpDir, Options{SettleDelay: 50 * time.Millisecond})

	page := filepath.Join(tmpDir, "books.html")
	require.NoError(t, os.WriteFile(page, []byte("<h1>Books</h1>"), 0o644))

	select {
	case event := <-w.Events():
		assert.Equal(t, EventChanged, event.Type)
		assert.Equal(t, page, event.Path)
	case err := <-w.Errors():
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestWatcher_BurstIsCollapsed(t *testing.T) {
	tmpDir := t.TempDir()
	w := startWatcher(t, tmpDir, Options{SettleDelay: 100 * time.Millisecond})

	page := filepath.Join(tmpDir, "layout.html")
	for i := range 5 {
		require.NoError(t, os.WriteFile(page, []byte{byte('a' + i)}, 0o644))
	}

	select {
	case event := <-w.Events():
		assert.Equal(t, page, event.Path)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}

	select {
	case event := <-w.Events():
		t.Fatalf("unexpected second event: %+v", event)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_FileDeletion(t *testing.T) {
	tmpDir := t.TempDir()
	page := filepath.Join(tmpDir, "old.html")
	require.NoError(t, os.WriteFile(page, []byte("content"), 0o644))

	w := startWatcher(t, tmpDir, Options{})

	require.NoError(t, os.Remove(page))

	select {
	case event := <-w.Events():
		assert.Equal(t, EventRemoved, event.Type)
		assert.Equal(t, page, event.Path)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for deletion event")
	}
}

func TestWatcher_PatternsAndHiddenFiles(t *testing.T) {
	tmpDir := t.TempDir()
	w := startWatcher(t, tmpDir, Options{
		Patterns:     []string{"*.html"},
		IgnoreHidden: true,
		SettleDelay:  50 * time.Millisecond,
	})

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".hidden.html"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0o644))
	page := filepath.Join(tmpDir, "home.html")
	require.NoError(t, os.WriteFile(page, []byte("x"), 0o644))

	select {
	case event := <-w.Events():
		assert.Equal(t, page, event.Path)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for event")
	}

	select {
	case event := <-w.Events():
		t.Fatalf("unexpected event: %+v", event)
	case <-time.After(200 * time.Millisecond):
	}
}
