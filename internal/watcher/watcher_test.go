package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeFile creates or rewrites the watched file.
func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

// TestWatcher_SignalsOnWrite verifies a write to the watched file
// surfaces a debounced notification.
func TestWatcher_SignalsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.txt")
	writeFile(t, path, "before")

	w, err := New(DefaultConfig(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ch, err := w.Start()
	require.NoError(t, err)

	writeFile(t, path, "after")

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification received")
	}
}

// TestWatcher_IgnoresSiblingFiles verifies events for other files in the
// directory are filtered out.
func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.txt")
	writeFile(t, path, "contents")

	w, err := New(DefaultConfig(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ch, err := w.Start()
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "other.txt"), "noise")

	select {
	case <-ch:
		t.Fatal("unexpected notification for sibling file")
	case <-time.After(300 * time.Millisecond):
	}
}

// TestWatcher_StopClosesCleanly verifies a single Stop after Start, as in
// the driver's deferred cleanup, returns no error.
func TestWatcher_StopClosesCleanly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.txt")
	writeFile(t, path, "contents")

	w, err := New(DefaultConfig(path))
	require.NoError(t, err)

	_, err = w.Start()
	require.NoError(t, err)
	require.NoError(t, w.Stop())
}
