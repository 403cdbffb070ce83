package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := NewWatcher(30 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func waitForBatchWith(t *testing.T, w *Watcher, want string) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case batch := <-w.Batches():
			for _, name := range batch {
				if name == want {
					return
				}
			}
			// Batch from a previous target, keep waiting.
		case <-deadline:
			t.Fatalf("no batch containing %q", want)
		}
	}
}

func TestWatcherBatchesWrites(t *testing.T) {
	dir := t.TempDir()

	w := newTestWatcher(t)
	if err := w.Watch(dir); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	w.Start()

	if err := os.WriteFile(filepath.Join(dir, "app.log"), []byte("hi\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	waitForBatchWith(t, w, "app.log")
}

func TestWatcherRetarget(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()

	w := newTestWatcher(t)
	if err := w.Watch(dir1); err != nil {
		t.Fatalf("Watch(dir1) error = %v", err)
	}
	w.Start()

	if err := w.Watch(dir2); err != nil {
		t.Fatalf("Watch(dir2) error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir2, "b.log"), []byte("x\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	waitForBatchWith(t, w, "b.log")
}

func TestWatcherMissingDir(t *testing.T) {
	w := newTestWatcher(t)

	if err := w.Watch(filepath.Join(t.TempDir(), "gone")); err == nil {
		t.Error("Watch() on a missing directory should error")
	}
}

func TestWatcherDirRemovalSignalsReset(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "session")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	w := newTestWatcher(t)
	if err := w.Watch(dir); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	w.Start()

	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("RemoveAll: %v", err)
	}

	select {
	case <-w.Resets:
	case <-time.After(3 * time.Second):
		t.Fatal("directory removal did not signal a reset")
	}
}
