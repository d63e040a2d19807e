package watcher

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := NewWatcher(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("creating watcher: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w
}

func Test_Watcher_TrackAndUntrack(t *testing.T) {
	w := testWatcher(t)
	dir := t.TempDir()
	a := filepath.Join(dir, "a.log")
	b := filepath.Join(dir, "b.log")
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, []byte("x\n"), 0644); err != nil {
			t.Fatalf("writing %s: %v", p, err)
		}
	}

	if err := w.Track(a); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if err := w.Track(b); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if err := w.Track(a); err != nil {
		t.Fatalf("re-Track failed: %v", err)
	}
	if w.TrackedCount() != 2 {
		t.Errorf("expected 2 tracked files, got %d", w.TrackedCount())
	}

	paths := w.TrackedPaths()
	if len(paths) != 2 || paths[0] != a || paths[1] != b {
		t.Errorf("unexpected tracked paths %v", paths)
	}

	w.Untrack(a)
	if w.TrackedCount() != 1 {
		t.Errorf("expected 1 tracked file, got %d", w.TrackedCount())
	}
	w.Untrack(a)
	if w.TrackedCount() != 1 {
		t.Errorf("double untrack changed the count: %d", w.TrackedCount())
	}
	w.Untrack(b)
	if w.TrackedCount() != 0 {
		t.Errorf("expected an empty tracked set, got %d", w.TrackedCount())
	}
}

func Test_Watcher_TrackMissingDirectory(t *testing.T) {
	w := testWatcher(t)

	err := w.Track(filepath.Join(t.TempDir(), "absent", "file.log"))
	if err == nil {
		t.Fatal("expected an error when the parent directory does not exist")
	}
	if w.TrackedCount() != 0 {
		t.Errorf("failed track must not register the path, got %d", w.TrackedCount())
	}
}

func Test_Watcher_EventForTrackedFile(t *testing.T) {
	w := testWatcher(t)
	dir := t.TempDir()
	tracked := filepath.Join(dir, "tracked.log")
	ignored := filepath.Join(dir, "ignored.log")
	for _, p := range []string{tracked, ignored} {
		if err := os.WriteFile(p, []byte("x\n"), 0644); err != nil {
			t.Fatalf("writing %s: %v", p, err)
		}
	}
	if err := w.Track(tracked); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	go w.Start()

	// Touch both files; only the tracked one may surface.
	if err := os.WriteFile(ignored, []byte("noise\n"), 0644); err != nil {
		t.Fatalf("writing ignored file: %v", err)
	}
	if err := os.WriteFile(tracked, []byte("changed\n"), 0644); err != nil {
		t.Fatalf("writing tracked file: %v", err)
	}

	select {
	case batch := <-w.Events():
		for _, ev := range batch {
			if ev.Path != tracked {
				t.Errorf("got an event for untracked path %s", ev.Path)
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a watcher event")
	}
}
