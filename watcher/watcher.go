package watcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports external changes to an explicit set of tracked files. The
// parent directory of each tracked file is registered with fsnotify rather
// than the file itself: editors and this server alike replace files by
// renaming a temp file over them, which would orphan a watch held on the
// original inode. Events are debounced and filtered down to tracked paths.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	logger    *slog.Logger

	mu      sync.Mutex
	tracked map[string]struct{} // tracked file paths
	dirRefs map[string]int      // tracked files per watched directory
}

// NewWatcher creates a watcher with an empty tracked set.
func NewWatcher(logger *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		debouncer: NewDebouncer(100 * time.Millisecond),
		logger:    logger,
		tracked:   make(map[string]struct{}),
		dirRefs:   make(map[string]int),
	}, nil
}

// Track adds path to the tracked set, registering its parent directory with
// the underlying watcher on first use. Tracking the same path twice is a
// no-op.
func (w *Watcher) Track(path string) error {
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.tracked[path]; ok {
		return nil
	}
	if w.dirRefs[dir] == 0 {
		if err := w.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	w.dirRefs[dir]++
	w.tracked[path] = struct{}{}
	return nil
}

// Untrack removes path from the tracked set and drops the directory watch
// once no tracked file needs it.
func (w *Watcher) Untrack(path string) {
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.tracked[path]; !ok {
		return
	}
	delete(w.tracked, path)
	w.dirRefs[dir]--
	if w.dirRefs[dir] <= 0 {
		delete(w.dirRefs, dir)
		if err := w.fsWatcher.Remove(dir); err != nil {
			w.logger.Warn("failed to unwatch directory", "path", dir, "error", err)
		}
	}
}

// TrackedCount returns the number of tracked files.
func (w *Watcher) TrackedCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.tracked)
}

// TrackedPaths returns the tracked file paths in sorted order.
func (w *Watcher) TrackedPaths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	paths := make([]string, 0, len(w.tracked))
	for p := range w.tracked {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Events returns the channel carrying debounced batches for tracked files.
func (w *Watcher) Events() <-chan []DebouncedEvent {
	return w.debouncer.Output()
}

// Start listens for file system events until the watcher is closed. Call it
// in a goroutine.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// handleEvent forwards events for tracked paths to the debouncer. Directory
// watches deliver events for every entry; everything untracked is dropped
// here.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	w.mu.Lock()
	_, ok := w.tracked[event.Name]
	w.mu.Unlock()
	if !ok {
		return
	}

	var op EventOp
	switch {
	case event.Has(fsnotify.Write):
		op = OpWrite
	case event.Has(fsnotify.Create):
		// A temp file renamed over a tracked file surfaces as Create.
		op = OpCreate
	case event.Has(fsnotify.Remove):
		op = OpRemove
	case event.Has(fsnotify.Rename):
		op = OpRename
	default:
		return
	}
	w.debouncer.Add(event.Name, op)
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}
