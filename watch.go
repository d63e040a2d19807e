package main

import (
	"log/slog"
	"os"

	"github.com/lexandro/largefile-mcp/index"
	"github.com/lexandro/largefile-mcp/watcher"
)

// handleWatcherEvents consumes debounced change notifications for tracked
// files and drops line indexes that no longer describe what is on disk. A
// dropped file stays readable the moment the caller re-indexes it; nothing is
// re-scanned behind the caller's back.
func handleWatcherEvents(fileWatcher *watcher.Watcher, cache *index.Cache, logger *slog.Logger) {
	for events := range fileWatcher.Events() {
		for _, event := range events {
			switch event.Op {
			case watcher.OpRemove, watcher.OpRename:
				if cache.Remove(event.Path) {
					logger.Info("dropped index of removed file", "path", event.Path, "op", event.Op)
				}
				fileWatcher.Untrack(event.Path)

			case watcher.OpCreate, watcher.OpWrite:
				if invalidateIfChanged(cache, event.Path) {
					logger.Info("dropped stale index", "path", event.Path, "op", event.Op)
				}
			}
		}
	}
}

// invalidateIfChanged compares the file on disk with the cached snapshot and
// removes the entry when they disagree. Writes made through the patch and
// save tools re-index synchronously before their debounced events arrive, so
// their snapshots already match and survive this check; only external writes
// fall out of the cache.
func invalidateIfChanged(cache *index.Cache, path string) bool {
	snap, ok := cache.Snapshot(path)
	if !ok {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return cache.Remove(path)
	}
	if uint64(info.Size()) != snap.FileSize || !info.ModTime().Equal(snap.ModTime) {
		return cache.Remove(path)
	}
	return false
}
