package engine

import (
	"fmt"
	"os"

	"github.com/lexandro/largefile-mcp/index"
)

// Engine performs line-addressed operations on files through a shared line
// index cache. It owns no file handles and keeps no content between calls;
// every operation opens, works and closes. All shared state lives in the
// injected cache.
type Engine struct {
	cache      *index.Cache
	revalidate bool
}

// Options configure an Engine.
type Options struct {
	// Revalidate makes ReadLines and PatchLines stat the file and compare
	// size and modification time against the cached snapshot before touching
	// content, failing with ErrStaleIndex on mismatch. Off by default: the
	// index is otherwise trusted as-is and concurrent external modification
	// is the caller's problem.
	Revalidate bool
}

// New returns an Engine operating on cache.
func New(cache *index.Cache, opts Options) *Engine {
	return &Engine{cache: cache, revalidate: opts.Revalidate}
}

// Cache exposes the engine's index cache for status reporting.
func (e *Engine) Cache() *index.Cache { return e.cache }

// Stat reports the indexed state of one file.
type Stat struct {
	TotalLines int
	FileSize   uint64
	ModTime    int64 // unix seconds, 0 when the platform provides none
}

// IndexFile scans path and caches its line index, replacing any previous
// entry for the same path.
func (e *Engine) IndexFile(path string) (Stat, error) {
	idx, err := index.Build(path)
	if err != nil {
		return Stat{}, err
	}
	e.cache.Put(path, idx)
	return statOf(idx), nil
}

// Stat returns the cached stats for path without touching the file.
func (e *Engine) Stat(path string) (Stat, error) {
	snap, ok := e.cache.Snapshot(path)
	if !ok {
		return Stat{}, fmt.Errorf("%s: %w", path, ErrNotIndexed)
	}
	mtime := snap.ModTime.Unix()
	if mtime < 0 {
		mtime = 0
	}
	return Stat{TotalLines: snap.TotalLines, FileSize: snap.FileSize, ModTime: mtime}, nil
}

func statOf(idx *index.LineIndex) Stat {
	mtime := idx.ModTime.Unix()
	if mtime < 0 {
		mtime = 0
	}
	return Stat{TotalLines: idx.TotalLines(), FileSize: idx.FileSize, ModTime: mtime}
}

// checkFresh compares the file on disk against the cached snapshot.
func (e *Engine) checkFresh(path string) error {
	snap, ok := e.cache.Snapshot(path)
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrNotIndexed)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading metadata for %s: %w", path, err)
	}
	if uint64(info.Size()) != snap.FileSize || !info.ModTime().Equal(snap.ModTime) {
		return fmt.Errorf("%s: %w", path, ErrStaleIndex)
	}
	return nil
}
