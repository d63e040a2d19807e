package index

import (
	"sort"
	"sync"
	"time"
)

// Cache maps file paths to their current LineIndex. A single mutex guards the
// whole map; operations arrive from one interactive session, so contention is
// not a concern and the lock is never held across file I/O. Entries are
// replaced wholesale on every successful scan. The cache never hands out live
// references into the map — callers receive copies, or values computed while
// the lock was held.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*LineIndex
}

// NewCache returns an empty line index cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*LineIndex)}
}

// Put stores idx as the current index for path, replacing any previous entry.
// The cache takes ownership of idx; the caller must not retain or mutate it.
func (c *Cache) Put(path string, idx *LineIndex) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = idx
}

// Get returns a copy of the cached index for path. Mutating the copy does not
// affect the cache. Copying is O(lines); the read and patch paths use Resolve
// and Snapshot instead.
func (c *Cache) Get(path string) (*LineIndex, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, ok := c.entries[path]
	if !ok {
		return nil, false
	}
	offsets := make([]uint64, len(idx.Offsets))
	copy(offsets, idx.Offsets)
	return &LineIndex{Offsets: offsets, FileSize: idx.FileSize, ModTime: idx.ModTime}, true
}

// Snapshot carries the cached metadata for one file without its offsets.
type Snapshot struct {
	TotalLines int
	FileSize   uint64
	ModTime    time.Time
}

// Snapshot returns the cached metadata for path.
func (c *Cache) Snapshot(path string) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, ok := c.entries[path]
	if !ok {
		return Snapshot{}, false
	}
	return Snapshot{TotalLines: len(idx.Offsets), FileSize: idx.FileSize, ModTime: idx.ModTime}, true
}

// Contains reports whether path has a cached index.
func (c *Cache) Contains(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[path]
	return ok
}

// Resolve computes the clamped byte span for a line range of path while the
// cache lock is held. The bool result is false when path has no entry.
func (c *Cache) Resolve(path string, startLine, lineCount int) (Span, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, ok := c.entries[path]
	if !ok {
		return Span{}, false
	}
	return idx.Resolve(startLine, lineCount), true
}

// Remove drops the entry for path, reporting whether one existed.
func (c *Cache) Remove(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[path]
	delete(c.entries, path)
	return ok
}

// Len returns the number of cached indexes.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Paths returns the cached paths in sorted order.
func (c *Cache) Paths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	paths := make([]string, 0, len(c.entries))
	for p := range c.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// TotalLines returns the sum of line counts across all cached indexes.
func (c *Cache) TotalLines() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total int64
	for _, idx := range c.entries {
		total += int64(len(idx.Offsets))
	}
	return total
}

// OffsetBytes returns the approximate memory held by cached offsets.
func (c *Cache) OffsetBytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total int64
	for _, idx := range c.entries {
		total += int64(len(idx.Offsets)) * 8
	}
	return total
}
