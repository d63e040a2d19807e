package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lexandro/largefile-mcp/index"
)

// SaveFile atomically replaces the whole file at path with content, creating
// it if it does not exist. The content goes to a sibling temp file, is synced
// to disk and renamed into place, so a crash mid-save cannot leave a
// truncated file behind. When path has a cached line index the file is
// re-scanned after the rename, keeping line-addressed calls coherent with
// what was just written.
func (e *Engine) SaveFile(path, content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".largefile-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file beside %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%s for %s: %w", step, path, err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp.Chmod(mode)

	if _, err := tmp.WriteString(content); err != nil {
		return fail("writing content", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing content", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	if e.cache.Contains(path) {
		idx, err := index.Build(path)
		if err != nil {
			e.cache.Remove(path)
			return fmt.Errorf("re-indexing after save: %w", err)
		}
		e.cache.Put(path, idx)
	}
	return nil
}
