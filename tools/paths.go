package tools

import (
	"fmt"
	"path/filepath"
)

// Tracker is the part of the file watcher the tools drive. A nil Tracker
// disables change tracking.
type Tracker interface {
	Track(path string) error
}

// normalizePath resolves p to a clean absolute path. Every layer below the
// tools keys files by this string, so "./big.log" and "big.log" must land on
// the same cache entry and the same watch.
func normalizePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", p, err)
	}
	return filepath.Clean(abs), nil
}
