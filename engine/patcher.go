package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lexandro/largefile-mcp/index"
)

// copyChunkSize bounds the buffer used when the prefix and suffix of the
// patched file are streamed to the temp file.
const copyChunkSize = 8 * 1024

// PatchLines replaces lineCount lines starting at startLine (0-based) with
// content, rewriting the file through a sibling temp file that is renamed
// over the original. Readers observe the old file in full or the new file in
// full, never a half-written one, and a failure at any step before the rename
// leaves the original untouched.
//
// The byte span is resolved against the cached index with the same clamping
// as ReadLines, under the cache lock; the lock is released before any file
// I/O starts. A lineCount of zero replaces nothing and inserts content before
// startLine; a startLine at or past the end of the file appends at EOF.
// content is written verbatim: replacing interior lines with text that lacks
// a trailing '\n' joins the new text onto the following line, and an empty
// content deletes the span. After the rename the file is re-indexed in full
// and the cache entry replaced, so line numbers in later calls refer to the
// patched file.
func (e *Engine) PatchLines(path string, startLine, lineCount int, content string) (Stat, error) {
	span, ok := e.cache.Resolve(path, startLine, lineCount)
	if !ok {
		return Stat{}, fmt.Errorf("%s: %w", path, ErrNotIndexed)
	}
	if e.revalidate {
		if err := e.checkFresh(path); err != nil {
			return Stat{}, err
		}
	}
	endByte, err := resolveEndByte(path, span)
	if err != nil {
		return Stat{}, err
	}
	startByte := span.StartByte
	if span.EndsAtEOF && span.Lines() == 0 {
		// A start past the last line inserts at the file's current end.
		startByte = endByte
	}

	tmpPath, err := writeSpanToTemp(path, startByte, endByte, content)
	if err != nil {
		return Stat{}, err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return Stat{}, fmt.Errorf("replacing %s: %w", path, err)
	}

	idx, err := index.Build(path)
	if err != nil {
		// The patch landed but the index no longer matches it. Drop the
		// entry so later calls fail with ErrNotIndexed instead of operating
		// on stale offsets.
		e.cache.Remove(path)
		return Stat{}, fmt.Errorf("re-indexing after patch: %w", err)
	}
	e.cache.Put(path, idx)
	return statOf(idx), nil
}

// writeSpanToTemp builds the patched file image in a temp file beside path:
// the bytes in [0, startByte), then content, then the bytes from endByte to
// the end of the original. On success the temp file is closed and ready to be
// renamed into place; on error it has been removed. The temp file inherits
// the original's permission bits so the rename does not change them.
func writeSpanToTemp(path string, startByte, endByte uint64, content string) (string, error) {
	source, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer source.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), ".largefile-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file beside %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	fail := func(step string, err error) (string, error) {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("%s for %s: %w", step, path, err)
	}

	if info, err := source.Stat(); err == nil {
		tmp.Chmod(info.Mode().Perm())
	}

	// CopyBuffer hands the work to the kernel where it can; the buffer
	// bounds memory on the fallback path. A prefix cut short by a shrinking
	// file copies what is there, exactly like the suffix below.
	buf := make([]byte, copyChunkSize)
	if startByte > 0 {
		if _, err := io.CopyBuffer(tmp, io.LimitReader(source, int64(startByte)), buf); err != nil {
			return fail("copying prefix", err)
		}
	}
	if _, err := tmp.WriteString(content); err != nil {
		return fail("writing replacement", err)
	}
	if _, err := source.Seek(int64(endByte), io.SeekStart); err != nil {
		return fail("seeking past replaced span", err)
	}
	if _, err := io.CopyBuffer(tmp, source, buf); err != nil {
		return fail("copying suffix", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file for %s: %w", path, err)
	}
	return tmpPath, nil
}
