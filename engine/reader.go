package engine

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lexandro/largefile-mcp/index"
)

// ReadResult carries the outcome of ReadLines.
type ReadResult struct {
	Content    string // exact bytes of the clamped range, lossily decoded
	StartLine  int    // clamped 0-based line the content starts at
	LinesRead  int    // number of lines covered, 0 when the range was empty
	TotalLines int    // line total of the index the read was resolved against
}

// ReadLines returns the text of lineCount lines starting at startLine
// (0-based). Out-of-range requests are clamped, never rejected: reading at or
// past the end of the file returns an empty result with LinesRead 0. When the
// range covers the last line its end is taken from the file's current size,
// so content appended after indexing is included. Bytes that are not valid
// UTF-8 decode to U+FFFD; the read path renders for display and never fails
// on malformed encoding.
func (e *Engine) ReadLines(path string, startLine, lineCount int) (ReadResult, error) {
	span, ok := e.cache.Resolve(path, startLine, lineCount)
	if !ok {
		return ReadResult{}, fmt.Errorf("%s: %w", path, ErrNotIndexed)
	}
	if e.revalidate {
		if err := e.checkFresh(path); err != nil {
			return ReadResult{}, err
		}
	}
	res := ReadResult{StartLine: span.StartLine, LinesRead: span.Lines(), TotalLines: span.TotalLines}
	if res.LinesRead == 0 {
		return res, nil
	}

	endByte, err := resolveEndByte(path, span)
	if err != nil {
		return ReadResult{}, err
	}
	if endByte < span.StartByte {
		// The file shrank underneath the index; fail like any short read
		// rather than attempting a bogus allocation.
		return ReadResult{}, fmt.Errorf("reading %s: file is smaller than its line index, re-index required", path)
	}
	length := endByte - span.StartByte
	if length == 0 {
		// A real but empty range, e.g. the single line of an empty file.
		return res, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return ReadResult{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Seek(int64(span.StartByte), io.SeekStart); err != nil {
		return ReadResult{}, fmt.Errorf("seeking %s: %w", path, err)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(f, buf); err != nil {
		return ReadResult{}, fmt.Errorf("reading %d bytes at offset %d of %s: %w", length, span.StartByte, path, err)
	}
	res.Content = strings.ToValidUTF8(string(buf), "�")
	return res, nil
}

// resolveEndByte turns a span into a concrete end offset. Spans through the
// last line take the file's current size, which is deliberately never cached.
func resolveEndByte(path string, span index.Span) (uint64, error) {
	if !span.EndsAtEOF {
		return span.EndByte, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("reading metadata for %s: %w", path, err)
	}
	return uint64(info.Size()), nil
}
