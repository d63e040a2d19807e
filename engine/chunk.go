package engine

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ChunkResult carries the outcome of ReadChunk.
type ChunkResult struct {
	Content   string
	BytesRead int
}

// ReadChunk reads up to length bytes at the given byte offset with no line
// awareness and no index involvement. A short or empty result at the end of
// the file is not an error. Content is lossily decoded like ReadLines, so a
// chunk boundary that splits a multi-byte rune shows U+FFFD at the seam.
func (e *Engine) ReadChunk(path string, offset uint64, length int) (ChunkResult, error) {
	if length <= 0 {
		return ChunkResult{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return ChunkResult{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Seek(int64(offset), io.SeekStart); err != nil {
		return ChunkResult{}, fmt.Errorf("seeking %s: %w", path, err)
	}
	buf := make([]byte, length)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return ChunkResult{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return ChunkResult{
		Content:   strings.ToValidUTF8(string(buf[:n]), "�"),
		BytesRead: n,
	}, nil
}
