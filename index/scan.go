package index

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// scanBufferSize is the read buffer for the indexing pass. Lines longer than
// this are handled by continuing the accumulation, so memory stays fixed no
// matter how long a single line runs.
const scanBufferSize = 64 * 1024

// Build scans the file at path in a single sequential pass and produces its
// LineIndex. Lines are split on single '\n' bytes with no CRLF normalization,
// so a '\r' before the terminator stays part of the line content.
func Build(path string) (*LineIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading metadata for %s: %w", path, err)
	}
	size := uint64(info.Size())

	offsets := make([]uint64, 1, 256) // line 0 starts at byte 0
	var bytePos uint64

	r := bufio.NewReaderSize(f, scanBufferSize)
	for {
		chunk, err := r.ReadSlice('\n')
		bytePos += uint64(len(chunk))
		switch {
		case err == nil:
			// Writers appending mid-scan can push bytePos past the size we
			// stat'd; offsets beyond that size are not recorded.
			if bytePos <= size {
				offsets = append(offsets, bytePos)
			}
		case errors.Is(err, bufio.ErrBufferFull):
			// Line spans the buffer, keep consuming it.
		case errors.Is(err, io.EOF):
			// Unterminated trailing segment, possibly empty. It belongs to
			// the last line already accounted for, so no offset is added.
			return &LineIndex{Offsets: offsets, FileSize: size, ModTime: info.ModTime()}, nil
		default:
			return nil, fmt.Errorf("scanning %s: %w", path, err)
		}
	}
}
