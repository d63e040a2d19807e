package index

import "time"

// LineIndex holds the line-start byte offsets for one file snapshot, plus the
// file size and modification time observed when the scan ran.
//
// Offsets[i] is the byte offset at which logical line i begins. Offsets[0] is
// always 0 and the sequence is non-decreasing. There is exactly one entry per
// logical line, so an empty file still has the single entry [0]. No
// end-of-file sentinel is stored: the extent of the last line is derived from
// the file's current size at read time, because the last line may grow after
// indexing.
type LineIndex struct {
	Offsets  []uint64  // one entry per line start, never empty
	FileSize uint64    // file size in bytes at scan time
	ModTime  time.Time // modification time at scan time
}

// TotalLines returns the number of logical lines: one more than the number of
// '\n' bytes in the file at scan time.
func (ix *LineIndex) TotalLines() int { return len(ix.Offsets) }

// Span is a resolved byte range covering a clamped run of lines.
// The byte range is half-open: [StartByte, EndByte). An empty span
// (StartLine == EndLine) covers no lines but still carries a position,
// the point where a patch inserts.
type Span struct {
	StartLine  int    // clamped 0-based first line
	EndLine    int    // clamped 0-based one-past-last line
	StartByte  uint64 // byte offset where StartLine begins
	EndByte    uint64 // valid only when EndsAtEOF is false
	EndsAtEOF  bool   // the end byte is the file's current size, which is never cached
	TotalLines int    // line total of the index the span was resolved against
}

// Lines returns the number of lines the span covers.
func (s Span) Lines() int { return s.EndLine - s.StartLine }

// Resolve clamps the requested line range against the index and computes the
// covering byte span. A negative startLine reads from line 0 and lineCount is
// cut off at the last line. A startLine at or past the end of the file
// resolves to an empty span sitting at EOF: reads there yield nothing and
// patches insert at the end. When the span reaches the last line, EndsAtEOF
// is set and EndByte is zero — the caller must take the end from the file's
// current size, because the last line's extent is never cached.
func (ix *LineIndex) Resolve(startLine, lineCount int) Span {
	total := len(ix.Offsets)
	if startLine >= total {
		return Span{StartLine: total, EndLine: total, EndsAtEOF: true, TotalLines: total}
	}

	start := startLine
	if start < 0 {
		start = 0
	}

	var end int
	switch {
	case lineCount <= 0:
		end = start
	case lineCount >= total-start:
		end = total
	default:
		end = start + lineCount
	}

	span := Span{StartLine: start, EndLine: end, TotalLines: total, StartByte: ix.Offsets[start]}
	switch {
	case end == start:
		span.EndByte = span.StartByte
	case end < total:
		span.EndByte = ix.Offsets[end]
	default:
		span.EndsAtEOF = true
	}
	return span
}
