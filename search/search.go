package search

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Defaults applied when Options fields are zero.
const (
	DefaultMaxResults   = 50
	DefaultContextLines = 2
	DefaultMaxLineBytes = 1 << 20
)

// Options control one streaming search pass.
type Options struct {
	// Query selects the match form: /pattern/ compiles as a Go regexp,
	// "text" matches as a case-sensitive substring, anything else matches as
	// a case-insensitive substring.
	Query string
	// MaxResults stops the scan once this many matches have finished
	// collecting their context.
	MaxResults int
	// ContextLines is the number of lines captured before and after each
	// matching line.
	ContextLines int
	// MaxLineBytes caps how much of a single line is kept for matching and
	// display; bytes past the cap are dropped, so memory stays bounded on
	// files with pathological line lengths.
	MaxLineBytes int
}

// Match is one matching line with its surrounding context. Line numbers are
// 0-based, consistent with line-addressed reads and patches.
type Match struct {
	Line   int
	Text   string
	Before []string
	After  []string
}

// Result is the outcome of a file scan.
type Result struct {
	Matches      []Match
	LinesScanned int
	Truncated    bool // stopped at MaxResults with input remaining
}

// File scans path line by line and collects the lines matching the query.
// The pass is sequential with a fixed read buffer; memory is bounded by the
// context window and MaxLineBytes, never by the file size. Content is
// lossily decoded, so matches against invalid UTF-8 see U+FFFD.
func File(path string, opts Options) (*Result, error) {
	match, err := compileMatcher(opts.Query)
	if err != nil {
		return nil, err
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.ContextLines < 0 {
		opts.ContextLines = 0
	}
	if opts.MaxLineBytes <= 0 {
		opts.MaxLineBytes = DefaultMaxLineBytes
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var (
		res    Result
		before []string // the last ContextLines lines, oldest first
		open   []int    // matches still collecting after-context, as indices
		lineNo int
	)
	r := bufio.NewReaderSize(f, 64*1024)
	for {
		text, ok, err := readLine(r, opts.MaxLineBytes)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", path, err)
		}
		if !ok {
			break
		}
		res.LinesScanned++
		line := strings.ToValidUTF8(text, "�")

		still := open[:0]
		for _, i := range open {
			res.Matches[i].After = append(res.Matches[i].After, line)
			if len(res.Matches[i].After) < opts.ContextLines {
				still = append(still, i)
			}
		}
		open = still

		if len(res.Matches) < opts.MaxResults && match(line) {
			m := Match{Line: lineNo, Text: line}
			if opts.ContextLines > 0 {
				m.Before = append([]string(nil), before...)
			}
			res.Matches = append(res.Matches, m)
			if opts.ContextLines > 0 {
				open = append(open, len(res.Matches)-1)
			}
		}

		if len(res.Matches) >= opts.MaxResults && len(open) == 0 {
			if _, err := r.Peek(1); err == nil {
				res.Truncated = true
			}
			break
		}

		if opts.ContextLines > 0 {
			before = append(before, line)
			if len(before) > opts.ContextLines {
				before = before[1:]
			}
		}
		lineNo++
	}
	return &res, nil
}

// compileMatcher turns the query into a line predicate.
func compileMatcher(query string) (func(string) bool, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, errors.New("empty search query")
	}
	if len(q) > 2 && strings.HasPrefix(q, "/") && strings.HasSuffix(q, "/") {
		re, err := regexp.Compile(q[1 : len(q)-1])
		if err != nil {
			return nil, fmt.Errorf("invalid regex query %s: %w", q, err)
		}
		return re.MatchString, nil
	}
	if len(q) > 1 && strings.HasPrefix(q, "\"") && strings.HasSuffix(q, "\"") {
		term := q[1 : len(q)-1]
		return func(line string) bool { return strings.Contains(line, term) }, nil
	}
	term := strings.ToLower(q)
	return func(line string) bool {
		return strings.Contains(strings.ToLower(line), term)
	}, nil
}

// readLine returns the next line without its '\n' terminator, capped at
// maxBytes. Bytes past the cap are consumed and dropped. The bool result is
// false once the input is exhausted.
func readLine(r *bufio.Reader, maxBytes int) (string, bool, error) {
	var (
		buf      []byte
		overflow bool
	)
	for {
		chunk, err := r.ReadSlice('\n')
		if len(chunk) > 0 && !overflow {
			buf = append(buf, chunk...)
			if len(buf) > maxBytes {
				buf = buf[:maxBytes]
				overflow = true
			}
		}
		switch {
		case err == nil:
			return strings.TrimSuffix(string(buf), "\n"), true, nil
		case errors.Is(err, bufio.ErrBufferFull):
			// Keep consuming the same line.
		case errors.Is(err, io.EOF):
			if len(buf) == 0 {
				return "", false, nil
			}
			// Final line without a terminator.
			return string(buf), true, nil
		default:
			return "", false, err
		}
	}
}
