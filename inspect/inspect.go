package inspect

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Kind classifies how a file's content should be delivered to the client.
type Kind int

const (
	// KindText is small enough to hand over whole.
	KindText Kind = iota
	// KindLarge is text past the size threshold; the client must index it
	// and page content through line reads instead of loading it whole.
	KindLarge
	// KindBinary carries NUL bytes in its leading window and cannot be
	// edited as text.
	KindBinary
	// KindImage is a displayable image, delivered as image data.
	KindImage
)

// String names the kind for logs and tool output.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindLarge:
		return "large"
	case KindBinary:
		return "binary"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// DefaultLargeFileThreshold is the size above which text files are deferred
// to the line index instead of being returned whole.
const DefaultLargeFileThreshold = 2 * 1024 * 1024

// sniffWindow is how many leading bytes are examined for NUL markers.
const sniffWindow = 1024

// imageMIMETypes maps image file extensions to the MIME type their bytes are
// served under. Extensions are lowercase without the dot.
var imageMIMETypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"svg":  "image/svg+xml",
	"webp": "image/webp",
	"ico":  "image/x-icon",
}

// Info describes a file before any content decision is acted on.
type Info struct {
	Path      string
	Name      string
	Extension string // lowercase, without the dot
	Size      uint64
	ModTime   int64 // unix seconds, 0 when the platform provides none
	Kind      Kind
	MIMEType  string // set only for KindImage
}

// Classify stats path and decides how its content should be delivered. The
// image extension wins over the NUL sniff, since image bytes are full of
// NULs; then NUL bytes in the first KiB mean binary; then anything over
// threshold is deferred to the line index; the rest is plain text.
func Classify(path string, threshold uint64) (Info, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("reading metadata for %s: %w", path, err)
	}
	if stat.IsDir() {
		return Info{}, fmt.Errorf("%s is a directory", path)
	}

	mtime := stat.ModTime().Unix()
	if mtime < 0 {
		mtime = 0
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	info := Info{
		Path:      path,
		Name:      filepath.Base(path),
		Extension: ext,
		Size:      uint64(stat.Size()),
		ModTime:   mtime,
	}

	if mime, ok := imageMIMETypes[ext]; ok {
		info.Kind = KindImage
		info.MIMEType = mime
		return info, nil
	}

	binary, err := IsBinaryFile(path)
	if err != nil {
		return Info{}, err
	}
	switch {
	case binary:
		info.Kind = KindBinary
	case info.Size > threshold:
		info.Kind = KindLarge
	default:
		info.Kind = KindText
	}
	return info, nil
}

// IsBinaryFile reports whether the leading window of the file contains a NUL
// byte, the same heuristic git uses to flag binaries.
func IsBinaryFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, sniffWindow)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	return IsBinaryContent(buf[:n]), nil
}

// IsBinaryContent reports whether content looks binary, using the same NUL
// heuristic as IsBinaryFile on an in-memory buffer.
func IsBinaryContent(content []byte) bool {
	window := content
	if len(window) > sniffWindow {
		window = window[:sniffWindow]
	}
	return bytes.IndexByte(window, 0) >= 0
}
