package tools

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lexandro/largefile-mcp/engine"
	"github.com/lexandro/largefile-mcp/search"
)

// FormatLineRange renders a clamped line read with a line number gutter.
// Numbers are 0-based, exactly what read and patch calls accept, so a line
// number seen here can be passed back without adjustment.
func FormatLineRange(path string, res engine.ReadResult) string {
	if res.LinesRead == 0 {
		return fmt.Sprintf("── %s (no lines in range, %d total) ──\n", path, res.TotalLines)
	}

	lines := strings.Split(strings.TrimSuffix(res.Content, "\n"), "\n")
	last := res.StartLine + len(lines) - 1
	width := len(strconv.Itoa(last))

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("── %s (lines %d-%d of %d) ──\n", path, res.StartLine, last, res.TotalLines))
	for i, line := range lines {
		builder.WriteString(fmt.Sprintf("%*d│ %s\n", width, res.StartLine+i, line))
	}
	return builder.String()
}

// FormatSearchResults renders the matches of one file scan with 0-based line
// numbers on the matching lines and indented, unnumbered context around them.
func FormatSearchResults(path, query string, res *search.Result) string {
	if len(res.Matches) == 0 {
		return fmt.Sprintf("No matches for %s in %s (%d lines scanned).", query, path, res.LinesScanned)
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Found %d matching lines in %s", len(res.Matches), path))
	if res.Truncated {
		builder.WriteString(" (search stopped early, raise maxResults for more)")
	}
	builder.WriteString(":\n\n")

	for i, m := range res.Matches {
		if i > 0 {
			builder.WriteString("\n")
		}
		for _, ctxLine := range m.Before {
			builder.WriteString(fmt.Sprintf("  %s\n", ctxLine))
		}
		builder.WriteString(fmt.Sprintf("  %d: %s\n", m.Line, m.Text))
		for _, ctxLine := range m.After {
			builder.WriteString(fmt.Sprintf("  %s\n", ctxLine))
		}
	}
	return builder.String()
}

// formatFileSize converts bytes to a human-readable string.
func formatFileSize(bytes uint64) string {
	switch {
	case bytes >= 1024*1024*1024:
		return fmt.Sprintf("%.1f GB", float64(bytes)/(1024*1024*1024))
	case bytes >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	case bytes >= 1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	if totalSeconds < 60 {
		return fmt.Sprintf("%ds", totalSeconds)
	}
	totalMinutes := totalSeconds / 60
	remainderSeconds := totalSeconds % 60
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm%ds", totalMinutes, remainderSeconds)
	}
	hours := totalMinutes / 60
	remainderMinutes := totalMinutes % 60
	return fmt.Sprintf("%dh%dm", hours, remainderMinutes)
}

// formatModTime renders unix seconds for tool output.
func formatModTime(unixSeconds int64) string {
	if unixSeconds <= 0 {
		return "unknown"
	}
	return time.Unix(unixSeconds, 0).UTC().Format(time.RFC3339)
}
