package tools

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/lexandro/largefile-mcp/ignore"
	"github.com/lexandro/largefile-mcp/language"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// defaultFindResults caps how many files a find reports when the caller does
// not say.
const defaultFindResults = 50

// FindArgs defines the input parameters for the largefile_find tool.
type FindArgs struct {
	Root         string `json:"root,omitempty" jsonschema:"Directory to walk (default: the server working directory)"`
	Glob         string `json:"glob,omitempty" jsonschema:"Optional doublestar pattern matched against paths relative to root (e.g. **/*.log)"`
	MinSizeBytes int64  `json:"minSizeBytes,omitempty" jsonschema:"Report only files of at least this many bytes (default: the server large-file threshold; pass 1 to list every text file)"`
	MaxResults   int    `json:"maxResults,omitempty" jsonschema:"Maximum number of files to report (default 50)"`
}

// FindHandler holds the dependencies for the find tool.
type FindHandler struct {
	Threshold uint64
	Excludes  []string
	Logger    *slog.Logger
}

type foundFile struct {
	path string
	size uint64
}

// Handle processes a largefile_find request: it walks the tree under root
// and reports the files worth indexing, biggest first. Binary formats, VCS
// internals and gitignored paths are skipped.
func (h *FindHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args FindArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	root := args.Root
	if root == "" {
		root = "."
	}
	root, err := normalizePath(root)
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Error: %v", err)}},
			IsError: true,
		}, nil, nil
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Error: %s is not a directory", root)}},
			IsError: true,
		}, nil, nil
	}
	if args.Glob != "" && !doublestar.ValidatePattern(args.Glob) {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Error: invalid glob pattern %s", args.Glob)}},
			IsError: true,
		}, nil, nil
	}

	minSize := args.MinSizeBytes
	if minSize <= 0 {
		minSize = int64(h.Threshold)
	}
	maxResults := args.MaxResults
	if maxResults <= 0 {
		maxResults = defaultFindResults
	}

	matcher := ignore.NewMatcher(ignore.MatcherOptions{
		RootDir:        root,
		CustomPatterns: h.Excludes,
	})

	var files []foundFile
	walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			if path != root && matcher.ShouldIgnoreDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if matcher.ShouldIgnore(path) {
			return nil
		}
		if args.Glob != "" {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return nil
			}
			if ok, _ := doublestar.Match(args.Glob, filepath.ToSlash(rel)); !ok {
				return nil
			}
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() < minSize {
			return nil
		}
		files = append(files, foundFile{path: path, size: uint64(info.Size())})
		return nil
	})
	if walkErr != nil {
		h.Logger.Error("largefile_find failed", "root", root, "error", walkErr)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Walk error: %v", walkErr)}},
			IsError: true,
		}, nil, nil
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].size != files[j].size {
			return files[i].size > files[j].size
		}
		return files[i].path < files[j].path
	})
	total := len(files)
	if len(files) > maxResults {
		files = files[:maxResults]
	}

	elapsed := time.Since(start)
	h.Logger.Info("largefile_find",
		"root", root,
		"glob", args.Glob,
		"minSize", minSize,
		"found", total,
		"elapsed", elapsed,
	)

	if total == 0 {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(
				"No files of at least %s under %s.", formatFileSize(uint64(minSize)), root)}},
		}, nil, nil
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Found %d files of at least %s under %s", total, formatFileSize(uint64(minSize)), root))
	if total > len(files) {
		builder.WriteString(fmt.Sprintf(" (showing the %d largest)", len(files)))
	}
	builder.WriteString(":\n\n")
	for _, f := range files {
		builder.WriteString(fmt.Sprintf("  %s  (%s, %s)\n", f.path, formatFileSize(f.size), language.DetectLanguage(f.path)))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: builder.String()}},
	}, nil, nil
}
