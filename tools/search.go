package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexandro/largefile-mcp/inspect"
	"github.com/lexandro/largefile-mcp/search"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchArgs defines the input parameters for the largefile_search tool.
type SearchArgs struct {
	FilePath     string `json:"filePath" jsonschema:"Path of the file to scan. Works on any text file, indexed or not"`
	Query        string `json:"query" jsonschema:"Search query. Plain text for case-insensitive match, quoted for exact substring, /regex/ for regular expression"`
	MaxResults   int    `json:"maxResults,omitempty" jsonschema:"Maximum number of matching lines to return (default 50). The scan stops early once reached"`
	ContextLines int    `json:"contextLines,omitempty" jsonschema:"Number of context lines before and after each match (default 2)"`
}

// SearchHandler holds the dependencies for the search tool.
type SearchHandler struct {
	MaxResults int
	Logger     *slog.Logger
}

// Handle processes a largefile_search request. The scan streams the file
// front to back, so it works on files of any size without an index.
func (h *SearchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.FilePath == "" {
		h.Logger.Warn("largefile_search called with empty filePath")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: filePath parameter is required"}},
			IsError: true,
		}, nil, nil
	}
	if args.Query == "" {
		h.Logger.Warn("largefile_search called with empty query")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: query parameter is required"}},
			IsError: true,
		}, nil, nil
	}
	path, err := normalizePath(args.FilePath)
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	binary, err := inspect.IsBinaryFile(path)
	if err != nil {
		h.Logger.Error("largefile_search failed", "filePath", path, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Search error: %v", err)}},
			IsError: true,
		}, nil, nil
	}
	if binary {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(
				"Binary file: %s. Line search needs text; use largefile_read_chunk to inspect raw bytes.", path)}},
			IsError: true,
		}, nil, nil
	}

	maxResults := args.MaxResults
	if maxResults <= 0 {
		maxResults = h.MaxResults
	}
	contextLines := args.ContextLines
	if contextLines == 0 {
		contextLines = search.DefaultContextLines
	}

	res, err := search.File(path, search.Options{
		Query:        args.Query,
		MaxResults:   maxResults,
		ContextLines: contextLines,
	})
	if err != nil {
		h.Logger.Error("largefile_search failed", "filePath", path, "query", args.Query, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Search error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	elapsed := time.Since(start)
	h.Logger.Info("largefile_search",
		"filePath", path,
		"query", args.Query,
		"matches", len(res.Matches),
		"linesScanned", res.LinesScanned,
		"truncated", res.Truncated,
		"elapsed", elapsed,
	)

	output := FormatSearchResults(path, args.Query, res)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: output}},
	}, nil, nil
}
