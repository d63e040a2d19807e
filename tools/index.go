package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexandro/largefile-mcp/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// IndexArgs defines the input parameters for the largefile_index tool.
type IndexArgs struct {
	FilePath string `json:"filePath" jsonschema:"Path of the file to index. Indexing scans the whole file once and must be done before line reads or patches"`
}

// IndexHandler holds the dependencies for the index tool.
type IndexHandler struct {
	Engine  *engine.Engine
	Tracker Tracker
	Logger  *slog.Logger
}

// Handle processes a largefile_index request.
func (h *IndexHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args IndexArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.FilePath == "" {
		h.Logger.Warn("largefile_index called with empty filePath")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: filePath parameter is required"}},
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

	stat, err := h.Engine.IndexFile(path)
	if err != nil {
		h.Logger.Error("largefile_index failed", "filePath", path, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Indexing error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	if h.Tracker != nil {
		if err := h.Tracker.Track(path); err != nil {
			h.Logger.Warn("failed to track indexed file", "filePath", path, "error", err)
		}
	}

	elapsed := time.Since(start)
	h.Logger.Info("largefile_index",
		"filePath", path,
		"lines", stat.TotalLines,
		"size", stat.FileSize,
		"elapsed", elapsed,
	)

	output := fmt.Sprintf("Indexed %s: %d lines, %s, modified %s.\nLines are addressed 0-based.",
		path, stat.TotalLines, formatFileSize(stat.FileSize), formatModTime(stat.ModTime))

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: output}},
	}, nil, nil
}
