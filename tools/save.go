package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexandro/largefile-mcp/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SaveArgs defines the input parameters for the largefile_save tool.
type SaveArgs struct {
	FilePath string `json:"filePath" jsonschema:"Path to write. The file is created if missing, replaced atomically if present"`
	Content  string `json:"content" jsonschema:"Full new content of the file. Empty content truncates the file"`
}

// SaveHandler holds the dependencies for the save tool.
type SaveHandler struct {
	Engine *engine.Engine
	Logger *slog.Logger
}

// Handle processes a largefile_save request. Saving writes the whole file;
// for targeted edits on big files largefile_patch_lines is the right tool.
func (h *SaveHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SaveArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.FilePath == "" {
		h.Logger.Warn("largefile_save called with empty filePath")
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

	if err := h.Engine.SaveFile(path, args.Content); err != nil {
		h.Logger.Error("largefile_save failed", "filePath", path, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Save error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	elapsed := time.Since(start)
	h.Logger.Info("largefile_save",
		"filePath", path,
		"bytes", len(args.Content),
		"elapsed", elapsed,
	)

	output := fmt.Sprintf("Saved %s (%s).", path, formatFileSize(uint64(len(args.Content))))
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: output}},
	}, nil, nil
}
