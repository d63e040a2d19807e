package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexandro/largefile-mcp/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PatchArgs defines the input parameters for the largefile_patch_lines tool.
type PatchArgs struct {
	FilePath  string `json:"filePath" jsonschema:"Path of an indexed file"`
	StartLine int    `json:"startLine" jsonschema:"First line to replace, 0-based, as shown by largefile_read_lines"`
	LineCount int    `json:"lineCount,omitempty" jsonschema:"Number of lines to replace. 0 inserts the content before startLine without removing anything"`
	Content   string `json:"content" jsonschema:"Replacement text, written verbatim. End it with a newline unless joining onto the following line is intended; empty deletes the lines"`
}

// PatchHandler holds the dependencies for the patch tool.
type PatchHandler struct {
	Engine *engine.Engine
	Logger *slog.Logger
}

// Handle processes a largefile_patch_lines request.
func (h *PatchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args PatchArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.FilePath == "" {
		h.Logger.Warn("largefile_patch_lines called with empty filePath")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: filePath parameter is required"}},
			IsError: true,
		}, nil, nil
	}
	if args.StartLine < 0 {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: startLine must not be negative"}},
			IsError: true,
		}, nil, nil
	}
	if args.LineCount < 0 {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: lineCount must not be negative"}},
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

	stat, err := h.Engine.PatchLines(path, args.StartLine, args.LineCount, args.Content)
	if err != nil {
		if errors.Is(err, engine.ErrNotIndexed) {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(
					"File not indexed: %s. Call largefile_index first.", path)}},
				IsError: true,
			}, nil, nil
		}
		h.Logger.Error("largefile_patch_lines failed",
			"filePath", path,
			"startLine", args.StartLine,
			"lineCount", args.LineCount,
			"error", err,
		)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Patch error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	elapsed := time.Since(start)
	h.Logger.Info("largefile_patch_lines",
		"filePath", path,
		"startLine", args.StartLine,
		"lineCount", args.LineCount,
		"newBytes", len(args.Content),
		"elapsed", elapsed,
	)

	output := fmt.Sprintf("Patched %s at line %d (%d lines replaced by %d bytes).\nFile is now %d lines, %s. The index was refreshed; line numbers refer to the patched file.",
		path, args.StartLine, args.LineCount, len(args.Content), stat.TotalLines, formatFileSize(stat.FileSize))

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: output}},
	}, nil, nil
}
