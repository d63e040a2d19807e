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

// DefaultLineCount is how many lines a read returns when the caller does not
// say.
const DefaultLineCount = 200

// ReadArgs defines the input parameters for the largefile_read_lines tool.
type ReadArgs struct {
	FilePath  string `json:"filePath" jsonschema:"Path of an indexed file"`
	StartLine int    `json:"startLine,omitempty" jsonschema:"First line to read, 0-based (default 0). Negative values read from the top; values past the end return an empty result"`
	LineCount int    `json:"lineCount,omitempty" jsonschema:"Number of lines to read (default 200). Clamped to the end of the file"`
	Raw       bool   `json:"raw,omitempty" jsonschema:"Return the exact bytes without the line number gutter. Use this when the content will be edited and passed to largefile_patch_lines"`
}

// ReadHandler holds the dependencies for the read tool.
type ReadHandler struct {
	Engine *engine.Engine
	Logger *slog.Logger
}

// Handle processes a largefile_read_lines request.
func (h *ReadHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ReadArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.FilePath == "" {
		h.Logger.Warn("largefile_read_lines called with empty filePath")
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

	lineCount := args.LineCount
	if lineCount <= 0 {
		lineCount = DefaultLineCount
	}

	res, err := h.Engine.ReadLines(path, args.StartLine, lineCount)
	if err != nil {
		if errors.Is(err, engine.ErrNotIndexed) {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(
					"File not indexed: %s. Call largefile_index first.", path)}},
				IsError: true,
			}, nil, nil
		}
		h.Logger.Error("largefile_read_lines failed", "filePath", path, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Read error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	elapsed := time.Since(start)
	h.Logger.Info("largefile_read_lines",
		"filePath", path,
		"startLine", res.StartLine,
		"linesRead", res.LinesRead,
		"elapsed", elapsed,
	)

	output := res.Content
	if !args.Raw {
		output = FormatLineRange(path, res)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: output}},
	}, nil, nil
}
