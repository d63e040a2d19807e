package tools

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
	"unicode/utf8"

	"github.com/lexandro/largefile-mcp/inspect"
	"github.com/lexandro/largefile-mcp/language"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// OpenArgs defines the input parameters for the largefile_open tool.
type OpenArgs struct {
	FilePath string `json:"filePath" jsonschema:"Path of the file to open (absolute or relative to the server working directory)"`
}

// OpenHandler holds the dependencies for the open tool.
type OpenHandler struct {
	Threshold uint64
	Logger    *slog.Logger
}

// Handle processes a largefile_open request: it classifies the file and
// returns full content for small text, image data for images, and guidance
// toward the indexed line tools for everything too big to hand over whole.
func (h *OpenHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args OpenArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.FilePath == "" {
		h.Logger.Warn("largefile_open called with empty filePath")
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

	info, err := inspect.Classify(path, h.Threshold)
	if err != nil {
		h.Logger.Error("largefile_open failed", "filePath", path, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	elapsed := time.Since(start)
	h.Logger.Info("largefile_open",
		"filePath", path,
		"kind", info.Kind,
		"size", info.Size,
		"elapsed", elapsed,
	)

	header := fmt.Sprintf("── %s (%s, %s, modified %s) ──\n",
		path, language.DetectLanguage(path), formatFileSize(info.Size), formatModTime(info.ModTime))

	switch info.Kind {
	case inspect.KindBinary:
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: header +
				"Binary file. It cannot be read or edited as text."}},
		}, nil, nil

	case inspect.KindImage:
		data, err := readFileWithRetry(path)
		if err != nil {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Error reading image: %v", err)}},
				IsError: true,
			}, nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: header},
				&mcp.ImageContent{Data: data, MIMEType: info.MIMEType},
			},
		}, nil, nil

	case inspect.KindLarge:
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: header + fmt.Sprintf(
				"Too large to return whole (threshold %s). Call largefile_index on it, then page through largefile_read_lines and edit with largefile_patch_lines.",
				formatFileSize(h.Threshold))}},
		}, nil, nil
	}

	data, err := readFileWithRetry(path)
	if err != nil {
		h.Logger.Error("largefile_open read failed", "filePath", path, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Error reading file: %v", err)}},
			IsError: true,
		}, nil, nil
	}
	if !utf8.Valid(data) {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: header +
				"Not valid UTF-8 text. Use largefile_index and largefile_read_lines to inspect it with lossy decoding."}},
			IsError: true,
		}, nil, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: header + string(data)}},
	}, nil, nil
}

// readFileWithRetry attempts to read a file, retrying once after a short delay
// if the file is locked (common on Windows when editors are saving). Only the
// whole-file reads here retry; indexed reads and patches never do.
func readFileWithRetry(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		time.Sleep(50 * time.Millisecond)
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}
