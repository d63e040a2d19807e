package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexandro/largefile-mcp/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DefaultChunkBytes is how many bytes a chunk read returns when the caller
// does not say.
const DefaultChunkBytes = 64 * 1024

// ChunkArgs defines the input parameters for the largefile_read_chunk tool.
type ChunkArgs struct {
	FilePath string `json:"filePath" jsonschema:"Path of the file to read"`
	Offset   int64  `json:"offset,omitempty" jsonschema:"Byte offset to start reading at (default 0)"`
	Length   int    `json:"length,omitempty" jsonschema:"Maximum number of bytes to read (default 65536)"`
}

// ChunkHandler holds the dependencies for the chunk tool.
type ChunkHandler struct {
	Engine *engine.Engine
	Logger *slog.Logger
}

// Handle processes a largefile_read_chunk request. Chunk reads are byte
// addressed with no line awareness and need no index; they exist for paging
// through content sequentially.
func (h *ChunkHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ChunkArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.FilePath == "" {
		h.Logger.Warn("largefile_read_chunk called with empty filePath")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: filePath parameter is required"}},
			IsError: true,
		}, nil, nil
	}
	if args.Offset < 0 {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: offset must not be negative"}},
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

	length := args.Length
	if length <= 0 {
		length = DefaultChunkBytes
	}

	res, err := h.Engine.ReadChunk(path, uint64(args.Offset), length)
	if err != nil {
		h.Logger.Error("largefile_read_chunk failed", "filePath", path, "offset", args.Offset, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Read error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	elapsed := time.Since(start)
	h.Logger.Info("largefile_read_chunk",
		"filePath", path,
		"offset", args.Offset,
		"bytesRead", res.BytesRead,
		"elapsed", elapsed,
	)

	header := fmt.Sprintf("── %s (%d bytes at offset %d) ──\n", path, res.BytesRead, args.Offset)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: header + res.Content}},
	}, nil, nil
}
