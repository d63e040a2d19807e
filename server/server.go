package server

import (
	"github.com/lexandro/largefile-mcp/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Setup creates and configures the MCP server with all tool registrations.
func Setup(
	openHandler *tools.OpenHandler,
	indexHandler *tools.IndexHandler,
	readHandler *tools.ReadHandler,
	patchHandler *tools.PatchHandler,
	searchHandler *tools.SearchHandler,
	findHandler *tools.FindHandler,
	chunkHandler *tools.ChunkHandler,
	saveHandler *tools.SaveHandler,
	statusHandler *tools.StatusHandler,
) *mcp.Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "largefile-mcp",
			Version: "0.3.0",
		},
		&mcp.ServerOptions{
			Instructions: `This server reads and edits files that are too big to load whole: logs, dumps, datasets, generated code. It indexes line offsets once, then serves any line range with a single seek instead of rescanning the file.

Workflow for a big file:
1. largefile_open it. Small text comes back directly; big files come back with size and line info.
2. largefile_index it once. Line numbers are 0-based from here on.
3. largefile_read_lines to page through it, largefile_search to find lines worth looking at.
4. largefile_read_lines with raw=true before editing, then largefile_patch_lines to replace exactly those lines. The file is rewritten atomically and re-indexed, so the reported line numbers are always current.

ALWAYS prefer these tools over built-in Read and Edit for files beyond a few hundred KB:
- Built-in Read loads the whole file; largefile_read_lines reads only the requested range
- Built-in Edit rewrites from full content; largefile_patch_lines splices the replaced byte span
- Use largefile_find to locate big files worth indexing under a directory
- Use largefile_read_chunk for raw byte ranges of binary or unindexed files`,
		},
	)

	// Register largefile_open tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "largefile_open",
		Description: `Open a file the cheap way first. Small text files come back whole, images come back rendered, and anything above the large-file threshold comes back as metadata plus instructions for the indexed line tools.

Use this as the entry point when file size is unknown.`,
	}, openHandler.Handle)

	// Register largefile_index tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "largefile_index",
		Description: `Index a file's line offsets. One sequential scan, after which any line range can be read or patched with a single seek. Must be called before largefile_read_lines or largefile_patch_lines, and again after the file changes on disk outside this server.

Line numbers are 0-based.`,
	}, indexHandler.Handle)

	// Register largefile_read_lines tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "largefile_read_lines",
		Description: `Read a line range from an indexed file. Reads only the requested bytes regardless of file size.

Ranges are clamped, never rejected: lineCount beyond EOF returns what exists, startLine beyond EOF returns an empty result. Output is numbered 0-based; pass raw=true to get the exact bytes for editing instead.`,
	}, readHandler.Handle)

	// Register largefile_patch_lines tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "largefile_patch_lines",
		Description: `Replace a line range of an indexed file with new content. The replacement need not have the same number of lines. lineCount=0 inserts before startLine, and empty content deletes the range. A startLine past the end appends at EOF.

The file is rewritten atomically (temp file and rename) and re-indexed before the call returns, so line numbers in the response refer to the patched file. Read the range first with largefile_read_lines raw=true to splice precisely.`,
	}, patchHandler.Handle)

	// Register largefile_search tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "largefile_search",
		Description: `Search one file for matching lines, streaming front to back with bounded memory. Works on any text file, indexed or not, and stops early once maxResults is reached.

Query formats:
  - Plain text: case-insensitive substring (e.g., "timeout")
  - "quoted text": exact substring (e.g., "\"Exception\"")
  - /regex/: regular expression (e.g., "/ERROR|FATAL/")

Matching line numbers are 0-based and can be passed straight to largefile_read_lines or largefile_patch_lines.`,
	}, searchHandler.Handle)

	// Register largefile_find tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "largefile_find",
		Description: `Find big text files under a directory, largest first. Binary formats, VCS internals and gitignored paths are skipped.

Pattern examples:
  - "**/*.log" - all log files
  - "data/**/*.csv" - CSV files under data/
  - "**/*.sql" - SQL dumps anywhere`,
	}, findHandler.Handle)

	// Register largefile_read_chunk tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "largefile_read_chunk",
		Description: "Read a raw byte range from a file at a given offset. No index needed and no line awareness; use it to page sequentially through unindexed or binary content.",
	}, chunkHandler.Handle)

	// Register largefile_save tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "largefile_save",
		Description: "Write a whole file atomically (temp file and rename), creating it if missing. Indexed files are re-indexed after the write. For targeted edits on big files use largefile_patch_lines instead.",
	}, saveHandler.Handle)

	// Register largefile_status tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "largefile_status",
		Description: "Show server status: indexed files with line counts, index memory, change tracking, and uptime.",
	}, statusHandler.Handle)

	return mcpServer
}
