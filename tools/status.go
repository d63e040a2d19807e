package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/lexandro/largefile-mcp/index"
	"github.com/lexandro/largefile-mcp/watcher"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// statusFileLimit caps how many per-file rows the status output lists.
const statusFileLimit = 20

// StatusArgs defines the input parameters for the largefile_status tool
// (none required).
type StatusArgs struct{}

// StatusHandler holds the dependencies for the status tool.
type StatusHandler struct {
	Cache      *index.Cache
	Watcher    *watcher.Watcher // nil when change tracking is disabled
	StartTime  time.Time
	Threshold  uint64
	Revalidate bool
	Logger     *slog.Logger
}

// Handle processes a largefile_status request.
func (h *StatusHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args StatusArgs) (*mcp.CallToolResult, any, error) {
	fileCount := h.Cache.Len()
	totalLines := h.Cache.TotalLines()
	offsetBytes := h.Cache.OffsetBytes()
	uptime := time.Since(h.StartTime)

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	h.Logger.Info("largefile_status",
		"files", fileCount,
		"totalLines", totalLines,
		"offsetBytes", offsetBytes,
		"memory", memStats.Alloc,
		"uptime", uptime,
	)

	var builder strings.Builder
	builder.WriteString("=== largefile-mcp Status ===\n\n")
	builder.WriteString(fmt.Sprintf("Uptime: %s\n", formatDuration(uptime)))
	builder.WriteString(fmt.Sprintf("Large file threshold: %s\n", formatFileSize(h.Threshold)))
	builder.WriteString(fmt.Sprintf("Index revalidation: %s\n", onOff(h.Revalidate)))
	if h.Watcher != nil {
		builder.WriteString(fmt.Sprintf("Change tracking: on (%d files watched)\n", h.Watcher.TrackedCount()))
	} else {
		builder.WriteString("Change tracking: off\n")
	}
	builder.WriteString(fmt.Sprintf("Indexed files: %d\n", fileCount))
	builder.WriteString(fmt.Sprintf("Indexed lines: %d\n", totalLines))
	builder.WriteString(fmt.Sprintf("Index memory: %s\n", formatFileSize(uint64(offsetBytes))))
	builder.WriteString(fmt.Sprintf("Process memory: %s (heap: %s)\n",
		formatFileSize(memStats.Alloc),
		formatFileSize(memStats.HeapAlloc),
	))

	if fileCount > 0 {
		builder.WriteString("\nIndexed files:\n")
		paths := h.Cache.Paths()
		shown := paths
		if len(shown) > statusFileLimit {
			shown = shown[:statusFileLimit]
		}
		for _, p := range shown {
			snap, ok := h.Cache.Snapshot(p)
			if !ok {
				continue
			}
			builder.WriteString(fmt.Sprintf("  %s  (%d lines, %s)\n",
				p, snap.TotalLines, formatFileSize(snap.FileSize)))
		}
		if len(paths) > statusFileLimit {
			builder.WriteString(fmt.Sprintf("  ... and %d more\n", len(paths)-statusFileLimit))
		}
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: builder.String()}},
	}, nil, nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
