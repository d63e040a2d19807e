package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lexandro/largefile-mcp/engine"
	"github.com/lexandro/largefile-mcp/index"
	"github.com/lexandro/largefile-mcp/inspect"
	"github.com/lexandro/largefile-mcp/register"
	"github.com/lexandro/largefile-mcp/server"
	"github.com/lexandro/largefile-mcp/tools"
	"github.com/lexandro/largefile-mcp/watcher"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// excludePatterns is a repeatable CLI flag for custom ignore patterns.
type excludePatterns []string

func (e *excludePatterns) String() string { return strings.Join(*e, ", ") }
func (e *excludePatterns) Set(value string) error {
	*e = append(*e, value)
	return nil
}

func main() {
	// "register" installs the binary as an MCP server and exits
	if len(os.Args) > 1 && os.Args[1] == "register" {
		register.Run(register.DeriveServerName(os.Args[0]), os.Args[2:])
		return
	}

	// Parse CLI flags
	var threshold uint64
	var watch bool
	var revalidate bool
	var maxResults int
	var logLevel string
	var logFile string
	var excludes excludePatterns

	flag.Uint64Var(&threshold, "threshold", inspect.DefaultLargeFileThreshold, "Large file threshold in bytes; bigger files are served through the line index")
	flag.BoolVar(&watch, "watch", true, "Track indexed files and drop indexes changed behind the server's back")
	flag.BoolVar(&revalidate, "revalidate", false, "Stat files before reads and patches and fail on a stale index instead of trusting it")
	flag.IntVar(&maxResults, "max-results", 50, "Default max search results (default: 50)")
	flag.Var(&excludes, "exclude", "Extra ignore pattern for largefile_find (repeatable)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	flag.StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")
	flag.Parse()

	// Setup logger (file or stderr, never stdout - stdout is for MCP stdio)
	logger := setupLogger(logLevel, logFile)

	logger.Info("starting largefile-mcp",
		"threshold", threshold,
		"watch", watch,
		"revalidate", revalidate,
		"maxResults", maxResults,
	)

	startTime := time.Now()

	// All shared state lives in the line index cache
	cache := index.NewCache()
	eng := engine.New(cache, engine.Options{Revalidate: revalidate})

	// Start change tracking for indexed files
	var fileWatcher *watcher.Watcher
	if watch {
		fw, err := watcher.NewWatcher(logger)
		if err != nil {
			logger.Warn("failed to start file watcher, continuing without change tracking", "error", err)
		} else {
			fileWatcher = fw
			go fileWatcher.Start()
			go handleWatcherEvents(fileWatcher, cache, logger)
			defer fileWatcher.Close()
		}
	}

	// Create tool handlers
	openHandler := &tools.OpenHandler{Threshold: threshold, Logger: logger}
	indexHandler := &tools.IndexHandler{Engine: eng, Logger: logger}
	if fileWatcher != nil {
		indexHandler.Tracker = fileWatcher
	}
	readHandler := &tools.ReadHandler{Engine: eng, Logger: logger}
	patchHandler := &tools.PatchHandler{Engine: eng, Logger: logger}
	searchHandler := &tools.SearchHandler{MaxResults: maxResults, Logger: logger}
	findHandler := &tools.FindHandler{Threshold: threshold, Excludes: excludes, Logger: logger}
	chunkHandler := &tools.ChunkHandler{Engine: eng, Logger: logger}
	saveHandler := &tools.SaveHandler{Engine: eng, Logger: logger}
	statusHandler := &tools.StatusHandler{
		Cache:      cache,
		Watcher:    fileWatcher,
		StartTime:  startTime,
		Threshold:  threshold,
		Revalidate: revalidate,
		Logger:     logger,
	}

	// Setup and run MCP server on stdio
	mcpServer := server.Setup(
		openHandler,
		indexHandler,
		readHandler,
		patchHandler,
		searchHandler,
		findHandler,
		chunkHandler,
		saveHandler,
		statusHandler,
	)

	logger.Info("MCP server starting on stdio")
	if err := mcpServer.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Error("MCP server error", "error", err)
		os.Exit(1)
	}
}

// setupLogger creates an slog.Logger writing to stderr or a file.
func setupLogger(level string, logFile string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var writer *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v, falling back to stderr\n", logFile, err)
			writer = os.Stderr
		} else {
			writer = f
		}
	} else {
		writer = os.Stderr
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}
