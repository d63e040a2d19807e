package tools

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/lexandro/largefile-mcp/index"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// --- StatusHandler ---

func newTestStatusHandler(t *testing.T) *StatusHandler {
	t.Helper()
	return &StatusHandler{
		Cache:     index.NewCache(),
		StartTime: time.Now(),
		Threshold: 2 * 1024 * 1024,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func Test_StatusHandler_Handle(t *testing.T) {
	h := newTestStatusHandler(t)

	h.Cache.Put("/data/server.log", &index.LineIndex{
		Offsets:  []uint64{0, 10, 20},
		FileSize: 30,
		ModTime:  time.Now(),
	})

	result, _, err := h.Handle(context.Background(), nil, StatusArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success, got error result")
	}

	text := result.Content[0].(*mcp.TextContent).Text

	checks := []string{
		"largefile-mcp Status",
		"Large file threshold: 2.0 MB",
		"Indexed files: 1",
		"Indexed lines: 3",
		"/data/server.log",
		"Change tracking: off",
	}
	for _, check := range checks {
		if !strings.Contains(text, check) {
			t.Errorf("expected output to contain %q, got:\n%s", check, text)
		}
	}
}

func Test_StatusHandler_EmptyCache(t *testing.T) {
	h := newTestStatusHandler(t)

	result, _, err := h.Handle(context.Background(), nil, StatusArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := result.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "Indexed files: 0") {
		t.Errorf("expected zero indexed files, got:\n%s", text)
	}
}

func Test_StatusHandler_TruncatesFileList(t *testing.T) {
	h := newTestStatusHandler(t)

	for i := 0; i < statusFileLimit+5; i++ {
		h.Cache.Put(
			"/data/file"+string(rune('a'+i))+".log",
			&index.LineIndex{Offsets: []uint64{0}, FileSize: 1, ModTime: time.Now()},
		)
	}

	result, _, err := h.Handle(context.Background(), nil, StatusArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := result.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "... and 5 more") {
		t.Errorf("expected truncation marker, got:\n%s", text)
	}
}

func Test_StatusHandler_RevalidationLine(t *testing.T) {
	h := newTestStatusHandler(t)
	h.Revalidate = true

	result, _, err := h.Handle(context.Background(), nil, StatusArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := result.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "Index revalidation: on") {
		t.Errorf("expected revalidation on, got:\n%s", text)
	}
}
