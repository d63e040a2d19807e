package tools

import (
	"context"
	"strings"
	"testing"
)

func newTestReadHandler(t *testing.T) *ReadHandler {
	t.Helper()
	return &ReadHandler{
		Engine: testEngine(t),
		Logger: testLogger(),
	}
}

func Test_ReadHandler_EmptyFilePath(t *testing.T) {
	h := newTestReadHandler(t)

	result, _, err := h.Handle(context.Background(), nil, ReadArgs{FilePath: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError=true for empty filePath")
	}

	text := resultText(t, result)
	if !strings.Contains(text, "filePath parameter is required") {
		t.Errorf("expected error message about empty filePath, got: %s", text)
	}
}

func Test_ReadHandler_NotIndexed(t *testing.T) {
	h := newTestReadHandler(t)
	path := writeTestFile(t, "data.log", "a\nb\n")

	result, _, err := h.Handle(context.Background(), nil, ReadArgs{FilePath: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError=true for an unindexed file")
	}

	text := resultText(t, result)
	if !strings.Contains(text, "largefile_index") {
		t.Errorf("expected remediation pointing at largefile_index, got: %s", text)
	}
}

func Test_ReadHandler_NumberedOutput(t *testing.T) {
	h := newTestReadHandler(t)
	path := writeTestFile(t, "data.log", "alpha\nbeta\ngamma\n")
	if _, err := h.Engine.IndexFile(path); err != nil {
		t.Fatalf("IndexFile failed: %v", err)
	}

	result, _, err := h.Handle(context.Background(), nil, ReadArgs{FilePath: path, StartLine: 1, LineCount: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %s", resultText(t, result))
	}

	text := resultText(t, result)
	// The gutter is 0-based so its numbers feed straight back into patches.
	if !strings.Contains(text, "1│ beta") {
		t.Errorf("expected 0-based numbered line 'beta', got:\n%s", text)
	}
	if !strings.Contains(text, "2│ gamma") {
		t.Errorf("expected 0-based numbered line 'gamma', got:\n%s", text)
	}
	if strings.Contains(text, "alpha") {
		t.Errorf("expected the range to start at line 1, got:\n%s", text)
	}
}

func Test_ReadHandler_RawOutput(t *testing.T) {
	h := newTestReadHandler(t)
	path := writeTestFile(t, "data.log", "alpha\nbeta\n")
	if _, err := h.Engine.IndexFile(path); err != nil {
		t.Fatalf("IndexFile failed: %v", err)
	}

	result, _, err := h.Handle(context.Background(), nil, ReadArgs{FilePath: path, LineCount: 2, Raw: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resultText(t, result); got != "alpha\nbeta\n" {
		t.Errorf("expected exact raw bytes, got %q", got)
	}
}

func Test_ReadHandler_PastEndReturnsEmpty(t *testing.T) {
	h := newTestReadHandler(t)
	path := writeTestFile(t, "data.log", "alpha\nbeta\n")
	if _, err := h.Engine.IndexFile(path); err != nil {
		t.Fatalf("IndexFile failed: %v", err)
	}

	result, _, err := h.Handle(context.Background(), nil, ReadArgs{FilePath: path, StartLine: 500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("past-end reads must not error, got: %s", resultText(t, result))
	}
	if !strings.Contains(resultText(t, result), "no lines in range") {
		t.Errorf("expected an empty-range note, got: %s", resultText(t, result))
	}
}

func Test_ReadHandler_DefaultLineCount(t *testing.T) {
	h := newTestReadHandler(t)
	var b strings.Builder
	for i := 0; i < DefaultLineCount+50; i++ {
		b.WriteString("line\n")
	}
	path := writeTestFile(t, "data.log", b.String())
	if _, err := h.Engine.IndexFile(path); err != nil {
		t.Fatalf("IndexFile failed: %v", err)
	}

	result, _, err := h.Handle(context.Background(), nil, ReadArgs{FilePath: path, Raw: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)
	if got := strings.Count(text, "\n"); got != DefaultLineCount {
		t.Errorf("expected %d lines by default, got %d", DefaultLineCount, got)
	}
}
