package engine

import "testing"

func Test_ReadChunk_MidFile(t *testing.T) {
	e := testEngine(t)
	path := writeTestFile(t, "hello world")

	res, err := e.ReadChunk(path, 6, 5)
	if err != nil {
		t.Fatalf("ReadChunk failed: %v", err)
	}
	if res.Content != "world" || res.BytesRead != 5 {
		t.Errorf("expected %q (5 bytes), got %q (%d bytes)", "world", res.Content, res.BytesRead)
	}
}

func Test_ReadChunk_ShortAtEOF(t *testing.T) {
	e := testEngine(t)
	path := writeTestFile(t, "hello world")

	res, err := e.ReadChunk(path, 6, 100)
	if err != nil {
		t.Fatalf("ReadChunk failed: %v", err)
	}
	if res.Content != "world" || res.BytesRead != 5 {
		t.Errorf("expected a short read of %q, got %q (%d bytes)", "world", res.Content, res.BytesRead)
	}
}

func Test_ReadChunk_OffsetPastEOF(t *testing.T) {
	e := testEngine(t)
	path := writeTestFile(t, "short")

	res, err := e.ReadChunk(path, 1000, 10)
	if err != nil {
		t.Fatalf("ReadChunk failed: %v", err)
	}
	if res.BytesRead != 0 || res.Content != "" {
		t.Errorf("expected an empty read past EOF, got %q (%d bytes)", res.Content, res.BytesRead)
	}
}

func Test_ReadChunk_ZeroLength(t *testing.T) {
	e := testEngine(t)
	path := writeTestFile(t, "data")

	res, err := e.ReadChunk(path, 0, 0)
	if err != nil {
		t.Fatalf("ReadChunk failed: %v", err)
	}
	if res.BytesRead != 0 {
		t.Errorf("expected 0 bytes, got %d", res.BytesRead)
	}
}

func Test_ReadChunk_MissingFile(t *testing.T) {
	e := testEngine(t)

	if _, err := e.ReadChunk("/no/such/file.txt", 0, 10); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
