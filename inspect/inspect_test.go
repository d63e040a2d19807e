package inspect

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeNamedFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}
	return path
}

func Test_Classify_SmallTextFile(t *testing.T) {
	path := writeNamedFile(t, "notes.txt", []byte("hello\nworld\n"))

	info, err := Classify(path, DefaultLargeFileThreshold)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if info.Kind != KindText {
		t.Errorf("expected text, got %s", info.Kind)
	}
	if info.Name != "notes.txt" || info.Extension != "txt" {
		t.Errorf("unexpected name/extension: %s/%s", info.Name, info.Extension)
	}
	if info.Size != 12 {
		t.Errorf("expected size 12, got %d", info.Size)
	}
	if info.ModTime <= 0 {
		t.Errorf("expected a positive mtime, got %d", info.ModTime)
	}
}

func Test_Classify_LargeFileAboveThreshold(t *testing.T) {
	content := strings.Repeat("x", 101)
	path := writeNamedFile(t, "big.log", []byte(content))

	info, err := Classify(path, 100)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if info.Kind != KindLarge {
		t.Errorf("expected large, got %s", info.Kind)
	}
}

func Test_Classify_ThresholdIsExclusive(t *testing.T) {
	content := strings.Repeat("x", 100)
	path := writeNamedFile(t, "edge.log", []byte(content))

	info, err := Classify(path, 100)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	// Exactly at the threshold still counts as small.
	if info.Kind != KindText {
		t.Errorf("expected text at the threshold boundary, got %s", info.Kind)
	}
}

func Test_Classify_BinaryFile(t *testing.T) {
	path := writeNamedFile(t, "blob.bin", []byte{0x01, 0x00, 0x02, 'a', 'b'})

	info, err := Classify(path, DefaultLargeFileThreshold)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if info.Kind != KindBinary {
		t.Errorf("expected binary, got %s", info.Kind)
	}
}

func Test_Classify_NULBeyondSniffWindowIsText(t *testing.T) {
	content := append([]byte(strings.Repeat("a", sniffWindow)), 0x00)
	path := writeNamedFile(t, "tail-nul.dat", content)

	info, err := Classify(path, DefaultLargeFileThreshold)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if info.Kind != KindText {
		t.Errorf("NUL past the sniff window should not flag binary, got %s", info.Kind)
	}
}

func Test_Classify_ImageExtensionWinsOverNULs(t *testing.T) {
	// PNG-ish bytes, full of NULs.
	path := writeNamedFile(t, "pic.PNG", []byte{0x89, 'P', 'N', 'G', 0x00, 0x00, 0x01})

	info, err := Classify(path, DefaultLargeFileThreshold)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if info.Kind != KindImage {
		t.Errorf("expected image, got %s", info.Kind)
	}
	if info.MIMEType != "image/png" {
		t.Errorf("expected image/png, got %s", info.MIMEType)
	}
}

func Test_Classify_SVGMimeType(t *testing.T) {
	path := writeNamedFile(t, "icon.svg", []byte("<svg></svg>"))

	info, err := Classify(path, DefaultLargeFileThreshold)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if info.Kind != KindImage || info.MIMEType != "image/svg+xml" {
		t.Errorf("expected image/svg+xml, got %s %s", info.Kind, info.MIMEType)
	}
}

func Test_Classify_MissingFile(t *testing.T) {
	_, err := Classify(filepath.Join(t.TempDir(), "nope.txt"), DefaultLargeFileThreshold)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func Test_Classify_Directory(t *testing.T) {
	_, err := Classify(t.TempDir(), DefaultLargeFileThreshold)
	if err == nil {
		t.Fatal("expected an error for a directory")
	}
}

func Test_IsBinaryContent(t *testing.T) {
	if IsBinaryContent([]byte("plain text")) {
		t.Error("plain text flagged as binary")
	}
	if !IsBinaryContent([]byte{'a', 0x00, 'b'}) {
		t.Error("NUL bytes not flagged as binary")
	}
	if IsBinaryContent(nil) {
		t.Error("empty content flagged as binary")
	}
}
