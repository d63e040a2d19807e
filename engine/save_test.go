package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func Test_SaveFile_CreatesNewFile(t *testing.T) {
	e := testEngine(t)
	path := filepath.Join(t.TempDir(), "new.txt")

	if err := e.SaveFile(path, "hello\n"); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	if got := readDisk(t, path); got != "hello\n" {
		t.Errorf("expected %q, got %q", "hello\n", got)
	}
	if e.Cache().Contains(path) {
		t.Error("saving an unindexed file must not create a cache entry")
	}
}

func Test_SaveFile_OverwritesExisting(t *testing.T) {
	e := testEngine(t)
	path := writeTestFile(t, "old content\n")

	if err := e.SaveFile(path, "new content\n"); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	if got := readDisk(t, path); got != "new content\n" {
		t.Errorf("expected %q, got %q", "new content\n", got)
	}
}

func Test_SaveFile_ReindexesIndexedFile(t *testing.T) {
	e := testEngine(t)
	path := writeTestFile(t, "a\nbb\nccc\n")

	if _, err := e.IndexFile(path); err != nil {
		t.Fatalf("IndexFile failed: %v", err)
	}
	if err := e.SaveFile(path, "x\ny\n"); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}

	// Line reads right after the save must observe the saved content.
	stat, err := e.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if stat.TotalLines != 3 {
		t.Errorf("expected 3 lines after save, got %d", stat.TotalLines)
	}
	res, err := e.ReadLines(path, 0, stat.TotalLines)
	if err != nil {
		t.Fatalf("ReadLines failed: %v", err)
	}
	if res.Content != "x\ny\n" {
		t.Errorf("expected saved content, got %q", res.Content)
	}
}

func Test_SaveFile_PreservesFileMode(t *testing.T) {
	e := testEngine(t)
	path := writeTestFile(t, "a\n")
	if err := os.Chmod(path, 0600); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}

	if err := e.SaveFile(path, "b\n"); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600 after save, got %v", info.Mode().Perm())
	}
}

func Test_SaveFile_MissingDirectory(t *testing.T) {
	e := testEngine(t)
	path := filepath.Join(t.TempDir(), "absent", "file.txt")

	if err := e.SaveFile(path, "x"); err == nil {
		t.Fatal("expected an error when the parent directory is missing")
	}
}
