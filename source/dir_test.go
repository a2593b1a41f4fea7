package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writePage writes a page file into dir.
func writePage(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDirSource_LexicalOrder(t *testing.T) {
	dir := t.TempDir()
	// Created out of order on purpose.
	writePage(t, dir, "page-0010.txt", "tenth page")
	writePage(t, dir, "page-0001.txt", "first page")
	writePage(t, dir, "page-0002.txt", "second page")

	src, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir() error = %v", err)
	}
	defer src.Close()

	if got := src.PageCount(); got != 3 {
		t.Fatalf("PageCount() = %d, want 3", got)
	}

	for page, want := range map[int]string{1: "first page", 2: "second page", 3: "tenth page"} {
		lines, err := src.Lines(page)
		if err != nil {
			t.Fatalf("Lines(%d) error = %v", page, err)
		}
		if lines[0] != want {
			t.Errorf("page %d line 0 = %q, want %q", page, lines[0], want)
		}
	}
}

func TestDirSource_IgnoresNonPageFiles(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "page-0001.txt", "content")
	writePage(t, dir, "README.md", "not a page")
	writePage(t, dir, ".hidden.txt", "not a page either")
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}

	src, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir() error = %v", err)
	}

	if got := src.PageCount(); got != 1 {
		t.Errorf("PageCount() = %d, want 1", got)
	}
}

func TestDirSource_CountsImagePages(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "page-0001.txt", "text page")
	writePage(t, dir, "page-0002.png", "fake image bytes")

	src, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir() error = %v", err)
	}

	if got := src.PageCount(); got != 2 {
		t.Errorf("PageCount() = %d, want 2", got)
	}
}

func TestDirSource_CachesPages(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "page-0001.txt", "original")

	src, err := OpenDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	first, err := src.Lines(1)
	if err != nil {
		t.Fatal(err)
	}
	if first[0] != "original" {
		t.Fatalf("line 0 = %q", first[0])
	}

	// A second read serves the cached lines even if the file changed.
	writePage(t, dir, "page-0001.txt", "rewritten")
	second, err := src.Lines(1)
	if err != nil {
		t.Fatal(err)
	}
	if second[0] != "original" {
		t.Errorf("cached line 0 = %q, want %q", second[0], "original")
	}
}

func TestDirSource_Empty(t *testing.T) {
	if _, err := OpenDir(t.TempDir()); !errors.Is(err, ErrNoPages) {
		t.Errorf("OpenDir() error = %v, want ErrNoPages", err)
	}
}

func TestDirSource_PageOutOfRange(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "page-0001.txt", "content")

	src, err := OpenDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := src.Lines(0); err == nil {
		t.Error("Lines(0) expected error")
	}
	if _, err := src.Lines(2); err == nil {
		t.Error("Lines(2) expected error")
	}
}

func TestDirSource_Name(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "srf2025-pages")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writePage(t, dir, "page-0001.txt", "content")

	src, err := OpenDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := src.Name(); got != "srf2025-pages" {
		t.Errorf("Name() = %q, want %q", got, "srf2025-pages")
	}
}
