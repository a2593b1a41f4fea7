package source

import (
	"errors"
	"strings"
	"testing"
)

// ============================================================================
// Pagination
// ============================================================================

func TestTextSource_FormFeedPages(t *testing.T) {
	input := "SRF2025\nInternational Conference on RF Superconductivity\fMOA — Monday Opening and Awards\nMOA01 Invited Oral Presentation — Tuning\fMOP — Monday Poster Session"

	src, err := NewTextSource("program.txt", strings.NewReader(input))
	if err != nil {
		t.Fatalf("NewTextSource() error = %v", err)
	}
	defer src.Close()

	if got := src.PageCount(); got != 3 {
		t.Fatalf("PageCount() = %d, want 3", got)
	}

	lines, err := src.Lines(1)
	if err != nil {
		t.Fatalf("Lines(1) error = %v", err)
	}
	if lines[0] != "SRF2025" {
		t.Errorf("page 1 line 0 = %q, want %q", lines[0], "SRF2025")
	}

	lines, err = src.Lines(2)
	if err != nil {
		t.Fatalf("Lines(2) error = %v", err)
	}
	if lines[0] != "MOA — Monday Opening and Awards" {
		t.Errorf("page 2 line 0 = %q", lines[0])
	}
	if lines[1] != "MOA01 Invited Oral Presentation — Tuning" {
		t.Errorf("page 2 line 1 = %q", lines[1])
	}
}

func TestTextSource_SinglePage(t *testing.T) {
	src, err := NewTextSource("page.txt", strings.NewReader("MOA — Monday Opening and Awards\n"))
	if err != nil {
		t.Fatalf("NewTextSource() error = %v", err)
	}
	if got := src.PageCount(); got != 1 {
		t.Errorf("PageCount() = %d, want 1", got)
	}
}

func TestTextSource_CRLF(t *testing.T) {
	src, err := NewTextSource("program.txt", strings.NewReader("first\r\nsecond\r\n"))
	if err != nil {
		t.Fatalf("NewTextSource() error = %v", err)
	}

	lines, err := src.Lines(1)
	if err != nil {
		t.Fatal(err)
	}
	if lines[0] != "first" || lines[1] != "second" {
		t.Errorf("lines = %q, carriage returns should be stripped", lines[:2])
	}
}

func TestTextSource_PageOutOfRange(t *testing.T) {
	src, err := NewTextSource("program.txt", strings.NewReader("content"))
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

func TestTextSource_Empty(t *testing.T) {
	if _, err := NewTextSource("empty.txt", strings.NewReader("")); !errors.Is(err, ErrNoPages) {
		t.Errorf("empty input error = %v, want ErrNoPages", err)
	}
	if _, err := NewTextSource("blank.txt", strings.NewReader("  \n\t\n")); !errors.Is(err, ErrNoPages) {
		t.Errorf("blank input error = %v, want ErrNoPages", err)
	}
}

func TestTextSource_Name(t *testing.T) {
	src, err := NewTextSource("program.txt", strings.NewReader("content"))
	if err != nil {
		t.Fatal(err)
	}
	if got := src.Name(); got != "program.txt" {
		t.Errorf("Name() = %q, want %q", got, "program.txt")
	}
}

// ============================================================================
// Character set handling
// ============================================================================

func TestDecodeText_UTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("MOA — Monday")...)

	text, err := decodeText(data)
	if err != nil {
		t.Fatalf("decodeText() error = %v", err)
	}
	if text != "MOA — Monday" {
		t.Errorf("decodeText() = %q, BOM should be stripped", text)
	}
}

func TestDecodeText_UTF16LE(t *testing.T) {
	// "MOA" with a little-endian BOM.
	data := []byte{0xFF, 0xFE, 0x4D, 0x00, 0x4F, 0x00, 0x41, 0x00}

	text, err := decodeText(data)
	if err != nil {
		t.Fatalf("decodeText() error = %v", err)
	}
	if text != "MOA" {
		t.Errorf("decodeText() = %q, want %q", text, "MOA")
	}
}

func TestDecodeText_UTF16BE(t *testing.T) {
	// "MOA" with a big-endian BOM.
	data := []byte{0xFE, 0xFF, 0x00, 0x4D, 0x00, 0x4F, 0x00, 0x41}

	text, err := decodeText(data)
	if err != nil {
		t.Fatalf("decodeText() error = %v", err)
	}
	if text != "MOA" {
		t.Errorf("decodeText() = %q, want %q", text, "MOA")
	}
}

func TestDecodeText_Windows1252(t *testing.T) {
	// 0x97 is an em dash and 0xE9 is é in Windows-1252; neither is valid
	// UTF-8 here.
	data := []byte("MOA \x97 R\xE9sum\xE9")

	text, err := decodeText(data)
	if err != nil {
		t.Fatalf("decodeText() error = %v", err)
	}
	if text != "MOA — Résumé" {
		t.Errorf("decodeText() = %q, want %q", text, "MOA — Résumé")
	}
}

func TestDecodeText_PlainUTF8(t *testing.T) {
	text, err := decodeText([]byte("MOA — Monday Opening"))
	if err != nil {
		t.Fatalf("decodeText() error = %v", err)
	}
	if text != "MOA — Monday Opening" {
		t.Errorf("decodeText() = %q", text)
	}
}
