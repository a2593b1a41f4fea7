package source

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestOpen_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program.txt")
	if err := os.WriteFile(path, []byte("MOA — Monday Opening and Awards"), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	if _, ok := src.(*TextSource); !ok {
		t.Errorf("Open() returned %T, want *TextSource", src)
	}
}

func TestOpen_HTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program.html")
	if err := os.WriteFile(path, []byte("<html><body><p>MOA</p></body></html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	if _, ok := src.(*HTMLSource); !ok {
		t.Errorf("Open() returned %T, want *HTMLSource", src)
	}
}

func TestOpen_Dir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "page-0001.txt"), []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	if _, ok := src.(*DirSource); !ok {
		t.Errorf("Open() returned %T, want *DirSource", src)
	}
}

func TestOpen_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program.bin")
	if err := os.WriteFile(path, []byte{0x00, 0x01, 0x02, 0x03}, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path); err == nil {
		t.Error("Open() expected error for binary input")
	}
}

func TestOpen_Missing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("Open() expected error for missing path")
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"unix", "a\nb", []string{"a", "b"}},
		{"windows", "a\r\nb\r\n", []string{"a", "b", ""}},
		{"single", "only", []string{"only"}},
		{"empty", "", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitLines(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitLines(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
