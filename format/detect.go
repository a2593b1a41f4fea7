// Package format provides input format detection for the scraper.
package format

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// Text indicates a plain-text program with form-feed page breaks.
	Text
	// HTML indicates an HTML program document.
	HTML
	// Dir indicates a directory of per-page files.
	Dir
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case Text:
		return "Text"
	case HTML:
		return "HTML"
	case Dir:
		return "Dir"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case Text:
		return ".txt"
	case HTML:
		return ".html"
	default:
		return ""
	}
}

// Detect determines the format from the filename extension alone. Directories
// cannot be recognized by name; use [DetectPath] when the path exists on
// disk.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".text", ".asc":
		return Text
	case ".html", ".htm", ".xhtml":
		return HTML
	default:
		return Unknown
	}
}

// DetectPath determines the format of an existing path: directories are Dir,
// files are detected by extension first and by content sniffing as a
// fallback.
func DetectPath(path string) (Format, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Unknown, err
	}
	if info.IsDir() {
		return Dir, nil
	}
	if f := Detect(path); f != Unknown {
		return f, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer file.Close()

	return DetectFromReader(file, info.Size())
}

// DetectFromMagic sniffs content to determine the format. HTML is recognized
// by its document markers; anything else that looks like text (no NUL bytes)
// is treated as plain text.
func DetectFromMagic(data []byte) Format {
	if len(data) == 0 {
		return Unknown
	}
	if detectHTMLMagic(data) {
		return HTML
	}
	if bytes.IndexByte(data, 0) < 0 {
		return Text
	}
	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}
	data = data[start:]

	upper := strings.ToUpper(string(data))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML.
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper[:min(500, len(upper))], "<HTML") {
		return true
	}

	return false
}

// DetectFromReader sniffs the leading bytes of the content to determine the
// format.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	if size < int64(len(magic)) {
		magic = magic[:size]
	}
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}
