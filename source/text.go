package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// TextSource reads a plain-text program rendering. Pages are separated by
// form-feed characters, the convention used by pdftotext and friends.
type TextSource struct {
	name  string
	pages [][]string
}

// OpenText opens a plain-text program file.
func OpenText(path string) (*TextSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return NewTextSource(filepath.Base(path), f)
}

// NewTextSource reads a plain-text program from r. The name labels the
// input in reports.
func NewTextSource(name string, r io.Reader) (*TextSource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoPages
	}

	rawPages := strings.Split(text, "\f")
	pages := make([][]string, len(rawPages))
	for i, p := range rawPages {
		pages[i] = splitLines(p)
	}

	return &TextSource{name: name, pages: pages}, nil
}

// PageCount returns the number of pages.
func (s *TextSource) PageCount() int {
	return len(s.pages)
}

// Lines returns the lines of the given page (1-based).
func (s *TextSource) Lines(page int) ([]string, error) {
	if page < 1 || page > len(s.pages) {
		return nil, fmt.Errorf("page %d out of range [1, %d]", page, len(s.pages))
	}
	return s.pages[page-1], nil
}

// Name returns the input label.
func (s *TextSource) Name() string {
	return s.name
}

// Close is a no-op; the whole document is held in memory.
func (s *TextSource) Close() error {
	return nil
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// decodeText converts raw program bytes to a UTF-8 string. A byte order
// mark wins; otherwise valid UTF-8 passes through and anything else is
// treated as Windows-1252, the usual encoding of legacy program exports.
func decodeText(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return string(data[len(bomUTF8):]), nil

	case bytes.HasPrefix(data, bomUTF16BE), bytes.HasPrefix(data, bomUTF16LE):
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		decoded, _, err := transform.Bytes(decoder, data)
		if err != nil {
			return "", fmt.Errorf("decoding UTF-16: %w", err)
		}
		return string(decoded), nil

	case utf8.Valid(data):
		return string(data), nil

	default:
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return "", fmt.Errorf("decoding Windows-1252: %w", err)
		}
		return string(decoded), nil
	}
}
