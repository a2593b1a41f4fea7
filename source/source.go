// Package source provides page line sources for conference program
// documents.
//
// A Source yields the raw text lines of a program one page at a time. The
// extraction pipeline consumes only this interface, so programs can come
// from plain-text renderings, HTML documents, or directories of per-page
// files without the pipeline knowing the difference.
package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cobrasuicida/srf2025-scraper/format"
)

// ErrNoPages is returned when an input contains no program pages at all.
var ErrNoPages = errors.New("source contains no pages")

// Source yields the text lines of a program document page by page. Pages
// are numbered from 1. Implementations are not safe for concurrent use.
type Source interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// Lines returns the text lines of the given page (1-based).
	Lines(page int) ([]string, error)

	// Name returns a short label for the input, used in reports.
	Name() string

	// Close releases any resources held by the source.
	Close() error
}

// Open opens a program input, choosing the implementation from the detected
// format: directories become a DirSource, HTML documents an HTMLSource, and
// anything that looks like plain text a TextSource.
func Open(path string) (Source, error) {
	f, err := format.DetectPath(path)
	if err != nil {
		return nil, fmt.Errorf("detecting format: %w", err)
	}

	switch f {
	case format.Dir:
		return OpenDir(path)
	case format.HTML:
		return OpenHTML(path)
	case format.Text:
		return OpenText(path)
	default:
		return nil, fmt.Errorf("unsupported input format for %s", path)
	}
}

// splitLines splits decoded page text into lines, dropping carriage
// returns.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}
