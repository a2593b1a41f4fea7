package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// HTMLSource reads an HTML program document. Block-level elements become
// lines; <hr> elements and elements carrying a page-break class start a new
// page. A document without page breaks is a single page.
type HTMLSource struct {
	name  string
	title string
	pages [][]string
}

// OpenHTML opens an HTML program file.
func OpenHTML(path string) (*HTMLSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return NewHTMLSource(filepath.Base(path), f)
}

// NewHTMLSource parses an HTML program from r. The name labels the input in
// reports.
func NewHTMLSource(name string, r io.Reader) (*HTMLSource, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	s := &HTMLSource{name: name, title: documentTitle(doc)}

	body := findElement(doc, "body")
	if body == nil {
		body = doc
	}

	acc := &lineAccumulator{}
	s.linearize(body, acc)
	s.pages = acc.finish()

	if len(s.pages) == 0 {
		return nil, ErrNoPages
	}

	return s, nil
}

// PageCount returns the number of pages.
func (s *HTMLSource) PageCount() int {
	return len(s.pages)
}

// Lines returns the lines of the given page (1-based).
func (s *HTMLSource) Lines(page int) ([]string, error) {
	if page < 1 || page > len(s.pages) {
		return nil, fmt.Errorf("page %d out of range [1, %d]", page, len(s.pages))
	}
	return s.pages[page-1], nil
}

// Name returns the input label.
func (s *HTMLSource) Name() string {
	return s.name
}

// Title returns the content of the document's <title> element, if any.
func (s *HTMLSource) Title() string {
	return s.title
}

// Close is a no-op; the whole document is held in memory.
func (s *HTMLSource) Close() error {
	return nil
}

// blockTags lists the elements that terminate the pending line on both
// sides.
var blockTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "li": true, "tr": true, "blockquote": true, "pre": true,
	"div": true, "section": true, "article": true, "header": true,
	"footer": true, "main": true, "nav": true, "aside": true,
}

// linearize recursively flattens DOM nodes into lines.
func (s *HTMLSource) linearize(n *html.Node, acc *lineAccumulator) {
	switch n.Type {
	case html.TextNode:
		acc.text(n.Data)
		return

	case html.ElementNode:
		if skipElement(n.Data) {
			return
		}
		if isPageBreak(n) {
			acc.endPage()
			// A page-break element may still carry content.
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				s.linearize(c, acc)
			}
			return
		}
		if n.Data == "br" {
			acc.endLine()
			return
		}
		if n.Data == "td" || n.Data == "th" {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				s.linearize(c, acc)
			}
			// Keep adjacent cells from running together.
			acc.text(" ")
			return
		}
		if blockTags[n.Data] {
			acc.endLine()
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				s.linearize(c, acc)
			}
			acc.endLine()
			// Paragraph boundaries survive as blank lines, the way a text
			// rendering of the document would show them.
			if n.Data == "p" || n.Data == "blockquote" {
				acc.blankLine()
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		s.linearize(c, acc)
	}
}

// lineAccumulator builds pages of lines as the DOM is walked.
type lineAccumulator struct {
	pages   [][]string
	current []string
	line    strings.Builder
}

func (a *lineAccumulator) text(s string) {
	a.line.WriteString(s)
}

// endLine terminates the pending line, collapsing runs of whitespace.
func (a *lineAccumulator) endLine() {
	text := strings.Join(strings.Fields(a.line.String()), " ")
	a.line.Reset()
	if text != "" {
		a.current = append(a.current, text)
	}
}

// blankLine records a paragraph separator.
func (a *lineAccumulator) blankLine() {
	if len(a.current) > 0 && a.current[len(a.current)-1] != "" {
		a.current = append(a.current, "")
	}
}

// endPage terminates the current page.
func (a *lineAccumulator) endPage() {
	a.endLine()
	a.pages = append(a.pages, a.current)
	a.current = nil
}

// finish flushes pending state and returns all pages that carry content.
func (a *lineAccumulator) finish() [][]string {
	a.endPage()

	kept := make([][]string, 0, len(a.pages))
	for _, p := range a.pages {
		if hasContent(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

// hasContent reports whether any line on the page is non-blank.
func hasContent(lines []string) bool {
	for _, line := range lines {
		if line != "" {
			return true
		}
	}
	return false
}

// isPageBreak reports whether the element marks a page boundary: an <hr>,
// or any element whose class list contains page-break or pagebreak.
func isPageBreak(n *html.Node) bool {
	if n.Data == "hr" {
		return true
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, class := range strings.Fields(attr.Val) {
			switch strings.ToLower(class) {
			case "page-break", "pagebreak":
				return true
			}
		}
	}
	return false
}

// skipElement returns true if the element should be skipped during content
// extraction.
func skipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed", "head":
		return true
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// documentTitle returns the content of the document's <title> element.
func documentTitle(doc *html.Node) string {
	head := findElement(doc, "head")
	if head == nil {
		return ""
	}
	title := findElement(head, "title")
	if title == nil {
		return ""
	}

	var b strings.Builder
	for c := title.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}
