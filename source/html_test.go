package source

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// ============================================================================
// Linearization
// ============================================================================

func TestHTMLSource_SinglePage(t *testing.T) {
	input := `<html><head><title>SRF2025 Program</title></head><body>
<h1>MOA — Monday Opening and Awards</h1>
<p>MOA01 Invited Oral Presentation — Tuning Systems</p>
</body></html>`

	src, err := NewHTMLSource("program.html", strings.NewReader(input))
	if err != nil {
		t.Fatalf("NewHTMLSource() error = %v", err)
	}
	defer src.Close()

	if got := src.PageCount(); got != 1 {
		t.Fatalf("PageCount() = %d, want 1", got)
	}
	if got := src.Title(); got != "SRF2025 Program" {
		t.Errorf("Title() = %q, want %q", got, "SRF2025 Program")
	}

	lines, err := src.Lines(1)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"MOA — Monday Opening and Awards",
		"MOA01 Invited Oral Presentation — Tuning Systems",
		"",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Lines(1) = %q, want %q", lines, want)
	}
}

func TestHTMLSource_PageBreaks(t *testing.T) {
	input := `<html><body>
<p>Title page</p>
<hr>
<p>MOA — Monday Opening and Awards</p>
<div class="page-break"></div>
<p>MOP — Monday Poster Session</p>
</body></html>`

	src, err := NewHTMLSource("program.html", strings.NewReader(input))
	if err != nil {
		t.Fatalf("NewHTMLSource() error = %v", err)
	}

	if got := src.PageCount(); got != 3 {
		t.Fatalf("PageCount() = %d, want 3", got)
	}

	lines, err := src.Lines(2)
	if err != nil {
		t.Fatal(err)
	}
	if lines[0] != "MOA — Monday Opening and Awards" {
		t.Errorf("page 2 line 0 = %q", lines[0])
	}

	lines, err = src.Lines(3)
	if err != nil {
		t.Fatal(err)
	}
	if lines[0] != "MOP — Monday Poster Session" {
		t.Errorf("page 3 line 0 = %q", lines[0])
	}
}

func TestHTMLSource_LineBreaks(t *testing.T) {
	input := `<html><body><p>first line<br>second line</p></body></html>`

	src, err := NewHTMLSource("program.html", strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	lines, err := src.Lines(1)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"first line", "second line", ""}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Lines(1) = %q, want %q", lines, want)
	}
}

func TestHTMLSource_InlineElementsJoined(t *testing.T) {
	input := `<html><body><p>MOA01 <b>Invited</b> <i>Oral</i> Presentation</p></body></html>`

	src, err := NewHTMLSource("program.html", strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	lines, err := src.Lines(1)
	if err != nil {
		t.Fatal(err)
	}
	if lines[0] != "MOA01 Invited Oral Presentation" {
		t.Errorf("line 0 = %q, inline formatting should not split lines", lines[0])
	}
}

func TestHTMLSource_TableRows(t *testing.T) {
	input := `<html><body><table>
<tr><td>MOA01</td><td>Invited Oral Presentation</td></tr>
<tr><td>MOA02</td><td>Contributed Oral</td></tr>
</table></body></html>`

	src, err := NewHTMLSource("program.html", strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	lines, err := src.Lines(1)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"MOA01 Invited Oral Presentation", "MOA02 Contributed Oral"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Lines(1) = %q, want %q", lines, want)
	}
}

func TestHTMLSource_SkipsScriptAndStyle(t *testing.T) {
	input := `<html><body>
<style>p { color: red; }</style>
<script>console.log("noise");</script>
<p>MOA — Monday Opening and Awards</p>
</body></html>`

	src, err := NewHTMLSource("program.html", strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	lines, err := src.Lines(1)
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range lines {
		if strings.Contains(line, "console.log") || strings.Contains(line, "color: red") {
			t.Errorf("script/style content leaked into lines: %q", line)
		}
	}
}

func TestHTMLSource_ParagraphSeparators(t *testing.T) {
	input := `<html><body><p>First paragraph of the abstract.</p><p>Second paragraph.</p></body></html>`

	src, err := NewHTMLSource("program.html", strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	lines, err := src.Lines(1)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"First paragraph of the abstract.", "", "Second paragraph.", ""}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Lines(1) = %q, want %q", lines, want)
	}
}

func TestHTMLSource_WhitespaceCollapsed(t *testing.T) {
	input := "<html><body><p>MOA   —\n\t Monday   Opening</p></body></html>"

	src, err := NewHTMLSource("program.html", strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	lines, err := src.Lines(1)
	if err != nil {
		t.Fatal(err)
	}
	if lines[0] != "MOA — Monday Opening" {
		t.Errorf("line 0 = %q, want collapsed whitespace", lines[0])
	}
}

func TestHTMLSource_Empty(t *testing.T) {
	if _, err := NewHTMLSource("empty.html", strings.NewReader("<html><body></body></html>")); !errors.Is(err, ErrNoPages) {
		t.Errorf("empty document error = %v, want ErrNoPages", err)
	}
}

func TestHTMLSource_PageOutOfRange(t *testing.T) {
	src, err := NewHTMLSource("program.html", strings.NewReader("<html><body><p>content</p></body></html>"))
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
