package fields

import (
	"strings"
	"testing"

	"github.com/cobrasuicida/srf2025-scraper/scan"
)

// ============================================================================
// Schedule Tests
// ============================================================================

func TestSchedule(t *testing.T) {
	t.Run("matched", func(t *testing.T) {
		block := testBlock("MOA01 Invited Oral Presentation — Example Title",
			tagged(scan.TagFieldLine, "Monday, September 22, 2025 8:30 AM"),
		)
		got, conf := Schedule(block)
		if got != "Monday, September 22, 2025 8:30 AM" {
			t.Errorf("expected schedule, got %q", got)
		}
		if conf != ConfidenceMatched {
			t.Errorf("expected matched confidence, got %v", conf)
		}
	})

	t.Run("truncated before parenthetical", func(t *testing.T) {
		block := testBlock("MOA01 Talk — Title",
			tagged(scan.TagFieldLine, "Monday, September 22, 2025 8:30 AM (20 minutes)"),
		)
		got, _ := Schedule(block)
		if got != "Monday, September 22, 2025 8:30 AM" {
			t.Errorf("expected truncated schedule, got %q", got)
		}
	})

	t.Run("first of several field lines", func(t *testing.T) {
		block := testBlock("MOA01 Talk — Title",
			tagged(scan.TagFieldLine, "Type: Talk"),
			tagged(scan.TagFieldLine, "Monday, September 22, 2025 8:30 AM"),
			tagged(scan.TagFieldLine, "Tuesday, September 23, 2025 9:00 AM"),
		)
		got, _ := Schedule(block)
		if got != "Monday, September 22, 2025 8:30 AM" {
			t.Errorf("expected first schedule line, got %q", got)
		}
	})

	t.Run("body text never matches", func(t *testing.T) {
		block := testBlock("MOA01 Talk — Title",
			tagged(scan.TagBodyText, "Monday, September 22, 2025 8:30 AM"),
		)
		got, conf := Schedule(block)
		if got != "" {
			t.Errorf("expected empty schedule, got %q", got)
		}
		if conf != ConfidenceFallback {
			t.Errorf("expected fallback confidence, got %v", conf)
		}
	})

	t.Run("missing", func(t *testing.T) {
		block := testBlock("MOA01 Talk — Title")
		got, conf := Schedule(block)
		if got != "" {
			t.Errorf("expected empty schedule, got %q", got)
		}
		if conf != ConfidenceFallback {
			t.Errorf("expected fallback confidence, got %v", conf)
		}
	})
}

// ============================================================================
// Abstract Tests
// ============================================================================

func TestAbstract(t *testing.T) {
	t.Run("joins lines into one paragraph", func(t *testing.T) {
		block := testBlock("MOA01 Invited Oral Presentation — Example Title",
			tagged(scan.TagFieldLine, "Monday, September 22, 2025 8:30 AM"),
			tagged(scan.TagBodyText, "We report on the commissioning of the new"),
			tagged(scan.TagBodyText, "superconducting photoinjector at high gradient."),
		)
		got, conf := Abstract(block)
		want := "We report on the commissioning of the new superconducting photoinjector at high gradient."
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
		if conf != ConfidenceMatched {
			t.Errorf("expected matched confidence, got %v", conf)
		}
	})

	t.Run("blank line becomes paragraph break", func(t *testing.T) {
		block := testBlock("MOA01 Talk — Title",
			tagged(scan.TagBodyText, "First paragraph describing the experiment setup."),
			tagged(scan.TagBodyText, ""),
			tagged(scan.TagBodyText, "Second paragraph describing the measured results."),
		)
		got, _ := Abstract(block)
		want := "First paragraph describing the experiment setup.\n\nSecond paragraph describing the measured results."
		if got != want {
			t.Errorf("expected paragraph break, got %q", got)
		}
	})

	t.Run("short leading lines skipped", func(t *testing.T) {
		block := testBlock("MOA01 Talk — Title",
			tagged(scan.TagBodyText, "Room A"),
			tagged(scan.TagBodyText, "The abstract starts with this substantial line."),
		)
		got, _ := Abstract(block)
		if strings.Contains(got, "Room A") {
			t.Errorf("expected short leading line to be skipped, got %q", got)
		}
		if !strings.HasPrefix(got, "The abstract starts") {
			t.Errorf("expected abstract to start at substantial line, got %q", got)
		}
	})

	t.Run("trivial continuation lines skipped", func(t *testing.T) {
		block := testBlock("MOA01 Talk — Title",
			tagged(scan.TagBodyText, "The abstract starts with this substantial line."),
			tagged(scan.TagBodyText, "42"),
			tagged(scan.TagBodyText, "and continues here."),
		)
		got, _ := Abstract(block)
		want := "The abstract starts with this substantial line. and continues here."
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("stops at footnote marker", func(t *testing.T) {
		block := testBlock("MOA01 Talk — Title",
			tagged(scan.TagBodyText, "The abstract body text before the attribution."),
			tagged(scan.TagFootnoteMarker, "Author: DOE, Jane"),
			tagged(scan.TagBodyText, "This trailing line belongs to the footnotes."),
		)
		got, _ := Abstract(block)
		if strings.Contains(got, "trailing line") {
			t.Errorf("expected abstract to stop at footnote marker, got %q", got)
		}
	})

	t.Run("field lines skipped", func(t *testing.T) {
		block := testBlock("MOA01 Talk — Title",
			tagged(scan.TagBodyText, "The abstract body text before the schedule."),
			tagged(scan.TagFieldLine, "Monday, September 22, 2025 8:30 AM"),
			tagged(scan.TagBodyText, "The abstract body text after the schedule."),
		)
		got, _ := Abstract(block)
		if strings.Contains(got, "8:30 AM") {
			t.Errorf("expected field line to be skipped, got %q", got)
		}
		if !strings.Contains(got, "after the schedule") {
			t.Errorf("expected abstract to continue past field line, got %q", got)
		}
	})

	t.Run("missing", func(t *testing.T) {
		block := testBlock("MOA01 Talk — Title",
			tagged(scan.TagFieldLine, "Monday, September 22, 2025 8:30 AM"),
		)
		got, conf := Abstract(block)
		if got != "" {
			t.Errorf("expected empty abstract, got %q", got)
		}
		if conf != ConfidenceFallback {
			t.Errorf("expected fallback confidence, got %v", conf)
		}
	})
}

// ============================================================================
// Footnotes Tests
// ============================================================================

func TestFootnotes(t *testing.T) {
	t.Run("author line kept whole", func(t *testing.T) {
		block := testBlock("MOA01 Invited Oral Presentation — Example Title",
			tagged(scan.TagBodyText, "The abstract body text before the attribution."),
			tagged(scan.TagFootnoteMarker, "Author: DOE, Jane"),
		)
		got, conf := Footnotes(block)
		if !strings.Contains(got, "DOE, Jane") {
			t.Errorf("expected footnotes to contain author, got %q", got)
		}
		if conf != ConfidenceMatched {
			t.Errorf("expected matched confidence, got %v", conf)
		}
	})

	t.Run("bare label line dropped", func(t *testing.T) {
		block := testBlock("MOA01 Talk — Title",
			tagged(scan.TagFootnoteMarker, "Footnotes"),
			tagged(scan.TagBodyText, "Work supported by the national laboratory program."),
		)
		got, _ := Footnotes(block)
		want := "Work supported by the national laboratory program."
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("label prefix stripped", func(t *testing.T) {
		block := testBlock("MOA01 Talk — Title",
			tagged(scan.TagFootnoteMarker, "Footnotes: Work supported by the laboratory."),
		)
		got, _ := Footnotes(block)
		want := "Work supported by the laboratory."
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("runs to end of block", func(t *testing.T) {
		block := testBlock("MOA01 Talk — Title",
			tagged(scan.TagBodyText, "The abstract body text before the attribution."),
			tagged(scan.TagFootnoteMarker, "Author: DOE, Jane"),
			tagged(scan.TagBodyText, "co-authored with ROE, Richard"),
			tagged(scan.TagFootnoteMarker, "Funding Agency Grant 12-345"),
		)
		got, _ := Footnotes(block)
		want := "Author: DOE, Jane co-authored with ROE, Richard Funding Agency Grant 12-345"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("no marker means empty without error", func(t *testing.T) {
		block := testBlock("MOA01 Talk — Title",
			tagged(scan.TagBodyText, "An abstract with no attribution block at all."),
		)
		got, conf := Footnotes(block)
		if got != "" {
			t.Errorf("expected empty footnotes, got %q", got)
		}
		if conf != ConfidenceFallback {
			t.Errorf("expected fallback confidence, got %v", conf)
		}
	})
}
