package fields

import (
	"regexp"
	"strings"

	"github.com/cobrasuicida/srf2025-scraper/scan"
)

var scheduleRe = regexp.MustCompile(`^[A-Z][a-z]+day,\s+[A-Z][a-z]+\s+\d{1,2},\s+\d{4}\s+\d{1,2}:\d{2}\s*[AP]M`)

// Abstract prose must clear these lengths: the first line of the abstract
// has to be substantial, continuation lines only have to be non-trivial.
const (
	abstractStartLen = 20
	abstractContLen  = 5
)

// Schedule extracts the first schedule-shaped field line, truncated before a
// trailing parenthetical (time-zone annotations), kept as an opaque string.
func Schedule(block *scan.ContributionBlock) (string, Confidence) {
	for _, line := range block.Body {
		if line.Tag != scan.TagFieldLine {
			continue
		}
		text := strings.TrimSpace(line.Text)
		if !scheduleRe.MatchString(text) {
			continue
		}
		if i := strings.Index(text, "("); i >= 0 {
			text = text[:i]
		}
		return normalize(text), ConfidenceMatched
	}
	return "", ConfidenceFallback
}

// Abstract extracts the abstract prose: body-text lines between the header
// and the first footnote marker, whitespace-joined, with paragraph breaks
// preserved where blank lines occurred. Prose starts at the first line
// longer than 20 characters and continues with lines longer than 5.
func Abstract(block *scan.ContributionBlock) (string, Confidence) {
	var paragraphs []string
	var current []string
	started := false

	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}
	}

	for _, line := range block.Body {
		if line.Tag == scan.TagFootnoteMarker {
			break
		}
		if line.Tag != scan.TagBodyText {
			continue
		}
		text := normalize(line.Text)
		if text == "" {
			if started {
				flush()
			}
			continue
		}
		if !started {
			if len(text) <= abstractStartLen {
				continue
			}
			started = true
		} else if len(text) <= abstractContLen {
			continue
		}
		current = append(current, text)
	}
	flush()

	if len(paragraphs) == 0 {
		return "", ConfidenceFallback
	}
	return strings.Join(paragraphs, "\n\n"), ConfidenceMatched
}

// Footnotes extracts the attribution block: the contiguous run of lines from
// the first footnote marker to the end of the block, concatenated into a
// single string. The bare "Footnotes" label itself is dropped; marker lines
// carrying content ("Author: DOE, Jane") are kept whole.
func Footnotes(block *scan.ContributionBlock) (string, Confidence) {
	start := -1
	for i, line := range block.Body {
		if line.Tag == scan.TagFootnoteMarker {
			start = i
			break
		}
	}
	if start < 0 {
		return "", ConfidenceFallback
	}

	var parts []string
	for _, line := range block.Body[start:] {
		text := normalize(line.Text)
		if text == "" {
			continue
		}
		if rest, ok := cutFootnotesLabel(text); ok {
			if rest == "" {
				continue
			}
			text = rest
		}
		parts = append(parts, text)
	}
	if len(parts) == 0 {
		return "", ConfidenceFallback
	}
	return strings.Join(parts, " "), ConfidenceMatched
}

// cutFootnotesLabel strips a leading "Footnote"/"Footnotes" label word,
// with an optional trailing colon, from the line.
func cutFootnotesLabel(text string) (string, bool) {
	for _, label := range []string{"Footnotes", "Footnote"} {
		rest, ok := strings.CutPrefix(text, label)
		if !ok {
			continue
		}
		if rest != "" && rest[0] != ':' && rest[0] != ' ' {
			continue
		}
		return strings.TrimLeft(rest, ": "), true
	}
	return text, false
}
