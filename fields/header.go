package fields

import (
	"regexp"
	"strings"

	"github.com/cobrasuicida/srf2025-scraper/scan"
)

var (
	contributionCodeRe = regexp.MustCompile(`^([A-Z]{2,5}\d{1,3})\b\s*(.*)$`)
	sessionHeaderRe    = regexp.MustCompile(`^([A-Z]{2,4})\s*(?:[—–]\s*|[-:]\s+)(\S.*)$`)
	bareSessionCodeRe  = regexp.MustCompile(`^([A-Z]{2,4})$`)
)

// knownTypes is the presentation-kind vocabulary, longest phrases first so
// prefix matching is unambiguous.
var knownTypes = []string{
	"Invited Oral Presentation",
	"Contributed Oral Presentation",
	"Invited Oral",
	"Contributed Oral",
	"Oral Presentation",
	"Invited Talk",
	"Student Poster",
	"Hot Topic",
	"Tutorial",
	"Keynote",
	"Poster",
	"Talk",
}

// IsKnownType reports whether the phrase is in the presentation-kind
// vocabulary (case-insensitive).
func IsKnownType(phrase string) bool {
	for _, t := range knownTypes {
		if strings.EqualFold(phrase, t) {
			return true
		}
	}
	return false
}

// SessionHeader parses a session-header line into (id, name). A header with
// a name part is (id, name, matched); a bare code is (code, "", fallback),
// and the caller fills the name from its session table; a header with no
// parsable code is ("", "", fallback).
func SessionHeader(line string) (id, name string, conf Confidence) {
	text := strings.TrimSpace(line)
	if m := sessionHeaderRe.FindStringSubmatch(text); m != nil {
		return m[1], normalize(m[2]), ConfidenceMatched
	}
	if m := bareSessionCodeRe.FindStringSubmatch(text); m != nil {
		return m[1], "", ConfidenceFallback
	}
	return "", "", ConfidenceFallback
}

// Code extracts the contribution code: a labeled "Contribution code:" line
// takes precedence over the header's leading token.
func Code(block *scan.ContributionBlock) (string, Confidence) {
	if labeled := labeledValue(block, "Contribution code"); labeled != "" {
		return labeled, ConfidenceMatched
	}
	if code, _, _ := splitHeader(block.Header.Text); code != "" {
		return code, ConfidenceMatched
	}
	return "", ConfidenceFallback
}

// Type extracts the presentation kind. A labeled "Type:" line takes
// precedence; otherwise the header's descriptive phrase is used, kept
// verbatim when it is not in the vocabulary.
func Type(block *scan.ContributionBlock) (string, Confidence) {
	if labeled := labeledValue(block, "Type"); labeled != "" {
		return labeled, ConfidenceMatched
	}
	_, phrase, _ := splitHeader(block.Header.Text)
	if phrase == "" {
		return "", ConfidenceFallback
	}
	if IsKnownType(phrase) {
		return phrase, ConfidenceMatched
	}
	return phrase, ConfidenceFallback
}

// Title extracts the contribution title: the remainder of the header line
// after code and type. When the header carries no title, the first
// substantial body line (longer than 10 characters, not a URL) is used.
func Title(block *scan.ContributionBlock) (string, Confidence) {
	if _, _, title := splitHeader(block.Header.Text); title != "" {
		return title, ConfidenceMatched
	}
	for _, line := range block.Body {
		if line.Tag != scan.TagBodyText {
			continue
		}
		text := normalize(line.Text)
		if len(text) > 10 && !strings.HasPrefix(text, "http") {
			return text, ConfidenceFallback
		}
	}
	return "", ConfidenceFallback
}

// splitHeader parses a contribution-header line into (code, phrase, title).
// The remainder after the code token splits at the first separator (a
// spaced dash, an em dash, or a spaced colon) into the descriptive phrase
// and the title. Without a separator the whole remainder is the phrase and
// the title is left for the body fallback, except when the remainder opens
// with a vocabulary phrase, in which case the rest is the title.
func splitHeader(header string) (code, phrase, title string) {
	text := strings.TrimSpace(header)
	m := contributionCodeRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", ""
	}
	code = m[1]
	rest := strings.TrimSpace(m[2])
	if rest == "" {
		return code, "", ""
	}

	if left, right, ok := splitSeparator(rest); ok {
		return code, normalize(left), normalize(right)
	}

	for _, t := range knownTypes {
		cut, ok := strings.CutPrefix(rest, t)
		if !ok || (cut != "" && !strings.HasPrefix(cut, " ")) {
			continue
		}
		if trimmed := strings.TrimSpace(cut); trimmed != "" {
			return code, t, normalize(trimmed)
		}
		return code, t, ""
	}
	return code, normalize(rest), ""
}

// splitSeparator splits at the first header separator. Unspaced hyphens and
// en dashes stay intact so hyphenated and range-bearing titles survive.
func splitSeparator(s string) (left, right string, ok bool) {
	seps := []string{" — ", " – ", " - ", "—", ": "}
	best := -1
	width := 0
	for _, sep := range seps {
		if i := strings.Index(s, sep); i >= 0 && (best < 0 || i < best) {
			best = i
			width = len(sep)
		}
	}
	if best < 0 {
		return "", "", false
	}
	return s[:best], s[best+width:], true
}
