package scan

import (
	"regexp"
	"strings"
	"unicode"
)

// Tag labels one line of program text with its structural role.
type Tag int

const (
	// TagBodyText is abstract prose or any line that matches no structural
	// pattern. It is the zero value: unclassifiable lines degrade to body
	// text rather than being dropped.
	TagBodyText Tag = iota

	// TagSessionHeader introduces a session ("MOA — Monday Opening and
	// Awards", or a bare session code atop a continuation page).
	TagSessionHeader

	// TagContributionHeader introduces a contribution ("MOA01 Invited Oral
	// Presentation — Example Title").
	TagContributionHeader

	// TagFieldLine is a recognized metadata line: a schedule line
	// ("Monday, September 22, 2025 8:30 AM") or a labeled field
	// ("Contribution code: MOA01", "Type: Poster").
	TagFieldLine

	// TagFootnoteMarker starts the author/presenter attribution block
	// ("Footnotes", "Author: DOE, Jane", "Funding ...").
	TagFootnoteMarker
)

// String returns a human-readable representation of the tag.
func (t Tag) String() string {
	switch t {
	case TagBodyText:
		return "body-text"
	case TagSessionHeader:
		return "session-header"
	case TagContributionHeader:
		return "contribution-header"
	case TagFieldLine:
		return "field-line"
	case TagFootnoteMarker:
		return "footnote-marker"
	default:
		return "unknown"
	}
}

// ClassifierConfig holds the patterns that drive line classification.
type ClassifierConfig struct {
	// ContributionCode matches a contribution-code-shaped token at the
	// start of a line (captured in group 1), e.g. "MOA01", "THPB077".
	ContributionCode *regexp.Regexp

	// SessionHeader matches a session code followed by a separator and the
	// session name, e.g. "MOA — Monday Opening and Awards".
	SessionHeader *regexp.Regexp

	// BareSessionCode matches a line that is nothing but a session code
	// ("MOP"), as printed atop continuation pages.
	BareSessionCode *regexp.Regexp

	// KnownSessionCodes, when non-nil, restricts bare-code headers to the
	// listed codes. Keeps short all-caps words inside footnote blocks
	// ("DOE") from opening a session. Full headers (code plus name) are
	// not affected.
	KnownSessionCodes map[string]bool

	// Schedule matches the source's schedule format
	// ("Monday, September 22, 2025 8:30 AM ...").
	Schedule *regexp.Regexp

	// LabeledField matches labeled metadata lines ("Contribution ID: 123",
	// "Contribution code: MOA01", "Type: Poster").
	LabeledField *regexp.Regexp

	// FootnoteMarker matches the start of the attribution block.
	FootnoteMarker *regexp.Regexp

	// AllCapsHeadings additionally treats short all-caps lines without a
	// code token as session headers. Off by default: emphasized lines
	// inside abstracts ("RESULTS") would otherwise truncate sessions, and
	// SRF-style programs always carry a code in the header.
	AllCapsHeadings bool

	// MaxHeadingLen is the maximum length for an all-caps heading line.
	MaxHeadingLen int
}

// DefaultClassifierConfig returns the patterns for SRF-style program
// documents.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		ContributionCode: regexp.MustCompile(`^([A-Z]{2,5}\d{1,3})\b`),
		SessionHeader:    regexp.MustCompile(`^([A-Z]{2,4})\s*(?:[—–]\s*|[-:]\s+)(\S.*)$`),
		BareSessionCode:  regexp.MustCompile(`^([A-Z]{2,4})$`),
		Schedule:         regexp.MustCompile(`^[A-Z][a-z]+day,\s+[A-Z][a-z]+\s+\d{1,2},\s+\d{4}\s+\d{1,2}:\d{2}\s*[AP]M`),
		LabeledField:     regexp.MustCompile(`^(?:Contribution ID|Contribution code|Type)\s*:`),
		FootnoteMarker:   regexp.MustCompile(`^(?:Footnotes?\b|Funding\b|Authors?\s*:|Presenters?\s*:|Speakers?\s*:)`),
		AllCapsHeadings:  false,
		MaxHeadingLen:    60,
	}
}

// Classifier assigns structural tags to program lines.
type Classifier struct {
	config ClassifierConfig
}

// NewClassifier creates a classifier with the default configuration.
func NewClassifier() *Classifier {
	return &Classifier{config: DefaultClassifierConfig()}
}

// NewClassifierWithConfig creates a classifier with a custom configuration.
func NewClassifierWithConfig(config ClassifierConfig) *Classifier {
	return &Classifier{config: config}
}

// Classify tags one line given the tag of the immediately preceding line.
// It is a pure function of (line, prior) and never fails; lines that match
// no structural pattern are TagBodyText.
//
// A line that could read as either header kind is resolved in favor of
// TagContributionHeader when it carries a code-shaped token (letters followed
// by digits); session codes are purely alphabetic, so the two patterns are
// disjoint. The prior tag suppresses header detection directly after a
// contribution header, where a fully capitalized line is a wrapped title,
// not a new session.
func (c *Classifier) Classify(line string, prior Tag) Tag {
	text := strings.TrimSpace(line)
	if text == "" {
		return TagBodyText
	}

	if c.config.LabeledField.MatchString(text) {
		return TagFieldLine
	}

	if m := c.config.ContributionCode.FindStringSubmatch(text); m != nil {
		if contributionRemainderOK(text[len(m[1]):]) {
			return TagContributionHeader
		}
	}

	if c.config.SessionHeader.MatchString(text) {
		return TagSessionHeader
	}

	if c.config.FootnoteMarker.MatchString(text) {
		return TagFootnoteMarker
	}

	if c.config.Schedule.MatchString(text) {
		return TagFieldLine
	}

	if prior != TagContributionHeader {
		if m := c.config.BareSessionCode.FindStringSubmatch(text); m != nil {
			if c.config.KnownSessionCodes == nil || c.config.KnownSessionCodes[m[1]] {
				return TagSessionHeader
			}
			return TagBodyText
		}
		if c.config.AllCapsHeadings && len(text) <= c.config.MaxHeadingLen && isAllCaps(text) {
			return TagSessionHeader
		}
	}

	return TagBodyText
}

// SessionCode returns the session code token of a session-header line, or ""
// when the line carries none (all-caps heading without a code).
func (c *Classifier) SessionCode(line string) string {
	text := strings.TrimSpace(line)
	if m := c.config.SessionHeader.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := c.config.BareSessionCode.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ContributionCode returns the code token of a contribution-header line,
// or "" when the line carries none.
func (c *Classifier) ContributionCode(line string) string {
	text := strings.TrimSpace(line)
	if m := c.config.ContributionCode.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// contributionRemainderOK reports whether the text after a code token looks
// like a header remainder rather than prose that happens to start with a
// code-shaped word ("RF12 cavities show..."). The remainder must be empty or
// open with an uppercase letter, a digit, a quote, or a separator.
func contributionRemainderOK(rest string) bool {
	rest = strings.TrimLeft(rest, " \t")
	if rest == "" {
		return true
	}
	r := []rune(rest)[0]
	switch {
	case unicode.IsUpper(r) || unicode.IsDigit(r):
		return true
	case r == '"' || r == '\'' || r == '“' || r == '‘':
		return true
	case r == '—' || r == '–' || r == '-' || r == ':':
		return true
	}
	return false
}

// isAllCaps reports whether the text is at least 90% uppercase letters,
// with a minimum of three letters and no digits.
func isAllCaps(text string) bool {
	upper, lower := 0, 0
	for _, r := range text {
		switch {
		case unicode.IsDigit(r):
			return false
		case unicode.IsUpper(r):
			upper++
		case unicode.IsLower(r):
			lower++
		}
	}
	if upper+lower < 3 {
		return false
	}
	return lower == 0 || float64(upper)/float64(upper+lower) > 0.9
}
