package scan

import "testing"

func TestTag_String(t *testing.T) {
	tests := []struct {
		tag  Tag
		want string
	}{
		{TagBodyText, "body-text"},
		{TagSessionHeader, "session-header"},
		{TagContributionHeader, "contribution-header"},
		{TagFieldLine, "field-line"},
		{TagFootnoteMarker, "footnote-marker"},
		{Tag(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tag.String(); got != tt.want {
				t.Errorf("Tag.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultClassifierConfig(t *testing.T) {
	config := DefaultClassifierConfig()

	if config.ContributionCode == nil || config.SessionHeader == nil {
		t.Fatal("default config is missing header patterns")
	}
	if config.AllCapsHeadings {
		t.Error("AllCapsHeadings should default to off")
	}
	if config.MaxHeadingLen != 60 {
		t.Errorf("MaxHeadingLen = %d, want 60", config.MaxHeadingLen)
	}
}

func TestClassify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name  string
		line  string
		prior Tag
		want  Tag
	}{
		{"session header em dash", "MOA — Monday Opening and Awards", TagBodyText, TagSessionHeader},
		{"session header en dash", "TUA – Tuesday Session A", TagBodyText, TagSessionHeader},
		{"session header hyphen", "WEP - Wednesday Poster Session", TagBodyText, TagSessionHeader},
		{"session header colon", "THA: Thursday Session A", TagBodyText, TagSessionHeader},
		{"session header unspaced em dash", "FRA—Friday Session A", TagBodyText, TagSessionHeader},
		{"bare session code", "MOP", TagBodyText, TagSessionHeader},
		{"bare code after contribution header is a wrapped title", "MOP", TagContributionHeader, TagBodyText},
		{"contribution header", "MOA01 Invited Oral Presentation — Example Title", TagSessionHeader, TagContributionHeader},
		{"contribution header long code", "THPB077 Poster — Cavity Processing", TagBodyText, TagContributionHeader},
		{"contribution header bare code", "MOA02", TagSessionHeader, TagContributionHeader},
		{"code-shaped word in prose stays body", "RF12 cavities show excellent gradients", TagBodyText, TagBodyText},
		{"schedule line", "Monday, September 22, 2025 8:30 AM (Europe/Berlin)", TagContributionHeader, TagFieldLine},
		{"labeled contribution id", "Contribution ID: 123", TagBodyText, TagFieldLine},
		{"labeled contribution code", "Contribution code: MOA01", TagBodyText, TagFieldLine},
		{"labeled type", "Type: Poster", TagBodyText, TagFieldLine},
		{"footnotes label", "Footnotes", TagBodyText, TagFootnoteMarker},
		{"author marker", "Author: DOE, Jane", TagBodyText, TagFootnoteMarker},
		{"authors marker", "Authors: DOE, Jane; ROE, Richard", TagBodyText, TagFootnoteMarker},
		{"presenter marker", "Presenter: ROE, Richard", TagBodyText, TagFootnoteMarker},
		{"funding marker", "Funding agency acknowledgement", TagBodyText, TagFootnoteMarker},
		{"abstract prose", "We report on the commissioning of the new injector.", TagBodyText, TagBodyText},
		{"blank line", "   ", TagBodyText, TagBodyText},
		{"empty line", "", TagFieldLine, TagBodyText},
		{"hyphenated token is not a session header", "TE-011 mode analysis", TagBodyText, TagBodyText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.line, tt.prior); got != tt.want {
				t.Errorf("Classify(%q, %v) = %v, want %v", tt.line, tt.prior, got, tt.want)
			}
		})
	}
}

func TestClassifyTieBreak(t *testing.T) {
	c := NewClassifier()

	// A code-bearing line is a contribution header even when fully
	// capitalized; session codes carry no digits, so the patterns never
	// truncate a session on a capitalized title line.
	got := c.Classify("MOA01 INVITED TALK — GRADIENTS", TagSessionHeader)
	if got != TagContributionHeader {
		t.Errorf("Classify(code-bearing caps line) = %v, want contribution-header", got)
	}
}

func TestClassifyKnownSessionCodes(t *testing.T) {
	config := DefaultClassifierConfig()
	config.KnownSessionCodes = map[string]bool{"MOP": true, "TUA": true}
	c := NewClassifierWithConfig(config)

	if got := c.Classify("MOP", TagBodyText); got != TagSessionHeader {
		t.Errorf("Classify(known bare code) = %v, want session-header", got)
	}
	// A bare surname inside a footnote block must not open a session.
	if got := c.Classify("DOE", TagBodyText); got != TagBodyText {
		t.Errorf("Classify(unknown bare code) = %v, want body-text", got)
	}
	// Full headers are not restricted by the known-code list.
	if got := c.Classify("XYZ — Some Unlisted Session", TagBodyText); got != TagSessionHeader {
		t.Errorf("Classify(full header with unlisted code) = %v, want session-header", got)
	}
}

func TestClassifyAllCapsHeadings(t *testing.T) {
	config := DefaultClassifierConfig()
	config.AllCapsHeadings = true
	c := NewClassifierWithConfig(config)

	if got := c.Classify("MONDAY POSTER SESSION", TagBodyText); got != TagSessionHeader {
		t.Errorf("Classify(all-caps heading) = %v, want session-header", got)
	}
	// Suppressed right after a contribution header: that is a wrapped title.
	if got := c.Classify("SUPERCONDUCTING GUN DESIGN", TagContributionHeader); got != TagBodyText {
		t.Errorf("Classify(caps after contribution header) = %v, want body-text", got)
	}
	// Digits disqualify a caps heading.
	if got := c.Classify("SECTION 3 RESULTS", TagBodyText); got != TagBodyText {
		t.Errorf("Classify(caps with digits) = %v, want body-text", got)
	}
}

func TestSessionCode(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		line string
		want string
	}{
		{"MOA — Monday Opening and Awards", "MOA"},
		{"MOP", "MOP"},
		{"  TUA – Tuesday Session A  ", "TUA"},
		{"not a header", ""},
		{"MOA01 Invited Oral", ""},
	}

	for _, tt := range tests {
		if got := c.SessionCode(tt.line); got != tt.want {
			t.Errorf("SessionCode(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestContributionCode(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		line string
		want string
	}{
		{"MOA01 Invited Oral Presentation — Example Title", "MOA01"},
		{"THPB077 Poster", "THPB077"},
		{"MOA — Monday Opening", ""},
		{"plain prose", ""},
	}

	for _, tt := range tests {
		if got := c.ContributionCode(tt.line); got != tt.want {
			t.Errorf("ContributionCode(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestIsAllCaps(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"MONDAY POSTER SESSION", true},
		{"MOA", true},
		{"Monday Poster", false},
		{"AB", false},
		{"SECTION 3", false},
		{"...", false},
	}

	for _, tt := range tests {
		if got := isAllCaps(tt.text); got != tt.want {
			t.Errorf("isAllCaps(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
