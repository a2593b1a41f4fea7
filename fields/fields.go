// Package fields contains the field-level parsers of the extraction
// pipeline. Each extractor is a pure function over one immutable
// contribution block and returns a value plus a [Confidence]; extractors are
// independent and order-insensitive with respect to each other.
//
// Missing-value policy: an extractor that finds no matching content returns
// an explicit empty string, never an absent value; every assembled paper
// carries all attributes, some possibly empty.
package fields

import (
	"strings"

	"github.com/cobrasuicida/srf2025-scraper/scan"
)

// Confidence reports whether an extracted value matched the expected pattern
// or was recovered by a fallback rule.
type Confidence int

const (
	// ConfidenceFallback marks a value recovered verbatim or by a fallback
	// rule, including the empty value when nothing matched.
	ConfidenceFallback Confidence = iota

	// ConfidenceMatched marks a value that matched the expected pattern.
	ConfidenceMatched
)

// String returns a human-readable representation of the confidence.
func (c Confidence) String() string {
	if c == ConfidenceMatched {
		return "matched"
	}
	return "fallback"
}

// normalize collapses all runs of whitespace to single spaces and trims the
// ends.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// labeledValue returns the value of the first labeled field line
// ("<label>: value") in the block body, or "".
func labeledValue(block *scan.ContributionBlock, label string) string {
	for _, line := range block.Body {
		if line.Tag != scan.TagFieldLine {
			continue
		}
		text := strings.TrimSpace(line.Text)
		rest, ok := strings.CutPrefix(text, label)
		if !ok {
			continue
		}
		rest = strings.TrimSpace(rest)
		if value, ok := strings.CutPrefix(rest, ":"); ok {
			return normalize(value)
		}
	}
	return ""
}
