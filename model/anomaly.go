package model

import (
	"fmt"
	"strings"
)

// Severity classifies how far an anomaly deviates from expected structure.
type Severity int

const (
	// SeverityUnknown is the zero value.
	SeverityUnknown Severity = iota

	// SeverityFieldMiss marks a field extractor that found no matching
	// content; the field was defaulted to an empty string.
	SeverityFieldMiss

	// SeverityRecord marks a finalized paper or session that failed a
	// cross-record invariant (duplicate code, prefix mismatch, empty
	// session). The record is kept.
	SeverityRecord
)

// String returns a human-readable representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityFieldMiss:
		return "field-miss"
	case SeverityRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Anomaly is a detected but non-fatal deviation from the expected program
// structure, recorded for manual review. Anomalies never interrupt a run.
type Anomaly struct {
	// Severity classifies the anomaly.
	Severity Severity

	// Kind is a stable machine-readable key (e.g. "duplicate-code",
	// "empty-session", "missing-title").
	Kind string

	// SessionID names the session involved, when known.
	SessionID string

	// ContributionCode names the contribution involved, when known.
	ContributionCode string

	// Page is the 1-based page number where the condition was detected,
	// 0 when not tied to a page.
	Page int

	// Message describes the condition.
	Message string
}

// String formats the anomaly for the report.
func (a Anomaly) String() string {
	var sb strings.Builder
	sb.WriteString(a.Severity.String())
	sb.WriteString(" [")
	switch {
	case a.SessionID != "" && a.ContributionCode != "":
		sb.WriteString(a.SessionID + "/" + a.ContributionCode)
	case a.ContributionCode != "":
		sb.WriteString(a.ContributionCode)
	case a.SessionID != "":
		sb.WriteString(a.SessionID)
	default:
		sb.WriteString("-")
	}
	if a.Page > 0 {
		fmt.Fprintf(&sb, " p.%d", a.Page)
	}
	sb.WriteString("] ")
	sb.WriteString(a.Kind)
	if a.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(a.Message)
	}
	return sb.String()
}

// Anomalies is the accumulated anomaly list for one run, in detection order.
type Anomalies []Anomaly

// BySeverity returns the anomalies with the given severity.
func (as Anomalies) BySeverity(s Severity) Anomalies {
	var out Anomalies
	for _, a := range as {
		if a.Severity == s {
			out = append(out, a)
		}
	}
	return out
}

// ByKind returns the anomalies with the given kind key.
func (as Anomalies) ByKind(kind string) Anomalies {
	var out Anomalies
	for _, a := range as {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

// ForSession returns the anomalies recorded against the given session id.
func (as Anomalies) ForSession(id string) Anomalies {
	var out Anomalies
	for _, a := range as {
		if a.SessionID == id {
			out = append(out, a)
		}
	}
	return out
}

// FormatAnomalies renders anomalies as a bulleted list, one per line.
// Returns "" for an empty list.
func FormatAnomalies(as Anomalies) string {
	if len(as) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, a := range as {
		sb.WriteString("  - ")
		sb.WriteString(a.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
