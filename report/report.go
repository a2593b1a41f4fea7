// Package report renders a plain-text summary of an extraction run: the run
// counts, the per-session breakdown, and the anomalies recorded for manual
// review.
package report

import (
	"fmt"
	"strings"

	"github.com/cobrasuicida/srf2025-scraper/model"
)

// DefaultTitle is the report heading used when no title is configured.
const DefaultTitle = "SRF2025 Conference Contributions Extraction Report"

const timeLayout = "2006-01-02 15:04:05"

// Builder renders extraction reports.
type Builder struct {
	// Title is the report's first line.
	Title string
}

// NewBuilder creates a builder with the default title.
func NewBuilder() *Builder {
	return &Builder{Title: DefaultTitle}
}

// Build renders the report for a catalog and the anomalies collected while
// extracting it.
func (b *Builder) Build(catalog *model.Catalog, anomalies model.Anomalies) string {
	title := b.Title
	if title == "" {
		title = DefaultTitle
	}

	var sb strings.Builder
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&sb, "Extraction time: %s\n", catalog.Info.ExtractionTime.Format(timeLayout))
	if catalog.Info.Source != "" {
		fmt.Fprintf(&sb, "Source: %s\n", catalog.Info.Source)
	}
	fmt.Fprintf(&sb, "Total contributions: %d\n", catalog.Info.TotalContributions)
	fmt.Fprintf(&sb, "Sessions: %d\n\n", catalog.Info.SessionsProcessed)

	sb.WriteString("Session breakdown:\n")
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	for _, s := range catalog.Sessions {
		fmt.Fprintf(&sb, "%s: %s (%d contributions)\n", s.ID, s.Name, s.PaperCount())
	}

	if len(anomalies) > 0 {
		fmt.Fprintf(&sb, "\nAnomalies (%d):\n", len(anomalies))
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		sb.WriteString(model.FormatAnomalies(anomalies))
	}

	return sb.String()
}

// Build renders a report with the default title.
func Build(catalog *model.Catalog, anomalies model.Anomalies) string {
	return NewBuilder().Build(catalog, anomalies)
}
