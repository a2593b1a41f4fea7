// Package export renders a finished catalog into its output artifacts: the
// grouped JSON index, flat CSV/TSV tables, an XLSX workbook, a SQLite
// database, the plain-text extraction report, and a self-contained HTML
// explorer page.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cobrasuicida/srf2025-scraper/model"
	"github.com/cobrasuicida/srf2025-scraper/report"
)

// Format defines the available export formats.
type Format int

const (
	// FormatJSON exports the grouped session/paper index as JSON.
	FormatJSON Format = iota
	// FormatCSV exports one flat row per paper, comma-separated.
	FormatCSV
	// FormatTSV exports one flat row per paper, tab-separated.
	FormatTSV
	// FormatXLSX exports an XLSX workbook with paper and session sheets.
	FormatXLSX
	// FormatSQLite exports a SQLite database file.
	FormatSQLite
	// FormatReport exports the plain-text extraction report.
	FormatReport
	// FormatHTML exports the self-contained HTML explorer page.
	FormatHTML
)

// String returns a human-readable representation of the export format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	case FormatXLSX:
		return "xlsx"
	case FormatSQLite:
		return "sqlite"
	case FormatReport:
		return "report"
	case FormatHTML:
		return "html"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format.
func (f Format) FileExtension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatCSV:
		return ".csv"
	case FormatTSV:
		return ".tsv"
	case FormatXLSX:
		return ".xlsx"
	case FormatSQLite:
		return ".sqlite"
	case FormatReport:
		return ".txt"
	case FormatHTML:
		return ".html"
	default:
		return ".txt"
	}
}

// Config holds configuration options for export.
type Config struct {
	// Format specifies the export format.
	Format Format

	// ValidateSchema checks JSON output against the embedded catalog schema
	// before it is written.
	ValidateSchema bool

	// Delimiter specifies the field delimiter for CSV/TSV export.
	Delimiter rune

	// IncludeHeader includes the header row in CSV/TSV exports.
	IncludeHeader bool

	// ExcelBOM prefixes CSV output with a UTF-8 byte-order mark so
	// spreadsheet applications pick up the encoding.
	ExcelBOM bool

	// ReportTitle overrides the report heading for FormatReport.
	ReportTitle string

	// PageTitle overrides the page title for FormatHTML.
	PageTitle string
}

// DefaultConfig returns sensible defaults for export configuration.
func DefaultConfig() Config {
	return Config{
		Format:         FormatJSON,
		ValidateSchema: true,
		Delimiter:      ',',
		IncludeHeader:  true,
		ExcelBOM:       true,
	}
}

// CSVConfig returns config for CSV export.
func CSVConfig() Config {
	config := DefaultConfig()
	config.Format = FormatCSV
	return config
}

// TSVConfig returns config for TSV export.
func TSVConfig() Config {
	config := DefaultConfig()
	config.Format = FormatTSV
	config.Delimiter = '\t'
	config.ExcelBOM = false
	return config
}

// Exporter renders catalogs to the configured format.
type Exporter struct {
	config Config
}

// NewExporter creates an exporter with default configuration.
func NewExporter() *Exporter {
	return &Exporter{config: DefaultConfig()}
}

// NewExporterWithConfig creates an exporter with custom configuration.
func NewExporterWithConfig(config Config) *Exporter {
	if config.Delimiter == 0 {
		config.Delimiter = ','
	}
	return &Exporter{config: config}
}

// Export writes the catalog to w in the configured format. The anomaly list
// is consulted only by formats that render it (report, SQLite via
// ExportToFile); other formats ignore it. FormatSQLite cannot target an
// io.Writer and returns an error here.
func (e *Exporter) Export(catalog *model.Catalog, anomalies model.Anomalies, w io.Writer) error {
	switch e.config.Format {
	case FormatJSON:
		return e.exportJSON(catalog, w)
	case FormatCSV, FormatTSV:
		return e.exportCSV(catalog, w)
	case FormatXLSX:
		return e.exportXLSX(catalog, w)
	case FormatReport:
		return e.exportReport(catalog, anomalies, w)
	case FormatHTML:
		return e.exportHTML(catalog, w)
	case FormatSQLite:
		return fmt.Errorf("sqlite export needs a file path; use ExportToFile")
	default:
		return fmt.Errorf("unsupported export format: %v", e.config.Format)
	}
}

func (e *Exporter) exportReport(catalog *model.Catalog, anomalies model.Anomalies, w io.Writer) error {
	builder := report.NewBuilder()
	if e.config.ReportTitle != "" {
		builder.Title = e.config.ReportTitle
	}
	_, err := io.WriteString(w, builder.Build(catalog, anomalies))
	return err
}

// ExportToFile writes the catalog to a file in the configured format.
func (e *Exporter) ExportToFile(catalog *model.Catalog, anomalies model.Anomalies, filename string) error {
	if e.config.Format == FormatSQLite {
		return WriteSQLite(catalog, anomalies, filename)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	return e.Export(catalog, anomalies, f)
}

// ExportToString renders the catalog to a string.
func (e *Exporter) ExportToString(catalog *model.Catalog, anomalies model.Anomalies) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(catalog, anomalies, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Bundle names the artifact files written by [WriteBundle].
var Bundle = map[Format]string{
	FormatJSON:   "SRF2025_Complete_Index.json",
	FormatCSV:    "SRF2025_All_Contributions.csv",
	FormatReport: "SRF2025_Extraction_Report.txt",
	FormatHTML:   "srf2025_data_explorer.html",
	FormatXLSX:   "SRF2025_All_Contributions.xlsx",
	FormatSQLite: "SRF2025_Catalog.sqlite",
}

// WriteBundle writes the full artifact set for one run into dir, creating it
// if needed. Formats listed in [Bundle] are written with default per-format
// configuration.
func WriteBundle(catalog *model.Catalog, anomalies model.Anomalies, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	for _, format := range []Format{FormatJSON, FormatCSV, FormatReport, FormatHTML, FormatXLSX, FormatSQLite} {
		config := DefaultConfig()
		config.Format = format
		exporter := NewExporterWithConfig(config)
		path := filepath.Join(dir, Bundle[format])
		if err := exporter.ExportToFile(catalog, anomalies, path); err != nil {
			return fmt.Errorf("writing %s: %w", Bundle[format], err)
		}
	}
	return nil
}
