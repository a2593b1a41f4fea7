package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cobrasuicida/srf2025-scraper/assemble"
	"github.com/cobrasuicida/srf2025-scraper/export"
	"github.com/cobrasuicida/srf2025-scraper/model"
	"github.com/cobrasuicida/srf2025-scraper/scan"
	"github.com/cobrasuicida/srf2025-scraper/source"
)

// Extractor provides a fluent interface for extracting a session/paper
// catalog from a program document. Each configuration method returns a new
// Extractor instance, making it safe for concurrent use and allowing method
// chaining.
type Extractor struct {
	// Source
	path string
	src  source.Source

	// Lifecycle
	ownsSource   bool // true if we opened the source and should close it
	sourceOpened bool // true if the source has been opened

	// Configuration
	options extractOptions

	// Optional custom classifier; nil means one derived from the session
	// name table.
	classifier *scan.Classifier

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		path:         e.path,
		src:          e.src,
		ownsSource:   e.ownsSource,
		sourceOpened: e.sourceOpened,
		options:      e.options.clone(),
		classifier:   e.classifier,
		err:          e.err,
	}
}

// ensureSource opens the page line source if not already open.
func (e *Extractor) ensureSource() error {
	if e.sourceOpened {
		return nil
	}
	if e.path == "" {
		return fmt.Errorf("no input specified")
	}

	src, err := source.Open(e.path)
	if err != nil {
		return fmt.Errorf("failed to open program: %w", err)
	}
	e.src = src
	e.ownsSource = true
	e.sourceOpened = true
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsSource && e.src != nil {
		err := e.src.Close()
		e.src = nil
		e.ownsSource = false
		e.sourceOpened = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// FirstPage sets the first page to scan (1-indexed). The default skips the
// title page and starts at page 2 for multi-page documents.
//
// Example:
//
//	catalog, _, err := scraper.Open("program.txt").FirstPage(3).Catalog()
func (e *Extractor) FirstPage(page int) *Extractor {
	newExt := e.clone()
	newExt.options.firstPage = page
	return newExt
}

// AllPages scans from page 1 instead of skipping the title page.
//
// Example:
//
//	catalog, _, err := scraper.Open("program.txt").AllPages().Catalog()
func (e *Extractor) AllPages() *Extractor {
	newExt := e.clone()
	newExt.options.allPages = true
	return newExt
}

// IDOffset sets the contribution id assigned to the first extracted paper;
// later papers count up from it in document order. The default is 1.
func (e *Extractor) IDOffset(offset int) *Extractor {
	newExt := e.clone()
	newExt.options.idOffset = offset
	return newExt
}

// SourceLabel sets the source label recorded in the catalog's scrape info.
// The default is the input's own name.
func (e *Extractor) SourceLabel(label string) *Extractor {
	newExt := e.clone()
	newExt.options.sourceLabel = label
	return newExt
}

// KeepEmptySessions keeps sessions with zero papers in the catalog. By
// default they are excluded and flagged as anomalies.
func (e *Extractor) KeepEmptySessions() *Extractor {
	newExt := e.clone()
	newExt.options.keepEmptySessions = true
	return newExt
}

// SessionNames replaces the table mapping session codes to full session
// names. The default is [assemble.DefaultSessionNames]. The table also
// gates which bare all-caps codes may open a session on a continuation
// page.
//
// Example:
//
//	names := map[string]string{"MOA": "Monday Opening and Awards"}
//	catalog, _, err := scraper.Open("program.txt").SessionNames(names).Catalog()
func (e *Extractor) SessionNames(names map[string]string) *Extractor {
	newExt := e.clone()
	newExt.options.sessionNames = names
	return newExt
}

// RunningHeaderPatterns replaces the patterns for repeated page furniture
// (banner lines, page numbers) that is dropped before classification.
func (e *Extractor) RunningHeaderPatterns(patterns ...*regexp.Regexp) *Extractor {
	newExt := e.clone()
	newExt.options.runningHeaders = patterns
	return newExt
}

// Classifier replaces the line classifier, for programs whose header or
// schedule conventions differ from the SRF defaults.
func (e *Extractor) Classifier(c *scan.Classifier) *Extractor {
	newExt := e.clone()
	newExt.classifier = c
	return newExt
}

// Clock sets the function supplying the extraction timestamp. Inject a
// fixed clock for byte-identical output across runs.
func (e *Extractor) Clock(clock func() time.Time) *Extractor {
	newExt := e.clone()
	newExt.options.clock = clock
	return newExt
}

// WithContext sets the context checked between pages. Cancelling it aborts
// the pass; the partial result is discarded, never published.
func (e *Extractor) WithContext(ctx context.Context) *Extractor {
	newExt := e.clone()
	newExt.options.ctx = ctx
	return newExt
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// Catalog runs the full extraction pipeline and returns the finished
// catalog. This is a terminal operation that closes the underlying source.
//
// Returns the catalog, any anomalies encountered during processing, and an
// error if extraction failed. Anomalies indicate non-fatal issues (missing
// fields, duplicate codes, empty sessions) where extraction succeeded but
// individual records may be imperfect; the error is non-nil only for
// structural failures such as zero extracted sessions.
//
// Example:
//
//	catalog, anomalies, err := scraper.Open("program.txt").Catalog()
//	if len(anomalies) > 0 {
//	    log.Println("Anomalies:", scraper.FormatAnomalies(anomalies))
//	}
func (e *Extractor) Catalog() (*model.Catalog, Anomalies, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	if err := e.ensureSource(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	pageCount := e.src.PageCount()
	if pageCount == 0 {
		return nil, nil, fmt.Errorf("%s: %w", e.src.Name(), source.ErrNoPages)
	}

	first, err := e.resolveFirstPage(pageCount)
	if err != nil {
		return nil, nil, err
	}

	seg := scan.NewSegmenterWithClassifier(e.resolveClassifier())

	for page := first; page <= pageCount; page++ {
		if err := e.options.ctx.Err(); err != nil {
			return nil, nil, err
		}

		lines, err := e.src.Lines(page)
		if err != nil {
			return nil, nil, fmt.Errorf("page %d: %w", page, err)
		}

		for i, text := range lines {
			if e.isRunningHeader(text) {
				continue
			}
			seg.Feed(scan.Line{Page: page, Number: i + 1, Text: text})
		}
	}

	blocks, anomalies := seg.Finish()

	label := e.options.sourceLabel
	if label == "" {
		label = e.src.Name()
	}

	assembler := assemble.NewAssemblerWithConfig(assemble.Config{
		IDOffset:          e.options.idOffset,
		SessionNames:      e.resolveSessionNames(),
		Source:            label,
		Clock:             e.options.clock,
		KeepEmptySessions: e.options.keepEmptySessions,
	})

	catalog, assemblyAnomalies, err := assembler.Assemble(blocks)
	anomalies = append(anomalies, assemblyAnomalies...)
	if err != nil {
		return nil, anomalies, err
	}
	return catalog, anomalies, nil
}

// Sessions extracts the catalog and returns its sessions in document order.
// This is a terminal operation that closes the underlying source.
func (e *Extractor) Sessions() ([]*model.Session, Anomalies, error) {
	catalog, anomalies, err := e.Catalog()
	if err != nil {
		return nil, anomalies, err
	}
	return catalog.Sessions, anomalies, nil
}

// Papers extracts the catalog and returns all papers across all sessions in
// document order. This is a terminal operation that closes the underlying
// source.
func (e *Extractor) Papers() ([]*model.Paper, Anomalies, error) {
	catalog, anomalies, err := e.Catalog()
	if err != nil {
		return nil, anomalies, err
	}
	return catalog.Papers(), anomalies, nil
}

// Stats extracts the catalog and returns its aggregate statistics.
// This is a terminal operation that closes the underlying source.
func (e *Extractor) Stats() (model.CatalogStats, Anomalies, error) {
	catalog, anomalies, err := e.Catalog()
	if err != nil {
		return model.CatalogStats{}, anomalies, err
	}
	return catalog.Stats(), anomalies, nil
}

// JSON extracts the catalog and renders it as the grouped JSON index.
// This is a terminal operation that closes the underlying source.
//
// Example:
//
//	doc, anomalies, err := scraper.Open("program.txt").JSON()
func (e *Extractor) JSON() (string, Anomalies, error) {
	catalog, anomalies, err := e.Catalog()
	if err != nil {
		return "", anomalies, err
	}
	data, err := export.MarshalCatalog(catalog)
	if err != nil {
		return "", anomalies, err
	}
	return string(data), anomalies, nil
}

// Report extracts the catalog and renders the plain-text run report,
// anomalies included. This is a terminal operation that closes the
// underlying source.
func (e *Extractor) Report() (string, Anomalies, error) {
	catalog, anomalies, err := e.Catalog()
	if err != nil {
		return "", anomalies, err
	}
	exporter := export.NewExporterWithConfig(export.Config{Format: export.FormatReport})
	text, err := exporter.ExportToString(catalog, anomalies)
	if err != nil {
		return "", anomalies, err
	}
	return text, anomalies, nil
}

// WriteBundle extracts the catalog and writes the full artifact set (JSON
// index, CSV, XLSX, SQLite, report, HTML explorer) into dir, creating it if
// needed. This is a terminal operation that closes the underlying source.
// Nothing is written when extraction fails.
//
// Example:
//
//	anomalies, err := scraper.Open("program.txt").WriteBundle("output")
func (e *Extractor) WriteBundle(dir string) (Anomalies, error) {
	catalog, anomalies, err := e.Catalog()
	if err != nil {
		return anomalies, err
	}
	if err := export.WriteBundle(catalog, anomalies, dir); err != nil {
		return anomalies, err
	}
	return anomalies, nil
}

// Lines returns the raw program lines that the pipeline would classify:
// every line of the scanned pages, running headers excluded. Useful for
// debugging classifier patterns against a new program layout.
// This is a terminal operation that closes the underlying source.
func (e *Extractor) Lines() ([]scan.Line, error) {
	if e.err != nil {
		return nil, e.err
	}

	if err := e.ensureSource(); err != nil {
		return nil, err
	}
	defer e.Close()

	pageCount := e.src.PageCount()
	if pageCount == 0 {
		return nil, fmt.Errorf("%s: %w", e.src.Name(), source.ErrNoPages)
	}

	first, err := e.resolveFirstPage(pageCount)
	if err != nil {
		return nil, err
	}

	var all []scan.Line
	for page := first; page <= pageCount; page++ {
		lines, err := e.src.Lines(page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		for i, text := range lines {
			if e.isRunningHeader(text) {
				continue
			}
			all = append(all, scan.Line{Page: page, Number: i + 1, Text: text})
		}
	}
	return all, nil
}

// PageCount returns the total number of pages in the document.
// Note: This does NOT close the source, allowing further operations.
//
// Example:
//
//	ext := scraper.Open("program.txt")
//	defer ext.Close()
//	count, err := ext.PageCount()
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}

	if err := e.ensureSource(); err != nil {
		return 0, err
	}

	return e.src.PageCount(), nil
}

// ============================================================================
// Internal helpers
// ============================================================================

// resolveFirstPage applies the first-page policy: an explicit FirstPage
// wins, AllPages starts at 1, and the default skips the title page of a
// multi-page document.
func (e *Extractor) resolveFirstPage(pageCount int) (int, error) {
	first := e.options.firstPage
	if first == 0 {
		if e.options.allPages || pageCount == 1 {
			first = 1
		} else {
			first = 2
		}
	}
	if first < 1 || first > pageCount {
		return 0, fmt.Errorf("first page %d out of range (1-%d)", first, pageCount)
	}
	return first, nil
}

// resolveClassifier returns the configured classifier, or one whose bare
// session codes are gated by the session name table so that short all-caps
// words inside footnote blocks cannot open a session.
func (e *Extractor) resolveClassifier() *scan.Classifier {
	if e.classifier != nil {
		return e.classifier
	}

	config := scan.DefaultClassifierConfig()
	names := e.resolveSessionNames()
	config.KnownSessionCodes = make(map[string]bool, len(names))
	for code := range names {
		config.KnownSessionCodes[code] = true
	}
	return scan.NewClassifierWithConfig(config)
}

func (e *Extractor) resolveSessionNames() map[string]string {
	if e.options.sessionNames != nil {
		return e.options.sessionNames
	}
	return assemble.DefaultSessionNames
}

// isRunningHeader reports whether the line is repeated page furniture.
// Blank lines are never furniture; they mark paragraph breaks.
func (e *Extractor) isRunningHeader(line string) bool {
	text := strings.TrimSpace(line)
	if text == "" {
		return false
	}
	for _, pattern := range e.options.runningHeaders {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
