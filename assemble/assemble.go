// Package assemble builds the final catalog from segmented session blocks.
//
// The assembler is the last pipeline stage: it resolves session names, runs
// the field extractors over every contribution block, assigns sequential
// contribution ids in document order, and validates the assembled records.
// Records that violate an invariant are kept and flagged with an anomaly
// (fail-open); inputs that yield zero sessions or zero papers fail the whole
// run (fail-closed), since downstream consumers assume a non-empty catalog.
package assemble

import (
	"fmt"
	"time"

	"github.com/cobrasuicida/srf2025-scraper/fields"
	"github.com/cobrasuicida/srf2025-scraper/model"
	"github.com/cobrasuicida/srf2025-scraper/scan"
)

// Config holds assembler settings.
type Config struct {
	// IDOffset is the contribution id assigned to the first assembled paper;
	// later papers count up from it in document order.
	IDOffset int

	// SessionNames maps session codes to full session names, consulted when
	// a session header carries no name of its own. A code missing from the
	// map falls back to "Session <code>".
	SessionNames map[string]string

	// Source is the label recorded in the catalog's scrape info.
	Source string

	// Clock supplies the extraction timestamp. Defaults to time.Now; inject
	// a fixed clock for reproducible output.
	Clock func() time.Time

	// KeepEmptySessions keeps sessions with zero papers in the catalog
	// instead of excluding them.
	KeepEmptySessions bool
}

// DefaultConfig returns the default assembler configuration.
func DefaultConfig() Config {
	return Config{
		IDOffset: 1,
		Clock:    time.Now,
	}
}

// Assembler turns the segmenter's session tree into a validated catalog.
type Assembler struct {
	config Config
}

// NewAssembler creates an assembler with default configuration.
func NewAssembler() *Assembler {
	return NewAssemblerWithConfig(DefaultConfig())
}

// NewAssemblerWithConfig creates an assembler with custom configuration.
// Zero-valued fields fall back to their defaults.
func NewAssemblerWithConfig(config Config) *Assembler {
	if config.IDOffset == 0 {
		config.IDOffset = 1
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	return &Assembler{config: config}
}

// Assemble builds a catalog from the session tree. Blocks sharing a session
// code are merged into one session in first-seen order, so a session split
// across page breaks comes out whole. The returned anomalies cover dropped
// records, flagged records, and field misses; the error is non-nil only for
// structural failures ([model.ErrNoSessions], [model.ErrNoContributions]).
func (a *Assembler) Assemble(blocks []*scan.SessionBlock) (*model.Catalog, model.Anomalies, error) {
	var anomalies model.Anomalies

	catalog := model.NewCatalog()
	catalog.Info.ExtractionTime = a.config.Clock()
	catalog.Info.Source = a.config.Source

	var order []*model.Session
	byID := make(map[string]*model.Session)
	firstSeen := make(map[string]int)

	nextID := a.config.IDOffset

	for _, blk := range blocks {
		id, name, _ := fields.SessionHeader(blk.Header.Text)
		if id == "" {
			anomalies = append(anomalies, model.Anomaly{
				Severity: model.SeverityRecord,
				Kind:     "unparsable-session-header",
				Page:     blk.Header.Page,
				Message:  fmt.Sprintf("session header %q has no parsable code; block skipped", blk.Header.Text),
			})
			continue
		}

		sess := byID[id]
		if sess == nil {
			sess = &model.Session{ID: id, Name: a.sessionName(id, name)}
			byID[id] = sess
			order = append(order, sess)
		}

		for _, cb := range blk.Contributions {
			paper, paperAnomalies := a.assemblePaper(cb, sess, nextID, firstSeen)
			anomalies = append(anomalies, paperAnomalies...)
			if paper == nil {
				continue
			}
			sess.AddPaper(paper)
			nextID++
		}
	}

	for _, sess := range order {
		if len(sess.Papers) == 0 && !a.config.KeepEmptySessions {
			continue
		}
		catalog.AddSession(sess)
	}
	catalog.Info.TotalContributions = catalog.PaperCount()

	if catalog.SessionCount() == 0 {
		return nil, anomalies, model.ErrNoSessions
	}
	if catalog.PaperCount() == 0 {
		return nil, anomalies, model.ErrNoContributions
	}
	return catalog, anomalies, nil
}

// sessionName resolves a session's display name: the header's own name wins,
// then the configured table, then the generic fallback.
func (a *Assembler) sessionName(id, headerName string) string {
	if headerName != "" {
		return headerName
	}
	if name, ok := a.config.SessionNames[id]; ok {
		return name
	}
	return "Session " + id
}

// assemblePaper extracts one paper from its block. A block whose header
// yields no contribution code is dropped (nil paper) with an anomaly; all
// other defects flag the paper but keep it.
func (a *Assembler) assemblePaper(block *scan.ContributionBlock, sess *model.Session, id int, firstSeen map[string]int) (*model.Paper, model.Anomalies) {
	var anomalies model.Anomalies

	code, _ := fields.Code(block)
	if code == "" {
		anomalies = append(anomalies, model.Anomaly{
			Severity:  model.SeverityRecord,
			Kind:      "missing-code",
			SessionID: sess.ID,
			Page:      block.Header.Page,
			Message:   fmt.Sprintf("contribution header %q has no parsable code; record dropped", block.Header.Text),
		})
		return nil, anomalies
	}

	flag := func(severity model.Severity, kind, message string) {
		anomalies = append(anomalies, model.Anomaly{
			Severity:         severity,
			Kind:             kind,
			SessionID:        sess.ID,
			ContributionCode: code,
			Page:             block.Header.Page,
			Message:          message,
		})
	}

	title, _ := fields.Title(block)
	kind, _ := fields.Type(block)
	schedule, _ := fields.Schedule(block)
	abstract, _ := fields.Abstract(block)
	footnotes, _ := fields.Footnotes(block)

	// Empty abstract and footnotes are valid; the other three are expected.
	if title == "" {
		flag(model.SeverityFieldMiss, "missing-title", "no title found in header or body")
	}
	if kind == "" {
		flag(model.SeverityFieldMiss, "missing-type", "no presentation type found in header or field lines")
	}
	if schedule == "" {
		flag(model.SeverityFieldMiss, "missing-schedule", "no schedule line found")
	}

	if page, dup := firstSeen[code]; dup {
		flag(model.SeverityRecord, "duplicate-code",
			fmt.Sprintf("code already assigned on page %d; record kept", page))
	} else {
		firstSeen[code] = block.Header.Page
	}

	paper := &model.Paper{
		ContributionID:   id,
		ContributionCode: code,
		Type:             kind,
		Title:            title,
		DateTime:         schedule,
		Abstract:         abstract,
		Footnotes:        footnotes,
		Page:             block.Header.Page,
	}

	if prefix := paper.CodePrefix(); prefix != sess.ID {
		flag(model.SeverityRecord, "code-prefix-mismatch",
			fmt.Sprintf("code prefix %q does not match session id %q; record kept", prefix, sess.ID))
	}

	return paper, anomalies
}
