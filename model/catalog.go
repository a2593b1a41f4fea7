package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Structural failures reported after a full pass. A run that ends with one of
// these produces no output artifacts.
var (
	// ErrNoSessions indicates that the pass finished without detecting a
	// single session header.
	ErrNoSessions = errors.New("no sessions extracted")

	// ErrNoContributions indicates that sessions were detected but no
	// contribution records survived assembly.
	ErrNoContributions = errors.New("no contributions extracted")
)

// Paper represents one scheduled contribution (talk, poster, tutorial) with
// its normalized metadata. Papers are created once during assembly and are
// immutable afterwards.
type Paper struct {
	// ContributionID is the run-wide sequential identifier, assigned in
	// document order starting at the assembler's configured offset.
	ContributionID int

	// ContributionCode is the program code (e.g. "MOA01"). Its alphabetic
	// prefix names the owning session.
	ContributionCode string

	// Type is the presentation kind (e.g. "Invited Oral Presentation",
	// "Poster"). Unrecognized phrases are preserved verbatim.
	Type string

	// Title is the whitespace-normalized contribution title.
	Title string

	// DateTime is the schedule string in the source's own format
	// (e.g. "Monday, September 22, 2025 8:30 AM"). Kept opaque because the
	// source format is not consistent enough to parse into a time.Time.
	DateTime string

	// Abstract is the abstract prose. Empty when the contribution has none.
	Abstract string

	// Footnotes holds the author/presenter attribution block as a single
	// string. Decomposition into names is left to consumers.
	Footnotes string

	// Session is the owning session's name. Descriptive back-reference
	// only; ownership lives in Session.Papers.
	Session string

	// Page is the 1-based page number where the contribution header
	// appeared.
	Page int
}

// CodePrefix returns the leading alphabetic run of the contribution code,
// which identifies the owning session ("MOA01" -> "MOA").
func (p *Paper) CodePrefix() string {
	for i, r := range p.ContributionCode {
		if r < 'A' || r > 'Z' {
			return p.ContributionCode[:i]
		}
	}
	return p.ContributionCode
}

// Session is a named grouping of contributions scheduled together.
type Session struct {
	// ID is the short alphabetic session code (e.g. "MOA").
	ID string

	// Name is the human-readable session title.
	Name string

	// Papers holds the session's contributions in document order.
	Papers []*Paper
}

// AddPaper appends a paper to the session in document order and sets its
// back-reference to the session name.
func (s *Session) AddPaper(p *Paper) {
	p.Session = s.Name
	s.Papers = append(s.Papers, p)
}

// PaperCount returns the number of papers in the session.
func (s *Session) PaperCount() int {
	return len(s.Papers)
}

// ScrapeInfo describes one extraction run.
type ScrapeInfo struct {
	// ExtractionTime is when the run finished assembling the catalog.
	ExtractionTime time.Time

	// Source labels the input document (file name or caller-supplied tag).
	Source string

	// TotalContributions is the count of papers across all sessions.
	TotalContributions int

	// SessionsProcessed is the count of sessions in the catalog.
	SessionsProcessed int
}

// Catalog is the finished, read-only result of one extraction run: every
// session in document order, each owning its papers.
type Catalog struct {
	Info     ScrapeInfo
	Sessions []*Session
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// AddSession appends a session in document order and updates the session
// count.
func (c *Catalog) AddSession(s *Session) {
	c.Sessions = append(c.Sessions, s)
	c.Info.SessionsProcessed = len(c.Sessions)
}

// SessionCount returns the number of sessions in the catalog.
func (c *Catalog) SessionCount() int {
	return len(c.Sessions)
}

// PaperCount returns the number of papers across all sessions.
func (c *Catalog) PaperCount() int {
	n := 0
	for _, s := range c.Sessions {
		n += len(s.Papers)
	}
	return n
}

// FindSession returns the session with the given id, or nil.
func (c *Catalog) FindSession(id string) *Session {
	for _, s := range c.Sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// FindPaper returns the paper with the given contribution code, or nil.
func (c *Catalog) FindPaper(code string) *Paper {
	for _, s := range c.Sessions {
		for _, p := range s.Papers {
			if p.ContributionCode == code {
				return p
			}
		}
	}
	return nil
}

// Papers returns all papers across all sessions in document order.
func (c *Catalog) Papers() []*Paper {
	papers := make([]*Paper, 0, c.PaperCount())
	for _, s := range c.Sessions {
		papers = append(papers, s.Papers...)
	}
	return papers
}

// Validate checks the catalog's aggregate invariants: the reported counts
// match the tree, every session has at least one paper, and contribution
// ids are positive and collision-free. Ids are not required to be ordered
// within the tree: a session resumed later in the document keeps its
// later-assigned ids.
func (c *Catalog) Validate() error {
	if len(c.Sessions) == 0 {
		return ErrNoSessions
	}
	if c.PaperCount() == 0 {
		return ErrNoContributions
	}
	if c.Info.SessionsProcessed != len(c.Sessions) {
		return fmt.Errorf("sessions_processed is %d, catalog has %d sessions",
			c.Info.SessionsProcessed, len(c.Sessions))
	}
	if c.Info.TotalContributions != c.PaperCount() {
		return fmt.Errorf("total_contributions is %d, catalog has %d papers",
			c.Info.TotalContributions, c.PaperCount())
	}
	ids := make([]int, 0, c.PaperCount())
	for _, s := range c.Sessions {
		if len(s.Papers) == 0 {
			return fmt.Errorf("session %s has no papers", s.ID)
		}
		for _, p := range s.Papers {
			if p.ContributionID <= 0 {
				return fmt.Errorf("paper %s has no contribution id", p.ContributionCode)
			}
			ids = append(ids, p.ContributionID)
		}
	}
	sort.Ints(ids)
	for i := 1; i < len(ids); i++ {
		if ids[i] == ids[i-1] {
			return fmt.Errorf("contribution id %d assigned twice", ids[i])
		}
	}
	return nil
}

// Stats returns aggregate statistics about the catalog.
func (c *Catalog) Stats() CatalogStats {
	stats := CatalogStats{
		Sessions:     len(c.Sessions),
		PapersByType: make(map[string]int),
	}
	for _, s := range c.Sessions {
		for _, p := range s.Papers {
			stats.Papers++
			if p.Type != "" {
				stats.PapersByType[p.Type]++
			}
			if p.Abstract != "" {
				stats.WithAbstract++
			}
			if p.Footnotes != "" {
				stats.WithFootnotes++
			}
			if p.DateTime != "" {
				stats.WithSchedule++
			}
		}
	}
	if stats.Sessions > 0 {
		stats.LargestSession = c.Sessions[0].ID
		max := len(c.Sessions[0].Papers)
		for _, s := range c.Sessions[1:] {
			if len(s.Papers) > max {
				max = len(s.Papers)
				stats.LargestSession = s.ID
			}
		}
	}
	return stats
}

// CatalogStats contains aggregate statistics about a catalog.
type CatalogStats struct {
	Sessions       int
	Papers         int
	WithAbstract   int
	WithFootnotes  int
	WithSchedule   int
	PapersByType   map[string]int
	LargestSession string
}

// String returns a one-line summary of the stats.
func (cs CatalogStats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d sessions, %d papers", cs.Sessions, cs.Papers)
	if cs.Papers > 0 {
		fmt.Fprintf(&sb, " (%d with abstract, %d with footnotes)",
			cs.WithAbstract, cs.WithFootnotes)
	}
	return sb.String()
}
