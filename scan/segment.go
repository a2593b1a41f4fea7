package scan

import (
	"fmt"

	"github.com/cobrasuicida/srf2025-scraper/model"
)

// Line is one line of program text with its position in the source document.
type Line struct {
	// Page is the 1-based page number.
	Page int

	// Number is the 1-based line number within the page.
	Number int

	// Text is the raw line content.
	Text string
}

// TaggedLine is a line together with its classification.
type TaggedLine struct {
	Line
	Tag Tag
}

// ContributionBlock is the contiguous run of lines belonging to one
// contribution: the header line plus everything up to the next header.
type ContributionBlock struct {
	// Header is the contribution-header line.
	Header Line

	// Body holds the block's remaining lines (field lines, footnote lines,
	// body text) in document order, blank lines included so that paragraph
	// breaks survive into the abstract.
	Body []TaggedLine
}

// SessionBlock groups the contribution blocks collected under one session
// header.
type SessionBlock struct {
	// Header is the session-header line.
	Header Line

	// Contributions holds the session's blocks in document order.
	Contributions []*ContributionBlock
}

// State is the segmenter's position in the scan.
type State int

const (
	// StateSeekingSession is the initial state: no session open yet.
	StateSeekingSession State = iota

	// StateInSession has an open session and no open contribution.
	StateInSession

	// StateInContribution is accumulating lines into a contribution block.
	StateInContribution

	// StateDone is terminal, entered by Finish.
	StateDone
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateSeekingSession:
		return "seeking-session"
	case StateInSession:
		return "in-session"
	case StateInContribution:
		return "in-contribution"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Segmenter partitions a classified line stream into session blocks. Its
// only carried state is the current FSM state, the previous line's tag, and
// the open session/contribution; all of it is constructed at run start and
// discarded at run end.
type Segmenter struct {
	classifier *Classifier

	state State
	prior Tag

	sessions []*SessionBlock
	session  *SessionBlock
	contrib  *ContributionBlock

	anomalies model.Anomalies
}

// NewSegmenter creates a segmenter with the default classifier.
func NewSegmenter() *Segmenter {
	return NewSegmenterWithClassifier(NewClassifier())
}

// NewSegmenterWithClassifier creates a segmenter using a custom classifier.
func NewSegmenterWithClassifier(c *Classifier) *Segmenter {
	return &Segmenter{classifier: c}
}

// State returns the segmenter's current state.
func (s *Segmenter) State() State {
	return s.state
}

// Feed consumes one line. Calling Feed after Finish is a no-op.
func (s *Segmenter) Feed(line Line) {
	if s.state == StateDone {
		return
	}

	tag := s.classifier.Classify(line.Text, s.prior)
	s.prior = tag

	switch s.state {
	case StateSeekingSession:
		switch tag {
		case TagSessionHeader:
			s.openSession(line)
		case TagContributionHeader:
			s.record(model.Anomaly{
				Severity:         model.SeverityRecord,
				Kind:             "orphan-contribution",
				ContributionCode: s.classifier.ContributionCode(line.Text),
				Page:             line.Page,
				Message:          "contribution header before any session; block skipped",
			})
		}
		// Field, footnote and body lines on cover pages are ignored.

	case StateInSession:
		switch tag {
		case TagSessionHeader:
			s.closeSession()
			s.openSession(line)
		case TagContributionHeader:
			s.openContribution(line)
		}
		// Session preamble lines (chairs, room) are not part of any record.

	case StateInContribution:
		switch tag {
		case TagSessionHeader:
			s.closeContribution()
			s.closeSession()
			s.openSession(line)
		case TagContributionHeader:
			s.closeContribution()
			s.openContribution(line)
		default:
			s.contrib.Body = append(s.contrib.Body, TaggedLine{Line: line, Tag: tag})
		}
	}
}

// Finish closes any open contribution and session, moves the segmenter to
// StateDone, and returns the session tree plus the anomalies collected
// during the scan. Finish is idempotent.
func (s *Segmenter) Finish() ([]*SessionBlock, model.Anomalies) {
	if s.state != StateDone {
		s.closeContribution()
		s.closeSession()
		s.state = StateDone
	}
	return s.sessions, s.anomalies
}

func (s *Segmenter) openSession(header Line) {
	s.session = &SessionBlock{Header: header}
	s.state = StateInSession
}

func (s *Segmenter) openContribution(header Line) {
	s.contrib = &ContributionBlock{Header: header}
	s.state = StateInContribution
}

func (s *Segmenter) closeContribution() {
	if s.contrib == nil {
		return
	}
	s.session.Contributions = append(s.session.Contributions, s.contrib)
	s.contrib = nil
}

// closeSession moves the open session into the result tree. A session closed
// with zero contributions is kept in the tree and flagged, except when its
// code repeats an earlier populated session: that is a page-top continuation
// header which collected nothing, dropped without noise.
func (s *Segmenter) closeSession() {
	if s.session == nil {
		return
	}
	if len(s.session.Contributions) == 0 {
		code := s.classifier.SessionCode(s.session.Header.Text)
		if code != "" && s.hasPopulated(code) {
			s.session = nil
			return
		}
		label := code
		if label == "" {
			label = s.session.Header.Text
		}
		s.record(model.Anomaly{
			Severity:  model.SeverityRecord,
			Kind:      "empty-session",
			SessionID: code,
			Page:      s.session.Header.Page,
			Message:   fmt.Sprintf("session %q closed with zero contributions", label),
		})
	}
	s.sessions = append(s.sessions, s.session)
	s.session = nil
}

// hasPopulated reports whether an earlier session block with the given code
// already holds contributions.
func (s *Segmenter) hasPopulated(code string) bool {
	for _, blk := range s.sessions {
		if len(blk.Contributions) > 0 && s.classifier.SessionCode(blk.Header.Text) == code {
			return true
		}
	}
	return false
}

func (s *Segmenter) record(a model.Anomaly) {
	s.anomalies = append(s.anomalies, a)
}

// Segment runs a fresh segmenter over the given lines and returns the
// session tree plus anomalies.
func Segment(lines []Line, c *Classifier) ([]*SessionBlock, model.Anomalies) {
	if c == nil {
		c = NewClassifier()
	}
	seg := NewSegmenterWithClassifier(c)
	for _, line := range lines {
		seg.Feed(line)
	}
	return seg.Finish()
}
