package scraper

import (
	"context"
	"regexp"
	"time"
)

// defaultRunningHeaders matches the repeated page furniture of SRF-style
// programs: the document banner lines and bare page numbers. Matched lines
// are dropped before classification.
var defaultRunningHeaders = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^report of contributions\b`),
	regexp.MustCompile(`(?i)^srf\s*2025\b`),
	regexp.MustCompile(`^(?:Page\s+)?\d{1,4}$`),
}

// extractOptions holds configuration for catalog extraction.
type extractOptions struct {
	// Page selection. firstPage 0 means auto: page 2 for multi-page
	// documents (the title page is skipped), page 1 otherwise.
	firstPage int
	allPages  bool

	// Record assembly
	idOffset          int
	sourceLabel       string
	keepEmptySessions bool
	sessionNames      map[string]string

	// Lines matching any of these patterns are dropped before
	// classification.
	runningHeaders []*regexp.Regexp

	// clock supplies the extraction timestamp; nil means time.Now.
	clock func() time.Time

	// ctx is checked between pages; cancellation discards the partial
	// result.
	ctx context.Context
}

// defaultOptions returns the default extraction options.
func defaultOptions() extractOptions {
	return extractOptions{
		firstPage:      0, // auto
		idOffset:       1,
		runningHeaders: defaultRunningHeaders,
		ctx:            context.Background(),
	}
}

// clone creates a deep copy of extractOptions. The compiled regexps and the
// name map values are shared; the containers are copied so that chain methods
// never mutate a predecessor's options.
func (o extractOptions) clone() extractOptions {
	newOpts := o

	if o.sessionNames != nil {
		newOpts.sessionNames = make(map[string]string, len(o.sessionNames))
		for k, v := range o.sessionNames {
			newOpts.sessionNames[k] = v
		}
	}
	if o.runningHeaders != nil {
		newOpts.runningHeaders = make([]*regexp.Regexp, len(o.runningHeaders))
		copy(newOpts.runningHeaders, o.runningHeaders)
	}

	return newOpts
}
