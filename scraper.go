// Package scraper provides a fluent API for extracting a structured catalog
// of sessions and contributions from conference program documents.
//
// Basic usage:
//
//	catalog, anomalies, err := scraper.Open("program.txt").Catalog()
//	if err != nil {
//	    // handle error
//	}
//	if len(anomalies) > 0 {
//	    log.Println("Anomalies:", scraper.FormatAnomalies(anomalies))
//	}
//
// With options:
//
//	catalog, _, err := scraper.Open("program.txt").
//	    FirstPage(2).
//	    IDOffset(100).
//	    Catalog()
//
// For advanced use cases, the lower-level source, scan, fields, assemble and
// export packages are also available.
package scraper

import (
	"github.com/cobrasuicida/srf2025-scraper/model"
	"github.com/cobrasuicida/srf2025-scraper/source"
)

// Anomaly and Anomalies alias the model types so callers that only use the
// facade do not need to import the model package.
type (
	Anomaly   = model.Anomaly
	Anomalies = model.Anomalies
)

// FormatAnomalies renders anomalies as a multi-line string for display.
func FormatAnomalies(as Anomalies) string {
	return model.FormatAnomalies(as)
}

// Open opens a program document and returns an Extractor for fluent
// configuration. The input format (plain text, HTML, page directory) is
// detected automatically. The returned Extractor must be closed when done,
// either explicitly via Close() or implicitly when calling a terminal
// operation like Catalog().
//
// Example:
//
//	catalog, anomalies, err := scraper.Open("program.txt").Catalog()
func Open(path string) *Extractor {
	return &Extractor{
		path:    path,
		options: defaultOptions(),
	}
}

// FromSource creates an Extractor from an already-opened page line source.
// This is useful when you need more control over the source lifecycle, or
// when pages come from somewhere other than the filesystem.
// Note: The caller is responsible for closing the source.
//
// Example:
//
//	src, err := source.OpenText("program.txt")
//	if err != nil {
//	    // handle error
//	}
//	defer src.Close()
//	catalog, anomalies, err := scraper.FromSource(src).Catalog()
func FromSource(src source.Source) *Extractor {
	return &Extractor{
		src:          src,
		ownsSource:   false,
		sourceOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := scraper.Must(scraper.Open("program.txt").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustExtract is a helper that wraps a call to a terminal operation like
// Catalog() or JSON() and panics if the error is non-nil. It discards
// anomalies and returns just the value. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	catalog := scraper.MustExtract(scraper.Open("program.txt").Catalog())
func MustExtract[T any](val T, _ Anomalies, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
