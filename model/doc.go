// Package model defines the output model of the extraction pipeline: the
// catalog of sessions and papers produced by one run, plus the anomaly types
// used to flag recoverable deviations.
//
// # Catalog Structure
//
// The [Catalog] type is the finished, read-only result set:
//
//	catalog := model.NewCatalog()
//	catalog.AddSession(&model.Session{ID: "MOA", Name: "Monday Opening and Awards"})
//
// Each [Session] owns its [Paper] values in document order. A paper's Session
// field is a descriptive back-reference (the owning session's name), not an
// ownership link.
//
// # Invariants
//
// [Catalog.Validate] checks the aggregate invariants after assembly:
//
//   - reported counts match the tree
//   - every session has at least one paper
//   - contribution ids are positive and collision-free; a session resumed
//     later in the document keeps its later-assigned ids, so tree order may
//     differ from id order
//
// Structural failures surface as [ErrNoSessions] or [ErrNoContributions].
//
// # Anomalies
//
// Recoverable conditions are values, not errors: an [Anomaly] records a field
// miss or a cross-record violation without interrupting the run. The
// [Anomalies] slice supports filtering by severity, kind, and session, and
// [FormatAnomalies] renders the list for the text report.
package model
