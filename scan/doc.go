// Package scan turns the raw per-page line stream of a conference program
// into a session-scoped tree of contribution blocks.
//
// This package contains the only stateful part of the pipeline: a line
// classifier and a four-state segmenter that together partition the document
// into sessions and contributions without ever re-reading upstream content.
//
// # Classification
//
// The [Classifier] assigns each line one [Tag] based on its text shape and
// the tag of the immediately preceding line:
//
//	c := scan.NewClassifier()
//	tag := c.Classify("MOA01 Invited Oral Presentation — Example Title", scan.TagSessionHeader)
//	// tag == scan.TagContributionHeader
//
// Classification is a pure function and never fails; any line that matches no
// structural pattern is [TagBodyText].
//
// # Segmentation
//
// The [Segmenter] consumes classified lines in document order and maintains
// explicit state ([StateSeekingSession], [StateInSession],
// [StateInContribution], [StateDone]):
//
//	seg := scan.NewSegmenter()
//	for _, line := range lines {
//		seg.Feed(line)
//	}
//	sessions, anomalies := seg.Finish()
//
// Session and contribution boundaries may span page breaks; the segmenter's
// rolling window (previous tag plus the open session) carries over from the
// last line of one page to the first line of the next. Structural deviations
// (a session closed with zero contributions, a contribution header before any
// session) are recorded as anomalies, never as errors.
package scan
