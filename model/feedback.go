// Package model holds the narrow collaborator types the core depends
// on but does not own: the net list, the layout-database and
// maze-router interfaces, and the feedback-reporting types. Keeping
// these in their own package lets channel, stem, groute, gcr and
// paintback all refer to them without importing the root package that
// wires concrete implementations together (spec.md §1, §6, §7).
package model

import "github.com/vlsirouter/drcore/grid"

// Severity classifies a Feedback record (spec.md §7).
type Severity int

const (
	SevError Severity = iota
	SevWarning
)

func (s Severity) String() string {
	if s == SevWarning {
		return "warning"
	}
	return "error"
}

// Feedback is one routing-error record: an area, a message, and a
// severity, reported instead of raising an exception (spec.md §7).
type Feedback struct {
	Area     grid.Rect
	Message  string
	Severity Severity
}

// FeedbackSink accumulates Feedback records. Reporter is the name the
// rest of the spec uses for this collaborator; Database-backed
// production implementations live outside the core (spec.md §1's
// Non-goals), so only a minimal in-module implementation is provided
// in the root package for testing (SliceReporter).
type FeedbackSink interface {
	Report(Feedback)
}
