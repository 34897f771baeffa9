package drcore

import "github.com/vlsirouter/drcore/model"

// SliceReporter is a model.FeedbackSink that appends to a slice, with
// the transactional trial-buffer API of spec.md §5/§9: a trial's
// records are pushed into an alternate buffer so a speculative
// channel-router attempt can be discarded without polluting
// user-visible feedback.
type SliceReporter struct {
	committed []model.Feedback
	trial     []model.Feedback
	inTrial   bool
}

// NewSliceReporter returns an empty SliceReporter.
func NewSliceReporter() *SliceReporter {
	return &SliceReporter{}
}

// Report appends fb to whichever buffer is currently open: the trial
// buffer if OpenTrial was called and not yet matched by a Commit/Discard,
// the committed buffer otherwise.
func (r *SliceReporter) Report(fb model.Feedback) {
	if r.inTrial {
		r.trial = append(r.trial, fb)
	} else {
		r.committed = append(r.committed, fb)
	}
}

// OpenTrial begins a trial: subsequent Report calls go to the trial
// buffer until CommitTrial or DiscardTrial is called. Nested trials are
// not supported — a caller must fully resolve one before opening
// another (spec.md §5's "re-entrant calls are forbidden").
func (r *SliceReporter) OpenTrial() {
	r.inTrial = true
	r.trial = r.trial[:0]
}

// CommitTrial moves every record accumulated since OpenTrial into the
// committed buffer.
func (r *SliceReporter) CommitTrial() {
	r.committed = append(r.committed, r.trial...)
	r.trial = nil
	r.inTrial = false
}

// DiscardTrial drops every record accumulated since OpenTrial.
func (r *SliceReporter) DiscardTrial() {
	r.trial = nil
	r.inTrial = false
}

// Records returns every committed Feedback record, in report order.
func (r *SliceReporter) Records() []model.Feedback {
	return r.committed
}

// HasErrors reports whether any committed record has SevError severity.
func (r *SliceReporter) HasErrors() bool {
	for _, fb := range r.committed {
		if fb.Severity == model.SevError {
			return true
		}
	}
	return false
}
