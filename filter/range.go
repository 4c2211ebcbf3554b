package filter

import (
	"fmt"

	"github.com/signadot/docsink/sink"
)

// Progress is how far a Range has got with its target.
type Progress int

const (
	NotSeen Progress = iota
	Open
	Closed
)

func (p Progress) String() string {
	switch p {
	case NotSeen:
		return "not-seen"
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("Progress(%d)", int(p))
	}
}

// Range admits the span from the first occurrence of a target kind
// through its matching close, inclusive, and rejects everything else.
//
// A Range is single use: once its span has closed it rejects every later
// event, including later occurrences of the target.
type Range struct {
	target   sink.Kind
	required sink.Attrs

	progress Progress
	matched  *Entry
}

// NewRangeDecider makes a Range for target. A nil required set is ignored;
// otherwise a candidate must carry every required pair with an equal value.
func NewRangeDecider(target sink.Kind, required sink.Attrs) *Range {
	return &Range{target: target, required: required}
}

// NewRange makes a Filter around a Range decider.
func NewRange(delegate sink.Sink, target sink.Kind, required sink.Attrs, opts ...Option) *Filter {
	return New(delegate, NewRangeDecider(target, required), opts...)
}

func (r *Range) Target() sink.Kind { return r.target }
func (r *Range) Required() sink.Attrs { return r.required }
func (r *Range) Progress() Progress { return r.progress }
func (r *Range) Matched() (*Entry, bool) { return r.matched, r.matched != nil }

// Decide runs the match automaton.
//
// The end of the span is noticed lazily: after the target's close has been
// popped, the Range stays Open until the next Decide call finds the target
// gone from the stack.
func (r *Range) Decide(stack *Stack, e *Entry) bool {
	switch {
	case r.progress == NotSeen && e.Kind == r.target:
		if r.required != nil && (e.Attrs == nil || !e.Attrs.Contains(r.required)) {
			return false
		}
		r.matched = e
		r.progress = Open
		if e.Kind.SelfClosing() {
			r.progress = Closed
		}
		return true
	case r.progress == Open && stack.Contains(r.matched):
		return true
	case r.progress == Open:
		r.progress = Closed
		return false
	default:
		return false
	}
}

func (r *Range) String() string {
	return fmt.Sprintf("Range{target=%s%s progress=%s}", r.target, attrSuffix(r.required), r.progress)
}
