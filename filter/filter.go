package filter

import (
	"context"
	"io"
	"log/slog"

	"github.com/signadot/docsink/debug"
	"github.com/signadot/docsink/sink"
)

// Decider decides whether an open or self-closing event is admitted.
//
// Decide is called after a paired entry has been pushed on stack, so the
// stack already includes e. Close events never reach a Decider: the
// decision recorded on the open entry is replayed when it is popped.
type Decider interface {
	Decide(stack *Stack, e *Entry) bool
}

// DeciderFunc adapts a function to a Decider.
type DeciderFunc func(stack *Stack, e *Entry) bool

func (f DeciderFunc) Decide(stack *Stack, e *Entry) bool { return f(stack, e) }

// Filter forwards a well nested subsequence of its input to a delegate sink.
//
// Every admitted open reaches the delegate together with its matching close,
// and no close reaches the delegate without its open. Lifecycle events are
// always forwarded.
type Filter struct {
	delegate sink.Sink
	decider  Decider
	stack    Stack
	log      *slog.Logger
}

type Option func(*Filter)

// WithLogger sets the logger used for decision tracing.
func WithLogger(l *slog.Logger) Option {
	return func(f *Filter) {
		f.log = l
	}
}

// New makes a Filter admitting what d decides.
func New(delegate sink.Sink, d Decider, opts ...Option) *Filter {
	f := &Filter{
		delegate: delegate,
		decider:  d,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(f)
	}
	f.setLogger(f.log)
	return f
}

type logSetter interface {
	setLogger(*slog.Logger)
}

func (f *Filter) setLogger(l *slog.Logger) {
	f.log = l
	if ls, ok := f.decider.(logSetter); ok {
		ls.setLogger(l)
	}
}

// NewAllow makes a Filter admitting only the given kinds. With no kinds it
// admits everything and is a transparent proxy.
func NewAllow(delegate sink.Sink, kinds ...sink.Kind) *Filter {
	return New(delegate, NewAllowSet(kinds...))
}

// Handle implements sink.Sink.
func (f *Filter) Handle(e *sink.Event) error {
	switch e.Op {
	case sink.OpOpen:
		if !f.decide(e) {
			return nil
		}
		return f.delegate.Handle(e)
	case sink.OpClose:
		accepted, err := f.pop(e.Kind)
		if err != nil {
			return err
		}
		if !accepted {
			return nil
		}
		return f.delegate.Handle(e)
	case sink.OpLogger:
		if e.Logger != nil {
			f.setLogger(e.Logger)
		}
		return f.delegate.Handle(e)
	default:
		return f.delegate.Handle(e)
	}
}

func (f *Filter) decide(e *sink.Event) bool {
	entry := &Entry{Kind: e.Kind, Args: e.Args, Attrs: e.Attrs}
	if !e.Kind.SelfClosing() {
		f.stack.Push(entry)
	}
	entry.Accepted = f.decider.Decide(&f.stack, entry)
	if debug.Filter() {
		f.log.Log(context.Background(), slog.LevelDebug, "decide",
			"event", e.String(), "depth", f.stack.Depth(), "accepted", entry.Accepted)
	}
	return entry.Accepted
}

func (f *Filter) pop(k sink.Kind) (bool, error) {
	top, ok := f.stack.Top()
	if !ok {
		return false, &StateError{Kind: k, Err: ErrEmptyStack}
	}
	if top.Kind != k {
		return false, &StateError{Kind: k, Open: top.Kind, Depth: f.stack.Depth(), Err: ErrMismatchedClose}
	}
	f.stack.Pop()
	return top.Accepted, nil
}

// Depth returns the number of open paired events seen by f, admitted or not.
func (f *Filter) Depth() int {
	return f.stack.Depth()
}

// Stack returns the shadow stack. It must not be modified.
func (f *Filter) Stack() *Stack {
	return &f.stack
}

// Decider returns the decider f was built with.
func (f *Filter) Decider() Decider {
	return f.decider
}

// AllowSet admits events whose kind is in the set.
type AllowSet struct {
	kinds map[sink.Kind]bool
}

// NewAllowSet makes a set of the given kinds, or of every kind if none are given.
func NewAllowSet(kinds ...sink.Kind) *AllowSet {
	if len(kinds) == 0 {
		kinds = sink.Kinds()
	}
	s := &AllowSet{kinds: make(map[sink.Kind]bool, len(kinds))}
	for _, k := range kinds {
		s.kinds[k] = true
	}
	return s
}

func (s *AllowSet) Add(k sink.Kind) { s.kinds[k] = true }
func (s *AllowSet) Remove(k sink.Kind) { delete(s.kinds, k) }
func (s *AllowSet) Has(k sink.Kind) bool { return s.kinds[k] }

func (s *AllowSet) Decide(_ *Stack, e *Entry) bool {
	return s.kinds[e.Kind]
}
