package filter

import (
	"fmt"

	"github.com/signadot/docsink/sink"
)

// Entry records one open call and the decision taken for it.
type Entry struct {
	Kind     sink.Kind
	Args     []any
	Attrs    sink.Attrs
	Accepted bool
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s%s accepted=%t", e.Kind, attrSuffix(e.Attrs), e.Accepted)
}

func attrSuffix(a sink.Attrs) string {
	if a == nil {
		return ""
	}
	return " " + a.String()
}

// Stack mirrors the open/close structure of the unfiltered stream.
//
// Only paired kinds are pushed. Entries are pushed when opened and popped
// when closed whatever the filter decided for them, so depth and content are
// always what an observer of the whole stream would see.
type Stack struct {
	entries []*Entry
}

// Push adds e on top.
func (s *Stack) Push(e *Entry) {
	s.entries = append(s.entries, e)
}

// Pop removes and returns the top entry, or false when empty.
func (s *Stack) Pop() (*Entry, bool) {
	n := len(s.entries)
	if n == 0 {
		return nil, false
	}
	e := s.entries[n-1]
	s.entries[n-1] = nil
	s.entries = s.entries[:n-1]
	return e, true
}

// Top returns the top entry without removing it.
func (s *Stack) Top() (*Entry, bool) {
	n := len(s.entries)
	if n == 0 {
		return nil, false
	}
	return s.entries[n-1], true
}

// Contains returns true if e itself is still open. An equal entry opened
// later does not count.
func (s *Stack) Contains(e *Entry) bool {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i] == e {
			return true
		}
	}
	return false
}

// Depth returns the number of open paired events (0 = top level).
func (s *Stack) Depth() int {
	return len(s.entries)
}

// Kinds returns the open kinds, outermost first.
func (s *Stack) Kinds() []sink.Kind {
	res := make([]sink.Kind, len(s.entries))
	for i, e := range s.entries {
		res[i] = e.Kind
	}
	return res
}
