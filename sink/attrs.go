package sink

import (
	"maps"
	"slices"
	"strings"
)

// AttrID is the identifier attribute name.
const AttrID = "id"

// Attrs is an unordered attribute set attached to an event.
//
// A nil Attrs means no attributes were supplied, which is distinct from a
// non-nil empty set.
type Attrs map[string]string

// Get returns the value of name and whether it is present.
func (a Attrs) Get(name string) (string, bool) {
	if a == nil {
		return "", false
	}
	v, ok := a[name]
	return v, ok
}

// Contains returns true if every pair of required is present in a with an
// equal value. Extra attributes in a are allowed.
func (a Attrs) Contains(required Attrs) bool {
	for name, want := range required {
		got, ok := a.Get(name)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// Equal compares two attribute sets, distinguishing nil from empty.
func (a Attrs) Equal(o Attrs) bool {
	if (a == nil) != (o == nil) {
		return false
	}
	return maps.Equal(a, o)
}

// Clone returns a copy of a, preserving nil.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	return maps.Clone(a)
}

// String renders a in name order, e.g. {class: x, id: intro}.
func (a Attrs) String() string {
	if a == nil {
		return ""
	}
	names := slices.Sorted(maps.Keys(a))
	var sb strings.Builder
	sb.WriteByte('{')
	for i, name := range names {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(a[name])
	}
	sb.WriteByte('}')
	return sb.String()
}
