package filter

import (
	"errors"
	"fmt"

	"github.com/signadot/docsink/sink"
)

var (
	// ErrEmptyStack is a close with nothing open.
	ErrEmptyStack = errors.New("close with no open event")
	// ErrMismatchedClose is a close whose kind differs from the innermost open kind.
	ErrMismatchedClose = errors.New("close does not match open event")
)

// StateError reports a producer that broke the nesting contract. The
// filter's state is no longer meaningful once one is returned.
type StateError struct {
	Kind  sink.Kind
	Open  sink.Kind // innermost open kind, if any
	Depth int
	Err   error
}

func (e *StateError) Error() string {
	if errors.Is(e.Err, ErrMismatchedClose) {
		return fmt.Sprintf("%v: /%s at depth %d, open %s", e.Err, e.Kind, e.Depth, e.Open)
	}
	return fmt.Sprintf("%v: /%s at depth %d", e.Err, e.Kind, e.Depth)
}

func (e *StateError) Unwrap() error {
	return e.Err
}
