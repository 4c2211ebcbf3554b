package sink

import (
	"errors"
	"fmt"
	"log/slog"
)

// Op is the operation an event performs on a sink.
type Op int

const (
	// OpOpen opens a paired kind or emits a self-closing one.
	OpOpen Op = iota
	// OpClose closes the most recently opened paired kind.
	OpClose
	OpFlush
	OpShutdown
	// OpLogger hands the sink a logger.
	OpLogger
)

var ErrBadOp = errors.New("bad op")

func (o Op) String() string {
	switch o {
	case OpOpen:
		return "open"
	case OpClose:
		return "close"
	case OpFlush:
		return "flush"
	case OpShutdown:
		return "shutdown"
	case OpLogger:
		return "logger"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

func (o Op) MarshalText() ([]byte, error) {
	switch o {
	case OpOpen, OpClose, OpFlush, OpShutdown, OpLogger:
		return []byte(o.String()), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrBadOp, int(o))
}

func (o *Op) UnmarshalText(d []byte) error {
	po, ok := map[string]Op{
		"open":     OpOpen,
		"close":    OpClose,
		"flush":    OpFlush,
		"shutdown": OpShutdown,
		"logger":   OpLogger,
	}[string(d)]
	if ok {
		*o = po
		return nil
	}
	return fmt.Errorf("%w: %q", ErrBadOp, string(d))
}

// IsControl returns true for lifecycle operations, which carry no kind.
func (o Op) IsControl() bool {
	switch o {
	case OpFlush, OpShutdown, OpLogger:
		return true
	default:
		return false
	}
}

// Event is one call into a sink.
//
// Kind, Attrs and Args are meaningful for OpOpen and OpClose. Args holds the
// positional parameters of the construct (link target, text, section
// level, ...). Logger is only set for OpLogger.
type Event struct {
	Op     Op
	Kind   Kind
	Attrs  Attrs
	Args   []any
	Logger *slog.Logger
}

// Open makes an OpOpen event with no attributes.
func Open(k Kind, args ...any) *Event {
	return &Event{Op: OpOpen, Kind: k, Args: args}
}

// OpenAttrs makes an OpOpen event carrying attrs.
func OpenAttrs(k Kind, attrs Attrs, args ...any) *Event {
	return &Event{Op: OpOpen, Kind: k, Attrs: attrs, Args: args}
}

// Close makes an OpClose event for k.
func Close(k Kind, args ...any) *Event {
	return &Event{Op: OpClose, Kind: k, Args: args}
}

func Flush() *Event {
	return &Event{Op: OpFlush}
}

func Shutdown() *Event {
	return &Event{Op: OpShutdown}
}

func AttachLogger(l *slog.Logger) *Event {
	return &Event{Op: OpLogger, Logger: l}
}

// Check validates the shape of e, not its place in a stream.
func (e *Event) Check() error {
	switch e.Op {
	case OpOpen:
		if !e.Kind.Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownKind, int(e.Kind))
		}
	case OpClose:
		if !e.Kind.Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownKind, int(e.Kind))
		}
		if e.Kind.SelfClosing() {
			return fmt.Errorf("%w: close of self-closing %s", ErrBadOp, e.Kind)
		}
	case OpFlush, OpShutdown, OpLogger:
	default:
		return fmt.Errorf("%w: %d", ErrBadOp, int(e.Op))
	}
	return nil
}

func (e *Event) String() string {
	switch e.Op {
	case OpOpen:
		s := e.Kind.String()
		if e.Attrs != nil {
			s += " " + e.Attrs.String()
		}
		for _, a := range e.Args {
			s += fmt.Sprintf(" %q", fmt.Sprint(a))
		}
		return s
	case OpClose:
		return "/" + e.Kind.String()
	default:
		return "!" + e.Op.String()
	}
}
