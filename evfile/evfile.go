// Package evfile reads and writes event documents.
//
// An event document is a YAML (or JSON) sequence of records, one per sink
// call:
//
//	- kind: section1
//	  attrs: {id: intro}
//	- kind: text
//	  args: [Hello]
//	- op: close
//	  kind: section1
//	- op: flush
//
// op defaults to open. Event documents stand in for a real markup parser
// when driving sinks from files.
package evfile

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/goccy/go-yaml"

	"github.com/signadot/docsink/debug"
	"github.com/signadot/docsink/sink"
)

var ErrBadEvent = errors.New("bad event")

type record struct {
	Op    string            `yaml:"op,omitempty"`
	Kind  string            `yaml:"kind,omitempty"`
	Attrs map[string]string `yaml:"attrs,omitempty"`
	Args  []any             `yaml:"args,omitempty"`
}

// Decode reads an event document.
func Decode(r io.Reader) ([]sink.Event, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(d)
}

func Unmarshal(d []byte) ([]sink.Event, error) {
	var recs []record
	if err := yaml.Unmarshal(d, &recs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadEvent, err)
	}
	res := make([]sink.Event, len(recs))
	for i := range recs {
		if err := fromRecord(&res[i], &recs[i]); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrBadEvent, i, err)
		}
	}
	return res, nil
}

func fromRecord(e *sink.Event, r *record) error {
	op := sink.OpOpen
	if r.Op != "" {
		if err := op.UnmarshalText([]byte(r.Op)); err != nil {
			return err
		}
	}
	e.Op = op
	if op == sink.OpLogger {
		return fmt.Errorf("%w: logger cannot be serialised", sink.ErrBadOp)
	}
	if op.IsControl() {
		if r.Kind != "" {
			return fmt.Errorf("%s takes no kind", op)
		}
		return nil
	}
	if err := e.Kind.UnmarshalText([]byte(r.Kind)); err != nil {
		return err
	}
	if r.Attrs != nil {
		e.Attrs = sink.Attrs(r.Attrs)
	}
	for _, a := range r.Args {
		e.Args = append(e.Args, normalizeArg(a))
	}
	return e.Check()
}

// normalizeArg turns decoded integers into int so that they compare equal
// to the args a producer passes in code.
func normalizeArg(a any) any {
	switch x := a.(type) {
	case uint64:
		if x <= math.MaxInt {
			return int(x)
		}
	case int64:
		if x >= math.MinInt && x <= math.MaxInt {
			return int(x)
		}
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = normalizeArg(x[i])
		}
		return res
	}
	return a
}

// MarshalYAML keeps attrs whenever they are present, even empty, so that
// decoding restores a non-nil set.
func (r record) MarshalYAML() (any, error) {
	var ms yaml.MapSlice
	if r.Op != "" {
		ms = append(ms, yaml.MapItem{Key: "op", Value: r.Op})
	}
	if r.Kind != "" {
		ms = append(ms, yaml.MapItem{Key: "kind", Value: r.Kind})
	}
	if r.Attrs != nil {
		ms = append(ms, yaml.MapItem{Key: "attrs", Value: r.Attrs})
	}
	if len(r.Args) != 0 {
		ms = append(ms, yaml.MapItem{Key: "args", Value: r.Args})
	}
	return ms, nil
}

func toRecord(e *sink.Event) (record, error) {
	if err := e.Check(); err != nil {
		return record{}, err
	}
	if e.Op == sink.OpLogger {
		return record{}, fmt.Errorf("%w: logger cannot be serialised", sink.ErrBadOp)
	}
	r := record{}
	if e.Op != sink.OpOpen {
		r.Op = e.Op.String()
	}
	if e.Op.IsControl() {
		return r, nil
	}
	r.Kind = e.Kind.String()
	r.Attrs = e.Attrs
	r.Args = e.Args
	return r, nil
}

// Marshal serialises events in format f.
func Marshal(events []sink.Event, f Format) ([]byte, error) {
	recs := make([]record, 0, len(events))
	for i := range events {
		r, err := toRecord(&events[i])
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		recs = append(recs, r)
	}
	switch f {
	case JSONFormat:
		return yaml.MarshalWithOptions(recs, yaml.JSON())
	default:
		return yaml.Marshal(recs)
	}
}

// Encode writes events to w.
func Encode(w io.Writer, events []sink.Event, f Format) error {
	d, err := Marshal(events, f)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

// Play replays events into s, stopping at the first error.
func Play(events []sink.Event, s sink.Sink) error {
	for i := range events {
		e := &events[i]
		if debug.Play() {
			debug.Logf("play %d %s\n", i, e)
		}
		if err := s.Handle(e); err != nil {
			return fmt.Errorf("event %d (%s): %w", i, e, err)
		}
	}
	return nil
}

// Parser parses event documents into a sink.
type Parser struct{}

func (Parser) Parse(r io.Reader, s sink.Sink) error {
	events, err := Decode(r)
	if err != nil {
		return err
	}
	return Play(events, s)
}

// Writer is a sink that serialises what it receives to an io.Writer when
// it is shut down or closed.
type Writer struct {
	w      io.Writer
	format Format
	rec    sink.Recorder
	done   bool
}

func NewWriter(w io.Writer, f Format) *Writer {
	return &Writer{w: w, format: f}
}

func (w *Writer) Handle(e *sink.Event) error {
	switch e.Op {
	case sink.OpShutdown:
		if err := w.rec.Handle(e); err != nil {
			return err
		}
		return w.Close()
	case sink.OpLogger:
		return nil
	default:
		return w.rec.Handle(e)
	}
}

// Close writes the document. Later calls do nothing.
func (w *Writer) Close() error {
	if w.done {
		return nil
	}
	w.done = true
	return Encode(w.w, w.rec.Events, w.format)
}
