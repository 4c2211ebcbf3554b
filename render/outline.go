// Package render provides concrete sinks that render events as text.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/docsink/sink"
)

// Outline writes one line per event, indented by the number of paired
// events open:
//
//	section1 {id: intro}
//	  text "Hello"
//	/section1
type Outline struct {
	w        *bufio.Writer
	colors   *Colors
	controls bool
	indent   string
	depth    int
}

type OutlineOption func(*Outline)

func WithColors(c *Colors) OutlineOption {
	return func(o *Outline) { o.colors = c }
}

// WithControls also writes lifecycle events, as !flush and !shutdown.
func WithControls(v bool) OutlineOption {
	return func(o *Outline) { o.controls = v }
}

func WithIndent(s string) OutlineOption {
	return func(o *Outline) { o.indent = s }
}

func NewOutline(w io.Writer, opts ...OutlineOption) *Outline {
	o := &Outline{w: bufio.NewWriter(w), indent: "  "}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Outline) Handle(e *sink.Event) error {
	switch e.Op {
	case sink.OpOpen:
		o.line(o.open(e))
		if !e.Kind.SelfClosing() {
			o.depth++
		}
	case sink.OpClose:
		if o.depth > 0 {
			o.depth--
		}
		o.line(o.colors.Color(e.Kind, CloseColor, "/"+e.Kind.String()))
	case sink.OpFlush, sink.OpShutdown:
		if o.controls {
			o.line(o.colors.Color(sink.Unknown, ControlColor, "!"+e.Op.String()))
		}
		return o.w.Flush()
	}
	return nil
}

// Flush writes any buffered output.
func (o *Outline) Flush() error {
	return o.w.Flush()
}

func (o *Outline) open(e *sink.Event) string {
	var sb strings.Builder
	sb.WriteString(o.colors.Color(e.Kind, KindColor, e.Kind.String()))
	if e.Attrs != nil {
		sb.WriteByte(' ')
		sb.WriteString(o.colors.Color(e.Kind, AttrsColor, e.Attrs.String()))
	}
	for _, a := range e.Args {
		sb.WriteByte(' ')
		sb.WriteString(o.colors.Color(e.Kind, ArgColor, formatArg(a)))
	}
	return sb.String()
}

func formatArg(a any) string {
	switch x := a.(type) {
	case string:
		return strconv.Quote(x)
	default:
		return fmt.Sprint(x)
	}
}

func (o *Outline) line(s string) {
	for range o.depth {
		o.w.WriteString(o.indent)
	}
	o.w.WriteString(s)
	o.w.WriteByte('\n')
}
