package sink

// Sink consumes rendering events.
//
// A sink has exactly one writer. Handle is called synchronously by the
// producer in document order and must not retain e past the call unless it
// copies it.
type Sink interface {
	Handle(e *Event) error
}

// Func adapts a function to a Sink.
type Func func(e *Event) error

func (f Func) Handle(e *Event) error { return f(e) }

// Nop is the default sink: it accepts every event and does nothing.
type Nop struct{}

func (Nop) Handle(*Event) error { return nil }

// Mux is a capability table. Events whose kind (or control op) has no
// registered handler are no-ops.
type Mux struct {
	open    map[Kind]Func
	close   map[Kind]Func
	control map[Op]Func
}

// NewMux returns an empty Mux, equivalent to Nop until handlers are added.
func NewMux() *Mux {
	return &Mux{
		open:    map[Kind]Func{},
		close:   map[Kind]Func{},
		control: map[Op]Func{},
	}
}

// OnOpen registers f for OpOpen events of the given kinds.
func (m *Mux) OnOpen(f Func, ks ...Kind) *Mux {
	for _, k := range ks {
		m.open[k] = f
	}
	return m
}

// OnClose registers f for OpClose events of the given kinds.
func (m *Mux) OnClose(f Func, ks ...Kind) *Mux {
	for _, k := range ks {
		m.close[k] = f
	}
	return m
}

// OnControl registers f for lifecycle events with the given ops.
func (m *Mux) OnControl(f Func, ops ...Op) *Mux {
	for _, op := range ops {
		m.control[op] = f
	}
	return m
}

func (m *Mux) Handle(e *Event) error {
	var f Func
	switch e.Op {
	case OpOpen:
		f = m.open[e.Kind]
	case OpClose:
		f = m.close[e.Kind]
	default:
		f = m.control[e.Op]
	}
	if f == nil {
		return nil
	}
	return f(e)
}

// Recorder keeps a copy of every event it receives.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Handle(e *Event) error {
	c := *e
	c.Attrs = e.Attrs.Clone()
	if e.Args != nil {
		c.Args = append([]any(nil), e.Args...)
	}
	r.Events = append(r.Events, c)
	return nil
}

// Reset drops the recorded events.
func (r *Recorder) Reset() {
	r.Events = nil
}
