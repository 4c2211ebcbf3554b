package filter

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/docsink/sink"
)

func play(t *testing.T, s sink.Sink, evs []*sink.Event) {
	t.Helper()
	for i, e := range evs {
		if err := s.Handle(e); err != nil {
			t.Fatalf("event %d %s: %v", i, e, err)
		}
	}
}

func strs(evs []sink.Event) []string {
	res := make([]string, len(evs))
	for i := range evs {
		res[i] = evs[i].String()
	}
	return res
}

func ptrStrs(evs []*sink.Event) []string {
	res := make([]string, len(evs))
	for i, e := range evs {
		res[i] = e.String()
	}
	return res
}

// checkNested fails unless evs is well nested.
func checkNested(t *testing.T, evs []sink.Event) {
	t.Helper()
	var open []sink.Kind
	for i := range evs {
		e := &evs[i]
		switch e.Op {
		case sink.OpOpen:
			if !e.Kind.SelfClosing() {
				open = append(open, e.Kind)
			}
		case sink.OpClose:
			if len(open) == 0 {
				t.Fatalf("event %d: dangling close %s", i, e)
			}
			if top := open[len(open)-1]; top != e.Kind {
				t.Fatalf("event %d: close %s, open %s", i, e, top)
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) != 0 {
		t.Fatalf("unclosed: %v", open)
	}
}

func docStream() []*sink.Event {
	return []*sink.Event{
		sink.Open(sink.Head),
		sink.Open(sink.Title),
		sink.Open(sink.Text, "A Book"),
		sink.Close(sink.Title),
		sink.Close(sink.Head),
		sink.Open(sink.Body),
		sink.OpenAttrs(sink.Section1, sink.Attrs{"id": "intro"}),
		sink.Open(sink.SectionTitle1),
		sink.Open(sink.Text, "Intro"),
		sink.Close(sink.SectionTitle1),
		sink.Open(sink.Paragraph),
		sink.Open(sink.Text, "see "),
		sink.Open(sink.Link, "#usage"),
		sink.Open(sink.Text, "usage"),
		sink.Close(sink.Link),
		sink.Open(sink.LineBreak),
		sink.Close(sink.Paragraph),
		sink.Open(sink.List),
		sink.Open(sink.ListItem),
		sink.Open(sink.Bold),
		sink.Open(sink.Text, "one"),
		sink.Close(sink.Bold),
		sink.Close(sink.ListItem),
		sink.Close(sink.List),
		sink.Open(sink.Unknown, "callout", []any{"warn"}),
		sink.Close(sink.Section1),
		sink.Open(sink.Section, 2),
		sink.Open(sink.Text, "leveled"),
		sink.Close(sink.Section, 2),
		sink.Close(sink.Body),
		sink.Flush(),
		sink.Shutdown(),
	}
}

func TestTransparency(t *testing.T) {
	rec := &sink.Recorder{}
	f := NewAllow(rec)
	in := docStream()
	play(t, f, in)

	if diff := cmp.Diff(ptrStrs(in), strs(rec.Events)); diff != "" {
		t.Errorf("allow-all changed the stream (-in +out):\n%s", diff)
	}
	for i := range in {
		if diff := cmp.Diff(in[i].Args, rec.Events[i].Args); diff != "" {
			t.Errorf("event %d args changed:\n%s", i, diff)
		}
	}
	if f.Depth() != 0 {
		t.Errorf("expected depth 0 at end, got %d", f.Depth())
	}
}

func TestAllowListKeepsPairs(t *testing.T) {
	rec := &sink.Recorder{}
	f := NewAllow(rec, sink.Section1, sink.Bold, sink.Text)
	play(t, f, docStream())

	want := []string{
		`text "A Book"`,
		"section1 {id: intro}",
		`text "Intro"`,
		`text "see "`,
		`text "usage"`,
		"bold",
		`text "one"`,
		"/bold",
		"/section1",
		`text "leveled"`,
		"!flush",
		"!shutdown",
	}
	if diff := cmp.Diff(want, strs(rec.Events)); diff != "" {
		t.Errorf("allow-list output (-want +got):\n%s", diff)
	}
	checkNested(t, rec.Events)
}

// genStream produces a random well nested stream.
func genStream(r *rand.Rand, depth int, out []*sink.Event) []*sink.Event {
	kinds := sink.Kinds()
	n := r.IntN(5)
	for range n {
		k := kinds[r.IntN(len(kinds))]
		var attrs sink.Attrs
		if r.IntN(3) == 0 {
			attrs = sink.Attrs{"id": string(rune('a' + r.IntN(4)))}
		}
		out = append(out, sink.OpenAttrs(k, attrs))
		if k.SelfClosing() {
			continue
		}
		if depth < 4 {
			out = genStream(r, depth+1, out)
		}
		out = append(out, sink.Close(k))
	}
	return out
}

func TestBalanceInvariant(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	kinds := sink.Kinds()
	for i := range 200 {
		in := genStream(r, 0, nil)
		var allow []sink.Kind
		for _, k := range kinds {
			if r.IntN(2) == 0 {
				allow = append(allow, k)
			}
		}
		if len(allow) == 0 {
			allow = append(allow, sink.Paragraph)
		}
		rec := &sink.Recorder{}
		f := NewAllow(rec, allow...)
		for _, e := range in {
			if err := f.Handle(e); err != nil {
				t.Fatalf("run %d: %v", i, err)
			}
		}
		checkNested(t, rec.Events)
		if f.Depth() != 0 {
			t.Fatalf("run %d: depth %d at end", i, f.Depth())
		}
	}
}

func TestStackTracksRejected(t *testing.T) {
	f := NewAllow(sink.Nop{}, sink.Text)
	play(t, f, []*sink.Event{
		sink.Open(sink.Body),
		sink.Open(sink.Section1),
		sink.Open(sink.Text, "x"),
	})
	if diff := cmp.Diff([]sink.Kind{sink.Body, sink.Section1}, f.Stack().Kinds()); diff != "" {
		t.Errorf("stack (-want +got):\n%s", diff)
	}
}

func TestCloseOnEmptyStack(t *testing.T) {
	f := NewAllow(sink.Nop{})
	err := f.Handle(sink.Close(sink.Paragraph))
	if !errors.Is(err, ErrEmptyStack) {
		t.Fatalf("expected ErrEmptyStack, got %v", err)
	}
	var se *StateError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StateError, got %T", err)
	}
	if se.Kind != sink.Paragraph {
		t.Errorf("expected paragraph, got %s", se.Kind)
	}
}

func TestMismatchedClose(t *testing.T) {
	f := NewAllow(sink.Nop{})
	play(t, f, []*sink.Event{sink.Open(sink.List)})
	err := f.Handle(sink.Close(sink.Table))
	if !errors.Is(err, ErrMismatchedClose) {
		t.Fatalf("expected ErrMismatchedClose, got %v", err)
	}
	if f.Depth() != 1 {
		t.Errorf("mismatched close should not pop, depth %d", f.Depth())
	}
}

func TestControlsAlwaysForwarded(t *testing.T) {
	rec := &sink.Recorder{}
	f := NewRange(rec, sink.Table, nil)
	l := slog.Default()
	play(t, f, []*sink.Event{
		sink.Open(sink.Paragraph),
		sink.Flush(),
		sink.AttachLogger(l),
		sink.Close(sink.Paragraph),
		sink.Shutdown(),
	})
	want := []string{"!flush", "!logger", "!shutdown"}
	if diff := cmp.Diff(want, strs(rec.Events)); diff != "" {
		t.Errorf("controls (-want +got):\n%s", diff)
	}
	if rec.Events[1].Logger != l {
		t.Error("logger not forwarded")
	}
}

func TestDelegateErrorReturned(t *testing.T) {
	boom := errors.New("boom")
	f := NewAllow(sink.Func(func(*sink.Event) error { return boom }))
	if err := f.Handle(sink.Open(sink.Text, "x")); !errors.Is(err, boom) {
		t.Errorf("expected delegate error, got %v", err)
	}
}

func TestAllowSetEdit(t *testing.T) {
	s := NewAllowSet(sink.Text)
	s.Add(sink.Bold)
	s.Remove(sink.Text)
	if !s.Has(sink.Bold) || s.Has(sink.Text) {
		t.Errorf("unexpected set contents")
	}
}
