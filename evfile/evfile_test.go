package evfile

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/docsink/filter"
	"github.com/signadot/docsink/sink"
)

const doc = `
- kind: body
- kind: section
  attrs: {id: intro}
  args: [1]
- kind: text
  args: ["Hello, world"]
- op: close
  kind: section
  args: [1]
- kind: unknown
  args: [callout, [warn, 2]]
- op: close
  kind: body
- op: flush
`

func eventStrs(evs []sink.Event) []string {
	res := make([]string, len(evs))
	for i := range evs {
		res[i] = evs[i].String()
	}
	return res
}

func TestDecode(t *testing.T) {
	evs, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"body",
		`section {id: intro} "1"`,
		`text "Hello, world"`,
		"/section",
		`unknown "callout" "[warn 2]"`,
		"/body",
		"!flush",
	}
	if diff := cmp.Diff(want, eventStrs(evs)); diff != "" {
		t.Errorf("decoded (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{1}, evs[1].Args); diff != "" {
		t.Errorf("section level should decode as int:\n%s", diff)
	}
	if evs[0].Attrs != nil {
		t.Errorf("absent attrs should stay nil, got %v", evs[0].Attrs)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown kind", "- kind: chapter\n"},
		{"unknown op", "- op: reopen\n  kind: body\n"},
		{"close self-closing", "- op: close\n  kind: text\n"},
		{"control with kind", "- op: flush\n  kind: body\n"},
		{"not a list", "kind: body\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.doc))
			if !errors.Is(err, ErrBadEvent) {
				t.Errorf("expected ErrBadEvent, got %v", err)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	in, err := Unmarshal([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range []Format{YAMLFormat, JSONFormat} {
		t.Run(f.String(), func(t *testing.T) {
			d, err := Marshal(in, f)
			if err != nil {
				t.Fatal(err)
			}
			out, err := Unmarshal(d)
			if err != nil {
				t.Fatalf("%v\n%s", err, d)
			}
			if diff := cmp.Diff(eventStrs(in), eventStrs(out)); diff != "" {
				t.Errorf("round trip (-in +out):\n%s", diff)
			}
		})
	}
}

func TestMarshalKeepsEmptyAttrs(t *testing.T) {
	in := []sink.Event{
		*sink.OpenAttrs(sink.Paragraph, sink.Attrs{}),
		*sink.Open(sink.Text, "x"),
		*sink.Close(sink.Paragraph),
		*sink.Open(sink.Paragraph),
		*sink.Close(sink.Paragraph),
	}
	for _, f := range []Format{YAMLFormat, JSONFormat} {
		t.Run(f.String(), func(t *testing.T) {
			d, err := Marshal(in, f)
			if err != nil {
				t.Fatal(err)
			}
			out, err := Unmarshal(d)
			if err != nil {
				t.Fatalf("%v\n%s", err, d)
			}
			if len(out) != len(in) {
				t.Fatalf("got %d events\n%s", len(out), d)
			}
			if out[0].Attrs == nil {
				t.Errorf("empty attrs decoded as absent:\n%s", d)
			}
			if out[3].Attrs != nil {
				t.Errorf("absent attrs decoded as %v:\n%s", out[3].Attrs, d)
			}
			// an empty required set only admits present attrs
			rec := &sink.Recorder{}
			if err := Play(out, filter.NewRange(rec, sink.Paragraph, sink.Attrs{})); err != nil {
				t.Fatal(err)
			}
			want := []string{"paragraph {}", `text "x"`, "/paragraph"}
			if diff := cmp.Diff(want, eventStrs(rec.Events)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlayThroughRange(t *testing.T) {
	evs, err := Unmarshal([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	rec := &sink.Recorder{}
	f := filter.NewRange(rec, sink.Section, sink.Attrs{"id": "intro"})
	if err := Play(evs, f); err != nil {
		t.Fatal(err)
	}
	want := []string{`section {id: intro} "1"`, `text "Hello, world"`, "/section", "!flush"}
	if diff := cmp.Diff(want, eventStrs(rec.Events)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestPlayReportsIndex(t *testing.T) {
	evs, err := Unmarshal([]byte("- kind: body\n- op: close\n  kind: list\n"))
	if err != nil {
		t.Fatal(err)
	}
	err = Play(evs, filter.NewAllow(sink.Nop{}))
	if !errors.Is(err, filter.ErrMismatchedClose) {
		t.Fatalf("expected ErrMismatchedClose, got %v", err)
	}
	if !strings.Contains(err.Error(), "event 1") {
		t.Errorf("error should name the event index: %v", err)
	}
}

func TestWriter(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	w := NewWriter(buf, YAMLFormat)
	p := Parser{}
	if err := p.Parse(strings.NewReader(doc), w); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("writer wrote before shutdown:\n%s", buf)
	}
	if err := w.Handle(sink.Shutdown()); err != nil {
		t.Fatal(err)
	}
	out, err := Unmarshal(buf.Bytes())
	if err != nil {
		t.Fatalf("%v\n%s", err, buf)
	}
	if n := len(out); n != 8 {
		t.Errorf("expected 8 events, got %d", n)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestFormat(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Format
	}{
		{"y", YAMLFormat},
		{"yaml", YAMLFormat},
		{"j", JSONFormat},
		{"json", JSONFormat},
	} {
		f, err := ParseFormat(tc.in)
		if err != nil {
			t.Fatal(err)
		}
		if f != tc.want {
			t.Errorf("%q: got %s want %s", tc.in, f, tc.want)
		}
	}
	if _, err := ParseFormat("tony"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
	if f := FormatOf("out/events.json"); f != JSONFormat {
		t.Errorf("got %s", f)
	}
	if f := FormatOf("events.evy"); f != YAMLFormat {
		t.Errorf("got %s", f)
	}
}
