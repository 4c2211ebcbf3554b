package render

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/docsink/filter"
	"github.com/signadot/docsink/sink"
)

func TestOutline(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	o := NewOutline(buf)
	evs := []*sink.Event{
		sink.OpenAttrs(sink.Section1, sink.Attrs{"id": "intro", "class": "x"}),
		sink.Open(sink.Paragraph),
		sink.Open(sink.Text, "Hello"),
		sink.Open(sink.LineBreak),
		sink.Open(sink.NumberedList, 3),
		sink.Close(sink.NumberedList),
		sink.Close(sink.Paragraph),
		sink.Close(sink.Section1),
		sink.Flush(),
	}
	for _, e := range evs {
		if err := o.Handle(e); err != nil {
			t.Fatal(err)
		}
	}
	want := `section1 {class: x, id: intro}
  paragraph
    text "Hello"
    lineBreak
    numberedList 3
    /numberedList
  /paragraph
/section1
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("outline (-want +got):\n%s", diff)
	}
}

func TestOutlineBehindRange(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	o := NewOutline(buf, WithControls(true), WithIndent("\t"))
	f := filter.NewRange(o, sink.List, nil)
	evs := []*sink.Event{
		sink.Open(sink.Body),
		sink.Open(sink.Paragraph),
		sink.Close(sink.Paragraph),
		sink.Open(sink.List),
		sink.Open(sink.ListItem),
		sink.Open(sink.Text, "one"),
		sink.Close(sink.ListItem),
		sink.Close(sink.List),
		sink.Close(sink.Body),
		sink.Shutdown(),
	}
	for _, e := range evs {
		if err := f.Handle(e); err != nil {
			t.Fatal(err)
		}
	}
	want := "list\n\tlistItem\n\t\ttext \"one\"\n\t/listItem\n/list\n!shutdown\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("outline (-want +got):\n%s", diff)
	}
}

func TestNilColorsPassThrough(t *testing.T) {
	var c *Colors
	if got := c.Color(sink.Text, KindColor, "text"); got != "text" {
		t.Errorf("got %q", got)
	}
}
