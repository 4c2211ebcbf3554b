// Package sectionid collects section identifiers from an event stream.
package sectionid

import (
	"strings"

	"github.com/signadot/docsink/sink"
)

// Collector records the id attribute of every section it sees, in document
// order. Blank ids are skipped. It forwards nothing.
type Collector struct {
	mux *sink.Mux
	ids []string
}

func NewCollector() *Collector {
	c := &Collector{}
	c.mux = sink.NewMux().OnOpen(c.section,
		sink.Section, sink.Section1, sink.Section2, sink.Section3, sink.Section4, sink.Section5)
	return c
}

func (c *Collector) section(e *sink.Event) error {
	id, ok := e.Attrs.Get(sink.AttrID)
	if ok && strings.TrimSpace(id) != "" {
		c.ids = append(c.ids, id)
	}
	return nil
}

func (c *Collector) Handle(e *sink.Event) error {
	return c.mux.Handle(e)
}

// IDs returns the collected identifiers.
func (c *Collector) IDs() []string {
	return c.ids
}

func (c *Collector) Reset() {
	c.ids = nil
}
