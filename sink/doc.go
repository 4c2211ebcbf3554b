// Package sink defines the document rendering event protocol.
//
// A producer renders a document by pushing a sequence of events into a Sink,
// in document order. Each event names a Kind from a closed vocabulary. Paired
// kinds (sections, lists, tables, ...) are opened with an OpOpen event and
// must later be closed by exactly one OpClose event of the same kind.
// Self-closing kinds (text, comments, line breaks, ...) are a single OpOpen
// event with no close.
//
// # Example
//
//	s.Handle(sink.OpenAttrs(sink.Section1, sink.Attrs{sink.AttrID: "intro"}))
//	s.Handle(sink.Open(sink.Text, "Hello"))
//	s.Handle(sink.Close(sink.Section1))
//	s.Handle(sink.Flush())
//
// Lifecycle events (OpFlush, OpShutdown, OpLogger) carry no kind and are not
// part of the open/close structure.
//
// Sinks that only care about some kinds can use a Mux, which defaults every
// kind to a no-op.
package sink
