// Package evdiff compares event streams line by line.
package evdiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/docsink/render"
	"github.com/signadot/docsink/sink"
)

// ErrTooManyLines is returned when two streams hold more distinct lines
// than there are runes above firstLineRune.
var ErrTooManyLines = errors.New("too many distinct lines")

const (
	firstLineRune = 0xF0000
	maxLines      = 0x110000 - firstLineRune
)

type Op int

const (
	Equal Op = iota
	Delete
	Insert
)

func (o Op) Prefix() string {
	switch o {
	case Delete:
		return "- "
	case Insert:
		return "+ "
	default:
		return "  "
	}
}

type Line struct {
	Op   Op
	Text string
}

// Lines renders events as outline lines.
func Lines(events []sink.Event) ([]string, error) {
	buf := bytes.NewBuffer(nil)
	o := render.NewOutline(buf)
	for i := range events {
		if err := o.Handle(&events[i]); err != nil {
			return nil, err
		}
	}
	if err := o.Flush(); err != nil {
		return nil, err
	}
	s := strings.TrimSuffix(buf.String(), "\n")
	if s == "" {
		return nil, nil
	}
	return strings.Split(s, "\n"), nil
}

// Diff diffs two streams by their outline lines.
func Diff(from, to []sink.Event) ([]Line, error) {
	fl, err := Lines(from)
	if err != nil {
		return nil, err
	}
	tl, err := Lines(to)
	if err != nil {
		return nil, err
	}
	return DiffLines(fl, tl)
}

// DiffLines maps each distinct line to a rune and diffs the rune strings.
func DiffLines(from, to []string) ([]Line, error) {
	lineMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromRunes, err := mapLinesTo(lineMap, runeMap, from)
	if err != nil {
		return nil, err
	}
	toRunes, err := mapLinesTo(lineMap, runeMap, to)
	if err != nil {
		return nil, err
	}
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	var res []Line
	for i := range diffs {
		diff := &diffs[i]
		op := Equal
		switch diff.Type {
		case diffpatch.DiffDelete:
			op = Delete
		case diffpatch.DiffInsert:
			op = Insert
		}
		for _, r := range diff.Text {
			res = append(res, Line{Op: op, Text: runeMap[r]})
		}
	}
	return res, nil
}

// mapLinesTo uses private use runes so no line maps to a surrogate.
func mapLinesTo(m map[string]rune, im map[rune]string, lines []string) ([]rune, error) {
	rs := make([]rune, len(lines))
	for i, l := range lines {
		r, ok := m[l]
		if !ok {
			if len(m) == maxLines {
				return nil, fmt.Errorf("%w: more than %d", ErrTooManyLines, maxLines)
			}
			r = rune(firstLineRune + len(m))
			m[l] = r
			im[r] = l
		}
		rs[i] = r
	}
	return rs, nil
}

// Changed reports whether lines contain any insert or delete.
func Changed(lines []Line) bool {
	for _, l := range lines {
		if l.Op != Equal {
			return true
		}
	}
	return false
}

// Format writes lines with a +/- prefix, colouring changes when colors is
// not nil.
func Format(w io.Writer, lines []Line, colors *render.Colors) error {
	for _, l := range lines {
		s := l.Op.Prefix() + l.Text
		if colors != nil {
			switch l.Op {
			case Delete:
				s = colors.Get(render.OtherClass, render.ControlColor)(s)
			case Insert:
				s = colors.Get(render.TextClass, render.ArgColor)(s)
			}
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}
