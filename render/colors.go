package render

import (
	"strings"

	"github.com/fatih/color"

	"github.com/signadot/docsink/sink"
)

// Class groups kinds that are coloured alike.
type Class int

const (
	OtherClass Class = iota
	SectionClass
	BlockClass
	InlineClass
	TextClass
)

// ClassOf returns the colour class of k.
func ClassOf(k sink.Kind) Class {
	switch k {
	case sink.Section, sink.Section1, sink.Section2, sink.Section3, sink.Section4, sink.Section5,
		sink.SectionTitle, sink.SectionTitle1, sink.SectionTitle2, sink.SectionTitle3,
		sink.SectionTitle4, sink.SectionTitle5:
		return SectionClass
	case sink.Paragraph, sink.List, sink.ListItem, sink.NumberedList, sink.NumberedListItem,
		sink.DefinitionList, sink.DefinitionListItem, sink.DefinedTerm, sink.Definition,
		sink.Table, sink.TableRows, sink.TableRow, sink.TableCell, sink.TableHeaderCell,
		sink.TableCaption, sink.Figure, sink.FigureCaption, sink.Verbatim:
		return BlockClass
	case sink.Bold, sink.Italic, sink.Monospaced, sink.Link, sink.Anchor:
		return InlineClass
	case sink.Text, sink.RawText, sink.Comment:
		return TextClass
	default:
		return OtherClass
	}
}

type Colorable struct {
	Class Class
	Attr  ColorAttr
}

type ColorAttr int

const (
	KindColor ColorAttr = iota
	AttrsColor
	ArgColor
	CloseColor
	ControlColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, c := range []Class{OtherClass, SectionClass, BlockClass, InlineClass, TextClass} {
		able := Colorable{Class: c, Attr: AttrsColor}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = ArgColor
		colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
		able.Attr = CloseColor
		colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()
		able.Attr = ControlColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
	}
	colors.Map[Colorable{Class: SectionClass, Attr: KindColor}] = color.RGB(196, 96, 16).SprintfFunc()
	colors.Map[Colorable{Class: BlockClass, Attr: KindColor}] = color.RGB(128, 168, 196).SprintfFunc()
	colors.Map[Colorable{Class: InlineClass, Attr: KindColor}] = color.CyanString
	colors.Map[Colorable{Class: TextClass, Attr: KindColor}] = color.RGB(128, 216, 236).SprintfFunc()
	colors.Map[Colorable{Class: OtherClass, Attr: KindColor}] = color.RGB(198, 198, 46).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k sink.Kind, a ColorAttr, s string) string {
	return c.Get(ClassOf(k), a)(s)
}

func (c *Colors) Get(cl Class, a ColorAttr) func(string, ...any) string {
	if c == nil {
		return colorDefault
	}
	f := c.Map[Colorable{Class: cl, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
