package sink

import (
	"errors"
	"fmt"
)

// Kind is one syntactic construct of the rendering protocol.
type Kind int

const (
	Anchor Kind = iota
	Author
	Body
	Bold
	Comment
	Date
	DefinedTerm
	Definition
	DefinitionList
	DefinitionListItem
	Figure
	FigureCaption
	FigureGraphics
	Head
	HorizontalRule
	Italic
	LineBreak
	Link
	List
	ListItem
	Monospaced
	NonBreakingSpace
	NumberedList
	NumberedListItem
	PageBreak
	Paragraph
	RawText
	Section // leveled; the level is the first arg
	Section1
	Section2
	Section3
	Section4
	Section5
	SectionTitle // leveled; the level is the first arg
	SectionTitle1
	SectionTitle2
	SectionTitle3
	SectionTitle4
	SectionTitle5
	Table
	TableCaption
	TableCell
	TableHeaderCell
	TableRow
	TableRows
	Text
	Title
	Unknown // extension events; the name is the first arg
	Verbatim

	numKinds
)

var ErrUnknownKind = errors.New("unknown kind")

type kindInfo struct {
	name        string
	selfClosing bool
}

var kinds = [numKinds]kindInfo{
	Anchor:             {name: "anchor"},
	Author:             {name: "author"},
	Body:               {name: "body"},
	Bold:               {name: "bold"},
	Comment:            {name: "comment", selfClosing: true},
	Date:               {name: "date"},
	DefinedTerm:        {name: "definedTerm"},
	Definition:         {name: "definition"},
	DefinitionList:     {name: "definitionList"},
	DefinitionListItem: {name: "definitionListItem"},
	Figure:             {name: "figure"},
	FigureCaption:      {name: "figureCaption"},
	FigureGraphics:     {name: "figureGraphics"},
	Head:               {name: "head"},
	HorizontalRule:     {name: "horizontalRule", selfClosing: true},
	Italic:             {name: "italic"},
	LineBreak:          {name: "lineBreak", selfClosing: true},
	Link:               {name: "link"},
	List:               {name: "list"},
	ListItem:           {name: "listItem"},
	Monospaced:         {name: "monospaced"},
	NonBreakingSpace:   {name: "nonBreakingSpace", selfClosing: true},
	NumberedList:       {name: "numberedList"},
	NumberedListItem:   {name: "numberedListItem"},
	PageBreak:          {name: "pageBreak", selfClosing: true},
	Paragraph:          {name: "paragraph"},
	RawText:            {name: "rawText", selfClosing: true},
	Section:            {name: "section"},
	Section1:           {name: "section1"},
	Section2:           {name: "section2"},
	Section3:           {name: "section3"},
	Section4:           {name: "section4"},
	Section5:           {name: "section5"},
	SectionTitle:       {name: "sectionTitle"},
	SectionTitle1:      {name: "sectionTitle1"},
	SectionTitle2:      {name: "sectionTitle2"},
	SectionTitle3:      {name: "sectionTitle3"},
	SectionTitle4:      {name: "sectionTitle4"},
	SectionTitle5:      {name: "sectionTitle5"},
	Table:              {name: "table"},
	TableCaption:       {name: "tableCaption"},
	TableCell:          {name: "tableCell"},
	TableHeaderCell:    {name: "tableHeaderCell"},
	TableRow:           {name: "tableRow"},
	TableRows:          {name: "tableRows"},
	Text:               {name: "text", selfClosing: true},
	Title:              {name: "title"},
	Unknown:            {name: "unknown", selfClosing: true},
	Verbatim:           {name: "verbatim"},
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		m[kinds[k].name] = k
	}
	return m
}()

// Kinds returns every kind, in declaration order.
func Kinds() []Kind {
	res := make([]Kind, numKinds)
	for i := range res {
		res[i] = Kind(i)
	}
	return res
}

// ParseKind returns the kind whose textual name is v.
func ParseKind(v string) (Kind, error) {
	k, ok := kindsByName[v]
	if ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, v)
}

// Valid reports whether k belongs to the vocabulary.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

// SelfClosing returns true if k has no separate close event.
func (k Kind) SelfClosing() bool {
	if !k.Valid() {
		return false
	}
	return kinds[k].selfClosing
}

// IsSection returns true for the section open kinds, leveled or not.
// Section titles are not sections.
func (k Kind) IsSection() bool {
	switch k {
	case Section, Section1, Section2, Section3, Section4, Section5:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kinds[k].name
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(kinds[k].name), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	pk, err := ParseKind(string(d))
	if err != nil {
		return err
	}
	*k = pk
	return nil
}
