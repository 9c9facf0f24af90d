package element

import (
	"golang.org/x/net/html"
)

// Kind identifies an Element variant.
type Kind int

const (
	KindTextNode Kind = iota
	KindUnclassified
	KindHeading
	KindExerciseHeader
	KindParagraph
	KindQuote
	KindBullet
	KindSolutionsLink
	KindExample
	KindCodeFragment
	KindExercise
	KindNumberedList
)

var kindNames = [...]string{
	KindTextNode:       "TextNode",
	KindUnclassified:   "UnclassifiedTag",
	KindHeading:        "Heading",
	KindExerciseHeader: "ExerciseHeader",
	KindParagraph:      "Paragraph",
	KindQuote:          "Quote",
	KindBullet:         "Bullet",
	KindSolutionsLink:  "SolutionsLink",
	KindExample:        "Example",
	KindCodeFragment:   "CodeFragment",
	KindExercise:       "Exercise",
	KindNumberedList:   "NumberedList",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// AllKinds lists every variant in declaration order.
func AllKinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// Element is one classified unit of chapter content. The set of
// implementations is closed to this package.
type Element interface {
	Kind() Kind
	// Nodes returns the markup nodes the element was built from, in order.
	Nodes() []*html.Node
	cache() *finished
}

// finished holds the rendered text once computed. done distinguishes
// "rendered to empty" from "not rendered yet".
type finished struct {
	done bool
	text string
}

func (f *finished) cache() *finished { return f }

// TextNode is bare text that belongs to no classified construct.
type TextNode struct {
	finished
	Node *html.Node
}

func (*TextNode) Kind() Kind            { return KindTextNode }
func (e *TextNode) Nodes() []*html.Node { return []*html.Node{e.Node} }

// Unclassified is a tag no rule matched.
type Unclassified struct {
	finished
	Tag *html.Node
}

func (*Unclassified) Kind() Kind            { return KindUnclassified }
func (e *Unclassified) Nodes() []*html.Node { return []*html.Node{e.Tag} }

// Heading is an h2 or h3 inside a chapter.
type Heading struct {
	finished
	Level int
	Title *html.Node
}

func (*Heading) Kind() Kind            { return KindHeading }
func (e *Heading) Nodes() []*html.Node { return []*html.Node{e.Title} }

// ExerciseHeader marks an "Exercises" h2 when the dialect asks for it.
type ExerciseHeader struct {
	finished
	Title *html.Node
}

func (*ExerciseHeader) Kind() Kind            { return KindExerciseHeader }
func (e *ExerciseHeader) Nodes() []*html.Node { return []*html.Node{e.Title} }

// Paragraph is a single body-text paragraph.
type Paragraph struct {
	finished
	Tag *html.Node
}

func (*Paragraph) Kind() Kind            { return KindParagraph }
func (e *Paragraph) Nodes() []*html.Node { return []*html.Node{e.Tag} }

type Quote struct {
	finished
	Tag *html.Node
}

func (*Quote) Kind() Kind            { return KindQuote }
func (e *Quote) Nodes() []*html.Node { return []*html.Node{e.Tag} }

type Bullet struct {
	finished
	Tag *html.Node
}

func (*Bullet) Kind() Kind            { return KindBullet }
func (e *Bullet) Nodes() []*html.Node { return []*html.Node{e.Tag} }

// SolutionsLink only exists so downstream tooling can strip it.
type SolutionsLink struct {
	finished
	Tag *html.Node
}

func (*SolutionsLink) Kind() Kind            { return KindSolutionsLink }
func (e *SolutionsLink) Nodes() []*html.Node { return []*html.Node{e.Tag} }

type Exercise struct {
	finished
	Tag *html.Node
}

func (*Exercise) Kind() Kind            { return KindExercise }
func (e *Exercise) Nodes() []*html.Node { return []*html.Node{e.Tag} }

// Example is a contiguous run of line-numbered code paragraphs.
type Example struct {
	finished
	Lines []*html.Node
}

func NewExample(first *html.Node) *Example { return &Example{Lines: []*html.Node{first}} }

func (*Example) Kind() Kind            { return KindExample }
func (e *Example) Nodes() []*html.Node { return e.Lines }
func (e *Example) Append(n *html.Node) { e.Lines = append(e.Lines, n) }

// CodeFragment is a contiguous run of un-numbered code paragraphs.
type CodeFragment struct {
	finished
	Lines []*html.Node
}

func NewCodeFragment(first *html.Node) *CodeFragment {
	return &CodeFragment{Lines: []*html.Node{first}}
}

func (*CodeFragment) Kind() Kind            { return KindCodeFragment }
func (e *CodeFragment) Nodes() []*html.Node { return e.Lines }
func (e *CodeFragment) Append(n *html.Node) { e.Lines = append(e.Lines, n) }

// NumberedList accumulates items from a first marker to a last marker.
type NumberedList struct {
	finished
	Items []*html.Node
}

func NewNumberedList(first *html.Node) *NumberedList {
	return &NumberedList{Items: []*html.Node{first}}
}

func (*NumberedList) Kind() Kind            { return KindNumberedList }
func (e *NumberedList) Nodes() []*html.Node { return e.Items }
func (e *NumberedList) Append(n *html.Node) { e.Items = append(e.Items, n) }
