package classify

import "github.com/hyperifyio/atomizer/internal/element"

// Class names written by the word processor's filtered HTML export.
const (
	ClassParagraph     = "MsoNormal"
	ClassCode          = "Code"
	ClassCodeNumber    = "CodeNumber"
	ClassExercise      = "Exercise"
	ClassSolutionsLink = "SolnsLink"
	ClassQuote         = "Quote"
	ClassBullet        = "Bullet"
	ClassListBullet    = "MsoListBullet"
	ClassListFirst     = "MsoListNumberCxSpFirst"
	ClassListMiddle    = "MsoListNumberCxSpMiddle"
	ClassListLast      = "MsoListNumberCxSpLast"
	ClassListSingle    = "MsoListNumber"
)

// Action is what a base rule does with a node whose class matched.
type Action int

const (
	// Single appends one single-tag element of the rule's Kind.
	Single Action = iota
	// OpenCode opens an Example or CodeFragment depending on whether the
	// node carries a line number.
	OpenCode
	// OpenList opens a NumberedList that stays open until a last item.
	OpenList
	// SingleList is a one-item NumberedList.
	SingleList
	// Unsynchronized marks list continuation classes seen without an open
	// list.
	Unsynchronized
)

// Rule is one entry of the base rule list: a class literal and what to do
// when a tag carries it.
type Rule struct {
	Class  string
	Action Action
	Kind   element.Kind
}

// BaseRules returns the default ordered rule list. The first matching rule
// wins.
func BaseRules() []Rule {
	return []Rule{
		{Class: ClassParagraph, Action: Single, Kind: element.KindParagraph},
		{Class: ClassCode, Action: OpenCode},
		{Class: ClassExercise, Action: Single, Kind: element.KindExercise},
		{Class: ClassSolutionsLink, Action: Single, Kind: element.KindSolutionsLink},
		{Class: ClassQuote, Action: Single, Kind: element.KindQuote},
		{Class: ClassBullet, Action: Single, Kind: element.KindBullet},
		{Class: ClassListBullet, Action: Single, Kind: element.KindBullet},
		{Class: ClassListFirst, Action: OpenList},
		{Class: ClassListSingle, Action: SingleList},
		{Class: ClassListMiddle, Action: Unsynchronized},
		{Class: ClassListLast, Action: Unsynchronized},
	}
}
