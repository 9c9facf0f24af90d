package classify

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/hyperifyio/atomizer/internal/element"
	"github.com/hyperifyio/atomizer/internal/markup"
)

// ErrListUnsynchronized is returned when numbered-list markers arrive out of
// order: a middle or last item without a first, a list left open at the end
// of a chapter, or a foreign node inside an open list.
var ErrListUnsynchronized = errors.New("classify: numbered list continuation out of sync")

// openKind tags the multi-node construct currently accepting nodes.
type openKind int

const (
	openExample openKind = iota
	openFragment
	openList
)

func (k openKind) String() string {
	switch k {
	case openExample:
		return "continue Example"
	case openFragment:
		return "continue CodeFragment"
	default:
		return "continue NumberedList"
	}
}

type frame struct {
	kind   openKind
	target interface{ Append(*html.Node) }
}

// Options holds dialect switches that affect classification.
type Options struct {
	ExerciseHeadings bool
}

// Classifier turns a chapter's flat sibling nodes into elements. Open
// constructs sit on a stack and are consulted before the base rules.
type Classifier struct {
	rules    []Rule
	opts     Options
	open     []frame
	elements []element.Element
}

// New returns a Classifier over the given base rules.
func New(rules []Rule, opts Options) *Classifier {
	return &Classifier{rules: append([]Rule(nil), rules...), opts: opts}
}

// Reset discards all state so the next chapter starts from the base rules.
func (c *Classifier) Reset() {
	c.open = nil
	c.elements = nil
}

// Run classifies nodes as one chapter.
func (c *Classifier) Run(nodes []*html.Node) ([]element.Element, error) {
	c.Reset()
	for _, n := range nodes {
		if err := c.Classify(n); err != nil {
			return nil, err
		}
	}
	return c.Finish()
}

// Active lists the rule names in priority order: open continuations first,
// then the base rule classes.
func (c *Classifier) Active() []string {
	out := make([]string, 0, len(c.open)+len(c.rules))
	for i := len(c.open) - 1; i >= 0; i-- {
		out = append(out, c.open[i].kind.String())
	}
	for _, r := range c.rules {
		out = append(out, r.Class)
	}
	return out
}

// Elements returns the elements produced so far.
func (c *Classifier) Elements() []element.Element { return c.elements }

// Finish closes every open construct and returns the chapter's elements.
func (c *Classifier) Finish() ([]element.Element, error) {
	for _, f := range c.open {
		if f.kind == openList {
			c.open = nil
			return nil, fmt.Errorf("%w: list still open at end of chapter", ErrListUnsynchronized)
		}
	}
	c.open = nil
	return c.elements, nil
}

// Classify consumes one node.
func (c *Classifier) Classify(n *html.Node) error {
	switch n.Type {
	case html.TextNode:
		if markup.IsNewline(n) {
			return nil
		}
		if strings.TrimSpace(n.Data) != "" {
			if err := c.closeForText(n); err != nil {
				return err
			}
		}
		c.add(&element.TextNode{Node: n})
		return nil
	case html.ElementNode:
	default:
		c.add(&element.Unclassified{Tag: n})
		return nil
	}

	classes, hasClass := markup.Classes(n)
	if done, err := c.continueOpen(n, classes); done || err != nil {
		return err
	}

	switch name := markup.Name(n); name {
	case "h2", "h3":
		if name == "h2" && c.opts.ExerciseHeadings && strings.TrimSpace(markup.Text(n)) == "Exercises" {
			c.add(&element.ExerciseHeader{Title: n})
			return nil
		}
		level := 2
		if name == "h3" {
			level = 3
		}
		c.add(&element.Heading{Level: level, Title: n})
		return nil
	}

	if !hasClass {
		c.add(&element.Unclassified{Tag: n})
		return nil
	}
	for _, r := range c.rules {
		if !classes.Has(r.Class) {
			continue
		}
		return c.apply(r, n)
	}
	c.add(&element.Unclassified{Tag: n})
	return nil
}

// continueOpen offers n to the open constructs, newest first. A code
// construct that does not want n is closed and n falls through; an open
// list must be continued or the input is out of sync.
func (c *Classifier) continueOpen(n *html.Node, classes markup.ClassSet) (bool, error) {
	for len(c.open) > 0 {
		top := c.open[len(c.open)-1]
		switch top.kind {
		case openExample, openFragment:
			if classes.Has(ClassCode) && hasLineNumber(n) == (top.kind == openExample) {
				top.target.Append(n)
				return true, nil
			}
			c.pop()
		case openList:
			switch {
			case classes.Has(ClassListMiddle):
				top.target.Append(n)
				return true, nil
			case classes.Has(ClassListLast):
				top.target.Append(n)
				c.pop()
				return true, nil
			default:
				return false, fmt.Errorf("%w: <%s class=%q> inside an open list",
					ErrListUnsynchronized, markup.Name(n), markup.Attr(n, "class"))
			}
		}
	}
	return false, nil
}

// closeForText ends open code constructs before loose text. Text between
// list items means the list structure is broken.
func (c *Classifier) closeForText(n *html.Node) error {
	for len(c.open) > 0 {
		if c.open[len(c.open)-1].kind == openList {
			text := []rune(strings.TrimSpace(n.Data))
			if len(text) > 40 {
				text = append(text[:40], []rune("...")...)
			}
			return fmt.Errorf("%w: text %q inside an open list", ErrListUnsynchronized, string(text))
		}
		c.pop()
	}
	return nil
}

func (c *Classifier) apply(r Rule, n *html.Node) error {
	switch r.Action {
	case OpenCode:
		if hasLineNumber(n) {
			ex := element.NewExample(n)
			c.add(ex)
			c.push(openExample, ex)
		} else {
			frag := element.NewCodeFragment(n)
			c.add(frag)
			c.push(openFragment, frag)
		}
	case OpenList:
		l := element.NewNumberedList(n)
		c.add(l)
		c.push(openList, l)
	case SingleList:
		c.add(element.NewNumberedList(n))
	case Unsynchronized:
		return fmt.Errorf("%w: %s without an open list", ErrListUnsynchronized, r.Class)
	default:
		e, err := single(r.Kind, n)
		if err != nil {
			return err
		}
		c.add(e)
	}
	return nil
}

func single(k element.Kind, n *html.Node) (element.Element, error) {
	switch k {
	case element.KindParagraph:
		return &element.Paragraph{Tag: n}, nil
	case element.KindExercise:
		return &element.Exercise{Tag: n}, nil
	case element.KindSolutionsLink:
		return &element.SolutionsLink{Tag: n}, nil
	case element.KindQuote:
		return &element.Quote{Tag: n}, nil
	case element.KindBullet:
		return &element.Bullet{Tag: n}, nil
	case element.KindUnclassified:
		return &element.Unclassified{Tag: n}, nil
	}
	return nil, fmt.Errorf("classify: rule kind %v is not a single-tag element", k)
}

func (c *Classifier) add(e element.Element) { c.elements = append(c.elements, e) }

func (c *Classifier) push(k openKind, target interface{ Append(*html.Node) }) {
	c.open = append(c.open, frame{kind: k, target: target})
}

func (c *Classifier) pop() { c.open = c.open[:len(c.open)-1] }

func hasLineNumber(n *html.Node) bool {
	return markup.Any(n, func(d *html.Node) bool {
		return markup.Name(d) == "span" && markup.HasClass(d, ClassCodeNumber)
	})
}
