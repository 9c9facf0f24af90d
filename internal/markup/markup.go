package markup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ClassSet is the parsed value of a tag's class attribute.
type ClassSet map[string]struct{}

// Has reports whether name is one of the classes.
func (c ClassSet) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// HasAny reports whether any of names is present.
func (c ClassSet) HasAny(names ...string) bool {
	for _, n := range names {
		if c.Has(n) {
			return true
		}
	}
	return false
}

// Classes returns the class set of an element node. The second result is
// false when the node carries no class attribute at all.
func Classes(n *html.Node) (ClassSet, bool) {
	if n == nil || n.Type != html.ElementNode {
		return nil, false
	}
	for _, a := range n.Attr {
		if !strings.EqualFold(a.Key, "class") {
			continue
		}
		set := ClassSet{}
		for _, f := range strings.Fields(a.Val) {
			set[f] = struct{}{}
		}
		return set, true
	}
	return nil, false
}

// HasClass is shorthand for looking up one class on n.
func HasClass(n *html.Node, name string) bool {
	set, _ := Classes(n)
	return set.Has(name)
}

// Attr returns the value of attribute key on n, or "".
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// Name returns the lower-cased tag name of an element node, "" otherwise.
func Name(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.Data)
}

// IsMetadata reports whether n is document-head content such as a title or
// stylesheet. A fragment parsed in a body context keeps these as ordinary
// top-level elements.
func IsMetadata(n *html.Node) bool {
	switch Name(n) {
	case "head", "title", "style", "script", "meta", "link", "base", "xml":
		return true
	}
	return false
}

// Text concatenates all descendant text of n.
func Text(n *html.Node) string {
	var b strings.Builder
	collectText(&b, n)
	return b.String()
}

func collectText(b *strings.Builder, n *html.Node) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
}

// IsNewline reports whether n is a text node holding a single newline.
func IsNewline(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode && n.Data == "\n"
}

// Any reports whether match holds for some descendant of n (n excluded).
func Any(n *html.Node, match func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) || Any(c, match) {
			return true
		}
	}
	return false
}

// ParseFragment parses a chapter body as the children of <body> and returns
// the top-level nodes in document order.
func ParseFragment(body string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(body), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	return nodes, nil
}
