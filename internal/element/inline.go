package element

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/hyperifyio/atomizer/internal/markup"
)

// Span classes with inline meaning.
const (
	ClassCrossRef = "CrossRef"
	ClassCodeChar = "CodeChar"
)

// inlineWriter turns a paragraph's children into inline AsciiDoc. Code
// span contents are stored in codes and only a placeholder reaches the
// text, so prose cleanup never rewrites them. When blocks is non-nil,
// multi-line code spans are collected there instead of being flattened
// into the text.
type inlineWriter struct {
	b      strings.Builder
	codes  *[]string
	blocks *[][]string
}

const (
	codeOpen  = "\ue000"
	codeClose = "\ue001"
)

func newInlineWriter(blocks *[][]string) *inlineWriter {
	return &inlineWriter{codes: &[]string{}, blocks: blocks}
}

// restore swaps the code placeholders in text for the stored code, cleaned
// with fix.
func (w *inlineWriter) restore(text string, fix func(string) string) string {
	if len(*w.codes) == 0 {
		return text
	}
	pairs := make([]string, 0, 2*len(*w.codes))
	for i, code := range *w.codes {
		pairs = append(pairs, codeOpen+strconv.Itoa(i)+codeClose, fix(code))
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

func (w *inlineWriter) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.node(c)
	}
}

func (w *inlineWriter) node(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.b.WriteString(n.Data)
		return
	case html.ElementNode:
	default:
		return
	}
	switch markup.Name(n) {
	case "b", "strong":
		w.wrap(n, "*")
	case "i", "em":
		w.wrap(n, "_")
	case "br":
		w.b.WriteByte(' ')
	case "span":
		switch {
		case isListSpacer(n):
			w.b.WriteByte(' ')
		case markup.HasClass(n, ClassCrossRef):
			w.wrap(n, "#")
		case markup.HasClass(n, ClassCodeChar):
			if w.blocks != nil && markup.Any(n, isBreak) {
				*w.blocks = append(*w.blocks, codeLines(n))
				w.b.WriteByte(' ')
				return
			}
			w.wrap(n, "`")
		default:
			w.children(n)
		}
	default:
		w.children(n)
	}
}

// wrap renders n's children between markers. Markers hug the text; any
// surrounding whitespace stays outside so the markup remains valid. A word
// character on either side needs the doubled, unconstrained marker.
func (w *inlineWriter) wrap(n *html.Node, marker string) {
	inner := &inlineWriter{codes: w.codes, blocks: w.blocks}
	inner.children(n)
	s := inner.b.String()
	core := strings.TrimFunc(s, unicode.IsSpace)
	if core == "" {
		w.b.WriteString(s)
		return
	}
	lead := s[:len(s)-len(strings.TrimLeftFunc(s, unicode.IsSpace))]
	trail := s[len(strings.TrimRightFunc(s, unicode.IsSpace)):]
	if (lead == "" && isWordRune(lastRune(w.b.String()))) ||
		(trail == "" && isWordRune(firstRune(followingText(n)))) {
		marker += marker
	}
	if marker[0] == '`' {
		*w.codes = append(*w.codes, core)
		core = codeOpen + strconv.Itoa(len(*w.codes)-1) + codeClose
	}
	w.b.WriteString(lead)
	w.b.WriteString(marker)
	w.b.WriteString(core)
	w.b.WriteString(marker)
	w.b.WriteString(trail)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// followingText returns the text right after n, climbing out of inline
// parents while n is their last child.
func followingText(n *html.Node) string {
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return markup.Text(n.NextSibling)
		}
		switch markup.Name(n.Parent) {
		case "b", "strong", "i", "em", "span":
		default:
			return ""
		}
	}
	return ""
}

func isBreak(n *html.Node) bool { return markup.Name(n) == "br" }

// isListSpacer matches the tiny-font span Word puts between a list number
// and the item text.
func isListSpacer(n *html.Node) bool {
	return strings.Contains(markup.Attr(n, "style"), "7.0pt")
}

// codeLines returns the text of a code span split on <br>.
func codeLines(n *html.Node) []string {
	var lines []string
	var cur strings.Builder
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.TextNode:
				text := c.Data
				if cur.Len() == 0 {
					text = strings.TrimLeft(text, "\r\n")
				}
				cur.WriteString(text)
			case isBreak(c):
				lines = append(lines, cur.String())
				cur.Reset()
			default:
				walk(c)
			}
		}
	}
	walk(n)
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
