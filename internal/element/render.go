package element

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/hyperifyio/atomizer/internal/clean"
	"github.com/hyperifyio/atomizer/internal/dialect"
	"github.com/hyperifyio/atomizer/internal/markup"
)

var (
	leadingNumberRe = regexp.MustCompile(`^(\d+)\.\s*`)
	leadingBulletRe = regexp.MustCompile(`^[·•§*]\s*`)
)

// Render returns the AsciiDoc text for e. The first call computes and
// caches the result; later calls return the cached text unchanged.
func Render(e Element, d dialect.Dialect) string {
	c := e.cache()
	if c.done {
		return c.text
	}
	c.text = render(e, d)
	c.done = true
	return c.text
}

func render(e Element, d dialect.Dialect) string {
	switch v := e.(type) {
	case *TextNode:
		return strings.TrimSpace(clean.Clean(v.Node.Data, clean.Options{Profile: d.Profile}))
	case *Unclassified:
		if markup.IsMetadata(v.Tag) {
			return ""
		}
		return plainText(v.Tag, d)
	case *Heading:
		return heading(plainText(v.Title, d), v.Level)
	case *ExerciseHeader:
		return heading("Exercises", 2)
	case *Paragraph:
		return prefixed(d.ParagraphMarker, inlineText(v.Tag, d))
	case *Quote:
		text := inlineText(v.Tag, d)
		if text == "" {
			return ""
		}
		return "____\n" + text + "\n____"
	case *Bullet:
		text := leadingBulletRe.ReplaceAllString(inlineText(v.Tag, d), "")
		return prefixed(d.BulletMarker, text)
	case *SolutionsLink:
		return ""
	case *Example:
		return listing(d.Language+",linenums", codeText(v.Lines, d.ExampleTrim, d))
	case *CodeFragment:
		return listing(d.Language, codeText(v.Lines, d.FragmentTrim, d))
	case *Exercise:
		return exercise(v.Tag, d)
	case *NumberedList:
		return numberedList(v.Items, d)
	default:
		panic(fmt.Sprintf("element: no render case for %T", e))
	}
}

func inlineText(n *html.Node, d dialect.Dialect) string {
	w := newInlineWriter(nil)
	w.children(n)
	return prose(w, d)
}

// prose cleans and tidies the writer's text, then puts the code spans back
// untouched by Tidy.
func prose(w *inlineWriter, d dialect.Dialect) string {
	text := clean.Tidy(clean.Clean(w.b.String(), clean.Options{Profile: d.Profile}))
	return w.restore(text, func(code string) string {
		return clean.Clean(code, clean.Options{KeepSpacing: true, Profile: d.Profile})
	})
}

func plainText(n *html.Node, d dialect.Dialect) string {
	return strings.TrimSpace(clean.Clean(markup.Text(n), clean.Options{Profile: d.Profile}))
}

func prefixed(marker, text string) string {
	if text == "" {
		return ""
	}
	return marker + " " + text
}

func heading(title string, level int) string {
	if title == "" {
		return ""
	}
	underline := "-"
	if level >= 3 {
		underline = "~"
	}
	return title + "\n" + strings.Repeat(underline, utf8.RuneCountInString(title))
}

func listing(style, body string) string {
	return "[source," + style + "]\n----\n" + body + "\n----"
}

// codeText joins code lines after stripping the fixed-width line-number
// prefix from each one. Indentation inside the line is kept.
func codeText(lines []*html.Node, trim int, d dialect.Dialect) string {
	var b strings.Builder
	for _, ln := range lines {
		text := strings.TrimLeft(markup.Text(ln), "\r\n")
		text = clean.Clean(text, clean.Options{LTrim: trim, KeepSpacing: true, Profile: d.Profile})
		b.WriteString(strings.TrimRight(text, " "))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), " \n")
}

func exercise(n *html.Node, d dialect.Dialect) string {
	var blocks [][]string
	w := newInlineWriter(&blocks)
	w.children(n)
	text := prose(w, d)

	var out strings.Builder
	if m := leadingNumberRe.FindStringSubmatch(text); m != nil {
		out.WriteString(m[1])
		out.WriteString(". ")
		out.WriteString(text[len(m[0]):])
	} else {
		out.WriteString(text)
	}
	for _, lines := range blocks {
		cleaned := make([]string, 0, len(lines))
		for _, ln := range lines {
			ln = clean.Clean(ln, clean.Options{KeepSpacing: true, Profile: d.Profile})
			cleaned = append(cleaned, strings.TrimRight(ln, " "))
		}
		out.WriteString("\n\n")
		out.WriteString(listing(d.Language, strings.Join(cleaned, "\n")))
	}
	return strings.TrimSpace(out.String())
}

func numberedList(items []*html.Node, d dialect.Dialect) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		text := leadingNumberRe.ReplaceAllString(inlineText(item, d), "")
		lines = append(lines, ". "+text)
	}
	return strings.Join(lines, "\n") + strings.Repeat("\n", d.ListTrailer)
}
