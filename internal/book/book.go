package book

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/hyperifyio/atomizer/internal/classify"
	"github.com/hyperifyio/atomizer/internal/clean"
	"github.com/hyperifyio/atomizer/internal/element"
	"github.com/hyperifyio/atomizer/internal/markup"
)

// FrontMatter names the synthetic chapter holding everything before the
// first top-level heading.
const FrontMatter = "Front Matter"

var (
	// ErrDuplicateChapter is returned when two chapters share a title and
	// the duplicate policy is DuplicateError.
	ErrDuplicateChapter = errors.New("book: duplicate chapter title")
	// ErrBoundaryNotFound is returned by Select for an unknown chapter name.
	ErrBoundaryNotFound = errors.New("book: chapter boundary not found")
)

// DuplicatePolicy decides what happens when a chapter title repeats.
type DuplicatePolicy string

const (
	DuplicateError  DuplicatePolicy = "error"
	DuplicateSuffix DuplicatePolicy = "suffix"
)

// Options configures Build.
type Options struct {
	// Rules overrides the classifier's base rules; nil uses classify.BaseRules.
	Rules      []classify.Rule
	Classify   classify.Options
	Duplicates DuplicatePolicy
}

// Chapter is one named segment of the manuscript.
type Chapter struct {
	Index    int
	Name     string
	Body     string
	Nodes    []*html.Node
	Elements []element.Element
}

// Book holds chapters keyed by name in document order.
type Book struct {
	order    []string
	chapters map[string]*Chapter
}

var (
	chapterRe     = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
	emptyParaRe   = regexp.MustCompile(`<p class="?MsoNormal"?>(?:&nbsp;|\x{00a0})</p>\r?\n`)
	lineBreakRepl = strings.NewReplacer("<br>", "<br/>", "</br>", "<br/>")
)

// Normalize fixes literal irregularities of the export before splitting:
// unterminated line breaks and paragraphs holding only a non-breaking space.
func Normalize(src string) string {
	src = lineBreakRepl.Replace(src)
	return emptyParaRe.ReplaceAllString(src, "")
}

// Section is a raw chapter before parsing: the heading's inner HTML and the
// body up to the next heading.
type Section struct {
	Heading string
	Body    string
}

// Split cuts src on top-level headings. The first section is always the
// front matter and has an empty Heading.
func Split(src string) []Section {
	locs := chapterRe.FindAllStringSubmatchIndex(src, -1)
	first := len(src)
	if len(locs) > 0 {
		first = locs[0][0]
	}
	out := make([]Section, 0, len(locs)+1)
	out = append(out, Section{Body: src[:first]})
	for i, m := range locs {
		end := len(src)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		out = append(out, Section{Heading: src[m[2]:m[3]], Body: src[m[1]:end]})
	}
	return out
}

// ChapterName derives a chapter key from a heading's inner HTML.
func ChapterName(heading string) (string, error) {
	nodes, err := markup.ParseFragment(heading)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(markup.Text(n))
	}
	return clean.Title(b.String()), nil
}

// Build splits a whole manuscript into chapters and classifies each one.
func Build(src string, opts Options) (*Book, error) {
	rules := opts.Rules
	if rules == nil {
		rules = classify.BaseRules()
	}
	c := classify.New(rules, opts.Classify)
	b := &Book{chapters: map[string]*Chapter{}}

	for i, sec := range Split(Normalize(src)) {
		name := FrontMatter
		if i > 0 {
			var err error
			if name, err = ChapterName(sec.Heading); err != nil {
				return nil, fmt.Errorf("chapter %d title: %w", i, err)
			}
		}
		nodes, err := markup.ParseFragment(sec.Body)
		if err != nil {
			return nil, fmt.Errorf("chapter %q: %w", name, err)
		}
		els, err := c.Run(nodes)
		if err != nil {
			return nil, fmt.Errorf("chapter %q: %w", name, err)
		}
		ch := &Chapter{Index: i, Name: name, Body: sec.Body, Nodes: nodes, Elements: els}
		if err := b.add(ch, opts.Duplicates); err != nil {
			return nil, err
		}
		log.Debug().Int("index", i).Str("chapter", ch.Name).Int("nodes", len(nodes)).Int("elements", len(els)).Msg("classified chapter")
	}
	return b, nil
}

func (b *Book) add(ch *Chapter, policy DuplicatePolicy) error {
	if _, dup := b.chapters[ch.Name]; dup {
		if policy != DuplicateSuffix {
			return fmt.Errorf("%w: %q", ErrDuplicateChapter, ch.Name)
		}
		base := ch.Name
		for n := 2; ; n++ {
			ch.Name = fmt.Sprintf("%s (%d)", base, n)
			if _, taken := b.chapters[ch.Name]; !taken {
				break
			}
		}
		log.Warn().Str("chapter", base).Str("renamed", ch.Name).Msg("duplicate chapter title")
	}
	b.order = append(b.order, ch.Name)
	b.chapters[ch.Name] = ch
	return nil
}

// Len returns the number of chapters including the front matter.
func (b *Book) Len() int { return len(b.order) }

// Names returns chapter names in document order.
func (b *Book) Names() []string { return append([]string(nil), b.order...) }

// Chapter looks up a chapter by name.
func (b *Book) Chapter(name string) (*Chapter, bool) {
	ch, ok := b.chapters[name]
	return ch, ok
}

// Chapters returns all chapters in document order.
func (b *Book) Chapters() []*Chapter {
	out := make([]*Chapter, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.chapters[name])
	}
	return out
}

// Select returns the chapters from `from` (inclusive) up to `to`
// (exclusive). An empty from starts at the first chapter after the front
// matter; an empty to runs to the end.
func (b *Book) Select(from, to string) ([]*Chapter, error) {
	start := 1
	if from != "" {
		i, err := b.position(from)
		if err != nil {
			return nil, err
		}
		start = i
	}
	end := len(b.order)
	if to != "" {
		i, err := b.position(to)
		if err != nil {
			return nil, err
		}
		end = i
	}
	if start > len(b.order) {
		start = len(b.order)
	}
	if end < start {
		return nil, fmt.Errorf("book: chapter %q comes before %q", to, from)
	}
	all := b.Chapters()
	return all[start:end], nil
}

func (b *Book) position(name string) (int, error) {
	for i, n := range b.order {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBoundaryNotFound, name)
}
