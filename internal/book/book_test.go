package book

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/hyperifyio/atomizer/internal/classify"
	"github.com/hyperifyio/atomizer/internal/element"
)

const twoChapters = `<p class=MsoNormal>Title page</p>
<h1><a name="_Toc1"></a>Getting
  Started</h1>
<p class=MsoNormal>Intro text</p>
<h1>Vectors &amp; Lists</h1>
<p class=MsoNormal>Second</p>
<p class=Code>val v = Vector(1)</p>
`

func TestBuild_SplitsFrontMatterAndNamedChapters(t *testing.T) {
	b, err := Build(twoChapters, Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := []string{FrontMatter, "Getting Started", "Vectors & Lists"}
	if got := b.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected chapters %v; got %v", want, got)
	}
	chapters := b.Chapters()
	if !strings.Contains(chapters[0].Body, "Title page") || strings.Contains(chapters[0].Body, "Intro text") {
		t.Fatalf("front matter body wrong: %q", chapters[0].Body)
	}
	if !strings.Contains(chapters[1].Body, "Intro text") || strings.Contains(chapters[1].Body, "Second") {
		t.Fatalf("first chapter body wrong: %q", chapters[1].Body)
	}
	if !strings.Contains(chapters[2].Body, "Second") || strings.Contains(chapters[2].Body, "Intro text") {
		t.Fatalf("second chapter body wrong: %q", chapters[2].Body)
	}
	last := chapters[2].Elements
	if len(last) != 2 || last[0].Kind() != element.KindParagraph || last[1].Kind() != element.KindCodeFragment {
		t.Fatalf("unexpected elements in last chapter: %d", len(last))
	}
}

func TestBuild_NoHeadingsGivesOnlyFrontMatter(t *testing.T) {
	b, err := Build(`<p class=MsoNormal>only</p>`, Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if b.Len() != 1 || b.Names()[0] != FrontMatter {
		t.Fatalf("expected a single front matter chapter; got %v", b.Names())
	}
}

func TestNormalize_FixesBreaksAndDropsBlankParagraphs(t *testing.T) {
	src := "a<br>b</br><p class=MsoNormal>&nbsp;</p>\n<p class=MsoNormal>kept</p>\n"
	got := Normalize(src)
	want := "a<br/>b<br/><p class=MsoNormal>kept</p>\n"
	if got != want {
		t.Fatalf("expected %q; got %q", want, got)
	}
}

func TestBuild_ClassificationFailureNamesChapter(t *testing.T) {
	src := "<h1>Broken</h1><p class=MsoListNumberCxSpLast>x</p>"
	_, err := Build(src, Options{})
	if !errors.Is(err, classify.ErrListUnsynchronized) {
		t.Fatalf("expected list sync error; got %v", err)
	}
	if !strings.Contains(err.Error(), `"Broken"`) {
		t.Fatalf("expected chapter name in error; got %v", err)
	}
}

func TestBuild_DuplicateTitles(t *testing.T) {
	src := "<h1>Same</h1><p class=MsoNormal>a</p><h1>Same</h1><p class=MsoNormal>b</p>"
	if _, err := Build(src, Options{}); !errors.Is(err, ErrDuplicateChapter) {
		t.Fatalf("expected ErrDuplicateChapter; got %v", err)
	}
	b, err := Build(src, Options{Duplicates: DuplicateSuffix})
	if err != nil {
		t.Fatalf("build with suffix policy: %v", err)
	}
	want := []string{FrontMatter, "Same", "Same (2)"}
	if got := b.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v; got %v", want, got)
	}
}

func TestSelect(t *testing.T) {
	src := "<h1>A</h1>x<h1>B</h1>y<h1>C</h1>z<h1>D</h1>w"
	b, err := Build(src, Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	names := func(chs []*Chapter) []string {
		var out []string
		for _, c := range chs {
			out = append(out, c.Name)
		}
		return out
	}
	got, err := b.Select("B", "D")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if !reflect.DeepEqual(names(got), []string{"B", "C"}) {
		t.Fatalf("unexpected range %v", names(got))
	}
	got, err = b.Select("", "")
	if err != nil {
		t.Fatalf("select all: %v", err)
	}
	if !reflect.DeepEqual(names(got), []string{"A", "B", "C", "D"}) {
		t.Fatalf("unexpected default range %v", names(got))
	}
	if _, err := b.Select("Missing", ""); !errors.Is(err, ErrBoundaryNotFound) {
		t.Fatalf("expected ErrBoundaryNotFound; got %v", err)
	}
	if _, err := b.Select("C", "A"); err == nil {
		t.Fatalf("expected error for reversed range")
	}
}
