package classify

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/hyperifyio/atomizer/internal/element"
	"github.com/hyperifyio/atomizer/internal/markup"
)

func parse(t *testing.T, body string) []*html.Node {
	t.Helper()
	nodes, err := markup.ParseFragment(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return nodes
}

func kinds(els []element.Element) []element.Kind {
	out := make([]element.Kind, 0, len(els))
	for _, e := range els {
		out = append(out, e.Kind())
	}
	return out
}

const (
	numbered   = "<p class=Code><span class=CodeNumber>1&nbsp;&nbsp;&nbsp;</span>x</p>\n"
	unnumbered = "<p class=Code>y</p>\n"
)

func TestRun_ExampleBoundaryAtFirstUnnumberedLine(t *testing.T) {
	nodes := parse(t, strings.Repeat(numbered, 3)+unnumbered)
	els, err := New(BaseRules(), Options{}).Run(nodes)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	got := kinds(els)
	want := []element.Kind{element.KindExample, element.KindCodeFragment}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v; got %v", want, got)
	}
	if n := len(els[0].Nodes()); n != 3 {
		t.Fatalf("expected 3 example lines; got %d", n)
	}
	if n := len(els[1].Nodes()); n != 1 {
		t.Fatalf("expected 1 fragment line; got %d", n)
	}
}

func TestRun_FragmentThenExampleSwitchesConstruct(t *testing.T) {
	nodes := parse(t, unnumbered+unnumbered+numbered+"<p class=MsoNormal>after</p>")
	els, err := New(BaseRules(), Options{}).Run(nodes)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []element.Kind{element.KindCodeFragment, element.KindExample, element.KindParagraph}
	if got := kinds(els); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v; got %v", want, got)
	}
	if len(els[0].Nodes()) != 2 {
		t.Fatalf("expected fragment of 2 lines; got %d", len(els[0].Nodes()))
	}
}

func TestClassify_NumberedListRestoresActiveRules(t *testing.T) {
	nodes := parse(t, `<p class=MsoListNumberCxSpFirst>a</p>
<p class=MsoListNumberCxSpMiddle>b</p>
<p class=MsoListNumberCxSpMiddle>c</p>
<p class=MsoListNumberCxSpLast>d</p>`)
	c := New(BaseRules(), Options{})
	before := c.Active()
	for i, n := range nodes {
		if err := c.Classify(n); err != nil {
			t.Fatalf("classify node %d: %v", i, err)
		}
		if i == 0 && c.Active()[0] != "continue NumberedList" {
			t.Fatalf("expected list continuation at front; got %v", c.Active())
		}
	}
	if after := c.Active(); !reflect.DeepEqual(before, after) {
		t.Fatalf("active rules not restored: before %v after %v", before, after)
	}
	els, err := c.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if len(els) != 1 || els[0].Kind() != element.KindNumberedList {
		t.Fatalf("expected one NumberedList; got %v", kinds(els))
	}
	var items []string
	for _, n := range els[0].Nodes() {
		items = append(items, markup.Text(n))
	}
	if !reflect.DeepEqual(items, []string{"a", "b", "c", "d"}) {
		t.Fatalf("unexpected item order %v", items)
	}
}

func TestClassify_LastWithoutFirstIsFatal(t *testing.T) {
	nodes := parse(t, `<p class=MsoListNumberCxSpLast>d</p>`)
	_, err := New(BaseRules(), Options{}).Run(nodes)
	if !errors.Is(err, ErrListUnsynchronized) {
		t.Fatalf("expected ErrListUnsynchronized; got %v", err)
	}
}

func TestClassify_ListLeftOpenIsFatal(t *testing.T) {
	nodes := parse(t, `<p class=MsoListNumberCxSpFirst>a</p><p class=MsoListNumberCxSpMiddle>b</p>`)
	_, err := New(BaseRules(), Options{}).Run(nodes)
	if !errors.Is(err, ErrListUnsynchronized) {
		t.Fatalf("expected ErrListUnsynchronized at end of chapter; got %v", err)
	}
}

func TestClassify_ForeignNodeInsideListIsFatal(t *testing.T) {
	nodes := parse(t, `<p class=MsoListNumberCxSpFirst>a</p><p class=MsoNormal>oops</p>`)
	_, err := New(BaseRules(), Options{}).Run(nodes)
	if !errors.Is(err, ErrListUnsynchronized) {
		t.Fatalf("expected ErrListUnsynchronized; got %v", err)
	}
}

func TestClassify_TextInsideListIsFatal(t *testing.T) {
	nodes := parse(t, "<p class=MsoListNumberCxSpFirst>a</p>stray<p class=MsoListNumberCxSpLast>b</p>")
	_, err := New(BaseRules(), Options{}).Run(nodes)
	if !errors.Is(err, ErrListUnsynchronized) {
		t.Fatalf("expected ErrListUnsynchronized; got %v", err)
	}

	nodes = parse(t, "<p class=MsoListNumberCxSpFirst>a</p> \n <p class=MsoListNumberCxSpLast>b</p>")
	els, err := New(BaseRules(), Options{}).Run(nodes)
	if err != nil {
		t.Fatalf("whitespace between items should pass: %v", err)
	}
	if len(els[0].Nodes()) != 2 {
		t.Fatalf("expected both items in the list; got %d", len(els[0].Nodes()))
	}
}

func TestClassify_TextClosesOpenExample(t *testing.T) {
	nodes := parse(t, numbered+"loose"+numbered)
	els, err := New(BaseRules(), Options{}).Run(nodes)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []element.Kind{element.KindExample, element.KindTextNode, element.KindExample}
	if got := kinds(els); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v; got %v", want, got)
	}
}

func TestClassify_SingleItemList(t *testing.T) {
	nodes := parse(t, `<p class=MsoListNumber>only</p><p class=MsoNormal>next</p>`)
	els, err := New(BaseRules(), Options{}).Run(nodes)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []element.Kind{element.KindNumberedList, element.KindParagraph}
	if got := kinds(els); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v; got %v", want, got)
	}
}

func TestClassify_HeadingsAndCatchAll(t *testing.T) {
	body := "<h2>Exercises</h2>\n<h3>Sub</h3>\n<div>no class</div>\n<p class=Mystery>odd</p>\n" +
		"<p class=SolnsLink>s</p>\n<p class=Quote>q</p>\n<p class=Exercise>1. e</p>\n<p class=MsoListBullet>b</p>\nloose text"
	nodes := parse(t, body)

	els, err := New(BaseRules(), Options{}).Run(nodes)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []element.Kind{
		element.KindHeading, element.KindHeading, element.KindUnclassified, element.KindUnclassified,
		element.KindSolutionsLink, element.KindQuote, element.KindExercise, element.KindBullet, element.KindTextNode,
	}
	if got := kinds(els); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v; got %v", want, got)
	}

	els, err = New(BaseRules(), Options{ExerciseHeadings: true}).Run(nodes)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if els[0].Kind() != element.KindExerciseHeader {
		t.Fatalf("expected ExerciseHeader with the option on; got %v", els[0].Kind())
	}
}

// Every node is consumed exactly once; only newline-only text disappears.
func TestRun_ConsumesEveryNodeOnce(t *testing.T) {
	body := "<p class=MsoNormal>a</p>\n" + numbered + numbered + unnumbered +
		"<p class=MsoListNumberCxSpFirst>1</p>\n<p class=MsoListNumberCxSpLast>2</p>\n<h2>H</h2>\n<span>x</span>\n"
	nodes := parse(t, body)
	els, err := New(BaseRules(), Options{}).Run(nodes)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	seen := map[*html.Node]int{}
	for _, e := range els {
		for _, n := range e.Nodes() {
			seen[n]++
		}
	}
	for i, n := range nodes {
		if markup.IsNewline(n) {
			if seen[n] != 0 {
				t.Fatalf("newline node %d should be dropped", i)
			}
			continue
		}
		if seen[n] != 1 {
			t.Fatalf("node %d consumed %d times", i, seen[n])
		}
	}
}

func TestRun_ResetsStateBetweenChapters(t *testing.T) {
	c := New(BaseRules(), Options{})
	if _, err := c.Run(parse(t, numbered)); err != nil {
		t.Fatalf("first run: %v", err)
	}
	els, err := c.Run(parse(t, numbered))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(els) != 1 || len(els[0].Nodes()) != 1 {
		t.Fatalf("state leaked across chapters: %d elements", len(els))
	}
}
