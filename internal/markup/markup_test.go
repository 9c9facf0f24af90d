package markup

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestParseFragment_ReturnsTopLevelNodesInOrder(t *testing.T) {
	nodes, err := ParseFragment("<p class=MsoNormal>one</p>\n<p class=Code>two</p>")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes (p, newline, p); got %d", len(nodes))
	}
	if Name(nodes[0]) != "p" || !IsNewline(nodes[1]) || Name(nodes[2]) != "p" {
		t.Fatalf("unexpected node sequence")
	}
	if Text(nodes[2]) != "two" {
		t.Fatalf("expected text 'two'; got %q", Text(nodes[2]))
	}
}

func TestClasses_ParsesSetAndDistinguishesMissingAttribute(t *testing.T) {
	nodes, err := ParseFragment(`<p class="Code Wide">x</p><p>y</p>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	set, ok := Classes(nodes[0])
	if !ok || !set.Has("Code") || !set.Has("Wide") || set.Has("Cod") {
		t.Fatalf("unexpected class set %v (ok=%v)", set, ok)
	}
	if !set.HasAny("Nope", "Wide") {
		t.Fatalf("expected HasAny to match")
	}
	if _, ok := Classes(nodes[1]); ok {
		t.Fatalf("expected no class attribute on second paragraph")
	}
}

func TestAny_FindsNestedSpan(t *testing.T) {
	nodes, err := ParseFragment(`<p class=Code><span><span class=CodeNumber>1</span></span>x</p>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	found := Any(nodes[0], func(n *html.Node) bool { return HasClass(n, "CodeNumber") })
	if !found {
		t.Fatalf("expected nested CodeNumber span to be found")
	}
}

func TestPreClean_RemovesPageBreaksAndEmptyParagraphs(t *testing.T) {
	doc := `<html><body>
<p class=MsoNormal>Keep me</p>
<p class=MsoNormal>&nbsp;</p>
<span><br clear=all style='page-break-before:always'></span>
<br style="page-break-before: always">
<p class=MsoNormal>And me</p>
</body></html>`
	out, stats, err := PreClean(doc)
	if err != nil {
		t.Fatalf("preclean: %v", err)
	}
	if stats.EmptyParagraphs != 1 {
		t.Fatalf("expected 1 empty paragraph removed; got %d", stats.EmptyParagraphs)
	}
	if stats.PageBreaks != 2 {
		t.Fatalf("expected 2 page breaks removed; got %d", stats.PageBreaks)
	}
	if strings.Contains(out, "page-break") {
		t.Fatalf("page break survived: %s", out)
	}
	if !strings.Contains(out, "Keep me") || !strings.Contains(out, "And me") {
		t.Fatalf("content lost: %s", out)
	}
}
