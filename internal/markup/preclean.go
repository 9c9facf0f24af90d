package markup

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const pageBreak = "page-break-before:always"

// PreCleanStats counts what PreClean removed.
type PreCleanStats struct {
	PageBreaks      int
	EmptyParagraphs int
}

// PreClean strips word-processor page breaks and blank paragraphs from a
// whole exported document and returns the re-serialised HTML.
func PreClean(doc string) (string, PreCleanStats, error) {
	var stats PreCleanStats
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return "", stats, fmt.Errorf("could not parse document: %w", err)
	}

	d.Find("span").Each(func(_ int, s *goquery.Selection) {
		if isPageBreak(s.ChildrenFiltered("br")) {
			s.Remove()
			stats.PageBreaks++
		}
	})
	d.Find("br").Each(func(_ int, s *goquery.Selection) {
		if isPageBreak(s) {
			s.Remove()
			stats.PageBreaks++
		}
	})
	d.Find("p").Each(func(_ int, s *goquery.Selection) {
		if strings.TrimSpace(s.Text()) == "" {
			s.Remove()
			stats.EmptyParagraphs++
		}
	})

	out, err := d.Html()
	if err != nil {
		return "", stats, fmt.Errorf("could not render document: %w", err)
	}
	return out, stats, nil
}

func isPageBreak(s *goquery.Selection) bool {
	found := false
	s.EachWithBreak(func(_ int, br *goquery.Selection) bool {
		style := strings.ReplaceAll(br.AttrOr("style", ""), " ", "")
		found = strings.Contains(style, pageBreak)
		return !found
	})
	return found
}
