package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/hyperifyio/atomizer/internal/book"
	"github.com/hyperifyio/atomizer/internal/dialect"
	"github.com/hyperifyio/atomizer/internal/element"
)

// Trace lists, per chapter, every code element with its kind. It is a
// debugging aid for checking where example boundaries fell.
func Trace(chapters []*book.Chapter, d dialect.Dialect) string {
	rule := strings.Repeat("=", 40)
	var b strings.Builder
	for _, ch := range chapters {
		fmt.Fprintf(&b, "\n%s\n%s\n%s\n", rule, ch.Name, rule)
		for _, e := range ch.Elements {
			switch e.Kind() {
			case element.KindExample, element.KindCodeFragment:
				fmt.Fprintf(&b, "\n[%s]\n%s\n", e.Kind(), element.Render(e, d))
			}
		}
	}
	return b.String()
}

// WriteTrace writes Trace output to path.
func WriteTrace(path string, chapters []*book.Chapter, d dialect.Dialect) error {
	if err := os.WriteFile(path, []byte(Trace(chapters, d)), 0o644); err != nil {
		return fmt.Errorf("write trace: %w", err)
	}
	return nil
}
