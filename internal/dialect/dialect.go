package dialect

import (
	"fmt"
	"strings"

	"github.com/hyperifyio/atomizer/internal/clean"
)

// Type names one of the supported output dialects.
type Type string

const (
	// Classic follows the first converter: "Exercises" headings get their own
	// marker and lists end with a single blank line.
	Classic Type = "classic"
	// Deck is the slide-deck converter and the default.
	Deck Type = "deck"
	// Notes writes speaker-note style output with dash bullets.
	Notes Type = "notes"

	Default = Deck
)

// Dialect fixes every rendering choice the historical converters disagreed on.
type Dialect struct {
	Type        Type
	Name        string
	Description string

	// ExerciseHeadings turns an h2 reading "Exercises" into an ExerciseHeader.
	ExerciseHeadings bool
	// ListTrailer is the number of blank lines written after a numbered list.
	ListTrailer int
	// BulletMarker prefixes Bullet elements, ParagraphMarker prefixes paragraphs.
	BulletMarker    string
	ParagraphMarker string

	// ExampleTrim and FragmentTrim are the widths of the line-number prefix
	// removed from each code line.
	ExampleTrim  int
	FragmentTrim int
	Language     string

	Profile clean.Profile
}

// Get returns the dialect for name. Empty selects the default.
func Get(name string) (Dialect, error) {
	switch Type(normalizeType(name)) {
	case Classic:
		return classicDialect(), nil
	case Deck:
		return deckDialect(), nil
	case Notes:
		return notesDialect(), nil
	default:
		return Dialect{}, fmt.Errorf("dialect: unknown dialect %q", name)
	}
}

// Names lists the accepted dialect names.
func Names() []string {
	return []string{string(Classic), string(Deck), string(Notes)}
}

func normalizeType(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "":
		return string(Default)
	case "classic", "atomizer", "original":
		return string(Classic)
	case "deck", "slides", "slide", "slidedeck", "slide deck":
		return string(Deck)
	case "notes", "speaker notes":
		return string(Notes)
	}
	return v
}

func classicDialect() Dialect {
	return Dialect{
		Type:             Classic,
		Name:             "Classic",
		Description:      "First-generation output with an Exercises marker",
		ExerciseHeadings: true,
		ListTrailer:      1,
		BulletMarker:     "*",
		ParagraphMarker:  "*",
		ExampleTrim:      4,
		FragmentTrim:     0,
		Language:         "scala",
		Profile:          clean.ASCII,
	}
}

func deckDialect() Dialect {
	return Dialect{
		Type:            Deck,
		Name:            "Slide deck",
		Description:     "One AsciiDoc file per chapter for slide generation",
		ListTrailer:     2,
		BulletMarker:    "*",
		ParagraphMarker: "*",
		ExampleTrim:     4,
		FragmentTrim:    0,
		Language:        "scala",
		Profile:         clean.ASCII,
	}
}

func notesDialect() Dialect {
	return Dialect{
		Type:            Notes,
		Name:            "Notes",
		Description:     "Speaker notes in the legacy codepage",
		ListTrailer:     1,
		BulletMarker:    "-",
		ParagraphMarker: "*",
		ExampleTrim:     4,
		FragmentTrim:    0,
		Language:        "scala",
		Profile:         clean.Windows1252,
	}
}
