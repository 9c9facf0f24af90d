package dialect

import "testing"

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Type
	}{
		{"Empty selects default", "", Deck},
		{"Whitespace selects default", "  \t ", Deck},
		{"Classic exact", "classic", Classic},
		{"Classic alias", "Original", Classic},
		{"Deck alias", "Slide Deck", Deck},
		{"Notes exact", "NOTES", Notes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Get(tt.input)
			if err != nil {
				t.Fatalf("Get(%q) error: %v", tt.input, err)
			}
			if d.Type != tt.expected {
				t.Errorf("Get(%q) type = %v, want %v", tt.input, d.Type, tt.expected)
			}
		})
	}
}

func TestGet_UnknownIsError(t *testing.T) {
	if _, err := Get("pdf"); err == nil {
		t.Fatalf("expected error for unknown dialect")
	}
}

func TestDialects_DivergeOnlyWhereConfigured(t *testing.T) {
	classic, _ := Get("classic")
	deck, _ := Get("deck")
	notes, _ := Get("notes")
	if !classic.ExerciseHeadings || deck.ExerciseHeadings || notes.ExerciseHeadings {
		t.Fatalf("only classic should special-case Exercises headings")
	}
	if classic.ListTrailer != 1 || deck.ListTrailer != 2 {
		t.Fatalf("unexpected list trailers: classic=%d deck=%d", classic.ListTrailer, deck.ListTrailer)
	}
	if notes.BulletMarker != "-" || deck.BulletMarker != "*" {
		t.Fatalf("unexpected bullet markers")
	}
	for _, name := range Names() {
		d, err := Get(name)
		if err != nil {
			t.Fatalf("listed dialect %q not accepted: %v", name, err)
		}
		if d.ExampleTrim <= d.FragmentTrim {
			t.Fatalf("%s: example prefix must be wider than fragment prefix", name)
		}
	}
}
