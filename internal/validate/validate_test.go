package validate

import (
    "errors"
    "testing"
)

func TestValidateChapter_OK(t *testing.T) {
    adoc := "= Values\n\n* A *val* is fixed.\n\n[source,scala,linenums]\n----\nval x = <b>\n----\n\n____\nquoted\n____\n"
    if err := ValidateChapter(adoc); err != nil {
        t.Fatalf("expected valid chapter, got %v", err)
    }
}

func TestValidateChapter_MissingTitle(t *testing.T) {
    err := ValidateChapter("\n* text\n")
    if !errors.Is(err, ErrInvalidOutput) {
        t.Fatalf("expected ErrInvalidOutput, got %v", err)
    }
}

func TestUnclosedDelimiters(t *testing.T) {
    got := UnclosedDelimiters("= T\n----\ncode\n____\n")
    if len(got) != 1 || got[0] != "listing opened on line 2 is not closed" {
        t.Fatalf("unexpected issues %v", got)
    }
    got = UnclosedDelimiters("= T\n____\nquote\n")
    if len(got) != 1 || got[0] != "quote opened on line 2 is not closed" {
        t.Fatalf("unexpected issues %v", got)
    }
}

func TestStrayTags_IgnoresListings(t *testing.T) {
    got := StrayTags("= T\ntext <span class=x>y</span>\n----\n<p>kept</p>\n----\n")
    if len(got) != 2 || got[0] != "<span class=x>" || got[1] != "</span>" {
        t.Fatalf("unexpected tags %v", got)
    }
}
