package validate

import (
    "errors"
    "fmt"
    "regexp"
    "strings"
)

// ErrInvalidOutput wraps every structural problem reported by ValidateChapter.
var ErrInvalidOutput = errors.New("invalid asciidoc output")

const (
    listingDelim = "----"
    quoteDelim   = "____"
)

var strayTagRe = regexp.MustCompile(`(?i)</?(p|span|b|i|em|strong|br|div|h[1-6]|a)\b[^>]*>`)

// ValidateChapter checks a rendered chapter for problems that would break
// an AsciiDoc build: a missing "= " title line, unbalanced listing or quote
// delimiters and HTML tags left outside listing blocks.
func ValidateChapter(adoc string) error {
    var issues []string
    if !hasTitle(adoc) {
        issues = append(issues, "first non-empty line is not a document title")
    }
    issues = append(issues, UnclosedDelimiters(adoc)...)
    for _, tag := range StrayTags(adoc) {
        issues = append(issues, fmt.Sprintf("stray html tag %s", tag))
    }
    if len(issues) == 0 {
        return nil
    }
    return fmt.Errorf("%w: %s", ErrInvalidOutput, strings.Join(issues, "; "))
}

func hasTitle(adoc string) bool {
    for _, line := range strings.Split(adoc, "\n") {
        if strings.TrimSpace(line) == "" {
            continue
        }
        return strings.HasPrefix(line, "= ")
    }
    return false
}

// UnclosedDelimiters reports listing and quote blocks that are opened and
// never closed. Quote delimiters inside a listing are literal text.
func UnclosedDelimiters(adoc string) []string {
    inListing, inQuote := false, false
    listingLine, quoteLine := 0, 0
    for i, line := range strings.Split(adoc, "\n") {
        switch strings.TrimRight(line, " ") {
        case listingDelim:
            inListing = !inListing
            listingLine = i + 1
        case quoteDelim:
            if !inListing {
                inQuote = !inQuote
                quoteLine = i + 1
            }
        }
    }
    var out []string
    if inListing {
        out = append(out, fmt.Sprintf("listing opened on line %d is not closed", listingLine))
    }
    if inQuote {
        out = append(out, fmt.Sprintf("quote opened on line %d is not closed", quoteLine))
    }
    return out
}

// StrayTags returns HTML tags found outside listing blocks, in order.
func StrayTags(adoc string) []string {
    var out []string
    inListing := false
    for _, line := range strings.Split(adoc, "\n") {
        if strings.TrimRight(line, " ") == listingDelim {
            inListing = !inListing
            continue
        }
        if inListing {
            continue
        }
        out = append(out, strayTagRe.FindAllString(line, -1)...)
    }
    return out
}
