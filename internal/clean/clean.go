package clean

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Profile selects the character set that cleaned text is translated into.
type Profile int

const (
	// ASCII maps typographic punctuation onto plain ASCII so the text is
	// safe inside lightweight markup.
	ASCII Profile = iota
	// Windows1252 keeps the punctuation the legacy codepage can encode and
	// maps the rest onto its nearest codepage equivalent.
	Windows1252
)

// Options controls a single Clean call.
type Options struct {
	// LTrim and RTrim strip a fixed number of runes before any other rule
	// runs, e.g. a line-number prefix on a code line.
	LTrim int
	RTrim int
	// KeepSpacing disables whitespace collapsing (code indentation).
	KeepSpacing bool
	Profile     Profile
}

var asciiReplacer = strings.NewReplacer(
	"“", `"`, "”", `"`, "„", `"`, "«", `"`, "»", `"`,
	"‘", "'", "’", "'", "‚", "'", "′", "'", "″", `"`,
	"—", "--", "–", "-", "‑", "-", "‒", "-", "−", "-",
	"…", "...",
	"•", "*", "∙", "*",
)

// Only runes Windows-1252 cannot encode are mapped here.
var cp1252Replacer = strings.NewReplacer(
	"‑", "-", "‒", "–", "−", "-",
	"′", "'", "″", `"`,
	"∙", "•",
)

var controlReplacer = strings.NewReplacer(
	"\u00a0", " ",
	"\r\n", " ", "\n", " ", "\r", " ", "\t", " ",
)

// Clean normalises raw text captured from the manuscript. It is idempotent
// when no trim counts are given.
func Clean(raw string, opts Options) string {
	s := trimRunes(raw, opts.LTrim, opts.RTrim)
	s = controlReplacer.Replace(s)
	switch opts.Profile {
	case Windows1252:
		s = cp1252Replacer.Replace(s)
	default:
		s = norm.NFKC.String(s)
		s = asciiReplacer.Replace(s)
	}
	if !opts.KeepSpacing {
		s = collapseSpaces(s)
	}
	return s
}

func trimRunes(s string, left, right int) string {
	if left <= 0 && right <= 0 {
		return s
	}
	r := []rune(s)
	if left < 0 {
		left = 0
	}
	if right < 0 {
		right = 0
	}
	if left+right >= len(r) {
		return ""
	}
	return string(r[left : len(r)-right])
}

func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}

// Title reduces a heading's text to printable ASCII with single spaces, the
// form used as a chapter key.
func Title(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r < unicode.MaxASCII && (unicode.IsPrint(r) || unicode.IsSpace(r)) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

var tidyReplacer = strings.NewReplacer(
	" ,", ",", " .", ".", " ;", ";", " :", ":", " !", "!", " ?", "?",
	" )", ")", "( ", "(",
)

// Tidy removes the spaces literal-text escaping leaves before closing
// punctuation and inside parentheses.
func Tidy(s string) string {
	for {
		next := tidyReplacer.Replace(s)
		if next == s {
			return strings.TrimSpace(next)
		}
		s = next
	}
}
