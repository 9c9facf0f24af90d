package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/hyperifyio/atomizer/internal/book"
	"github.com/hyperifyio/atomizer/internal/dialect"
	"github.com/hyperifyio/atomizer/internal/element"
)

// FileName returns the slide file name for the chapter at index: a
// zero-padded index and the title reduced to letters and digits.
func FileName(index int, title string) string {
	if i := strings.IndexByte(title, ':'); i >= 0 {
		title = title[:i]
	}
	title = strings.ReplaceAll(title, "&", "and")
	var b strings.Builder
	for _, r := range title {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	slug := b.String()
	if slug == "" {
		slug = "Chapter"
	}
	return fmt.Sprintf("%02d-%s.adoc", index, slug)
}

// RenderChapter renders a chapter title and every non-empty element,
// separated by blank lines.
func RenderChapter(ch *book.Chapter, d dialect.Dialect) string {
	var b strings.Builder
	b.WriteString("= ")
	b.WriteString(ch.Name)
	b.WriteString("\n")
	for _, e := range ch.Elements {
		text := element.Render(e, d)
		if strings.TrimSpace(text) == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(text)
		if !strings.HasSuffix(text, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Encoder returns an encoder for the named charset that replaces runes the
// charset cannot represent. Empty or utf-8 means no transcoding.
func Encoder(name string) (*encoding.Encoder, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "utf-8" || n == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(n)
	if err != nil {
		return nil, fmt.Errorf("output encoding %q: %w", name, err)
	}
	return encoding.ReplaceUnsupported(enc.NewEncoder()), nil
}

// Written describes one file produced by a writer.
type Written struct {
	Path     string
	Chapter  string
	Elements int
	Bytes    int
	SHA256   string
}

func writeText(path, text string, enc *encoding.Encoder) (Written, error) {
	data := []byte(text)
	if enc != nil {
		var err error
		if data, err = enc.Bytes(data); err != nil {
			return Written{}, fmt.Errorf("encode %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Written{}, fmt.Errorf("write %s: %w", path, err)
	}
	log.Info().Str("out", path).Str("size", humanize.Bytes(uint64(len(data)))).Msg("wrote file")
	return Written{Path: path, Bytes: len(data), SHA256: computeSHA256Hex(data)}, nil
}

// WriteSlides writes one AsciiDoc file per chapter into dir. The file index
// is the chapter's position in the manuscript.
func WriteSlides(dir string, chapters []*book.Chapter, d dialect.Dialect, enc *encoding.Encoder) ([]Written, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	out := make([]Written, 0, len(chapters))
	for _, ch := range chapters {
		path := filepath.Join(dir, FileName(ch.Index, ch.Name))
		w, err := writeText(path, RenderChapter(ch, d), enc)
		if err != nil {
			return out, err
		}
		w.Chapter = ch.Name
		w.Elements = len(ch.Elements)
		out = append(out, w)
	}
	return out, nil
}

// WriteBook writes every chapter into a single AsciiDoc file.
func WriteBook(path string, chapters []*book.Chapter, d dialect.Dialect, enc *encoding.Encoder) (Written, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Written{}, fmt.Errorf("create output dir: %w", err)
		}
	}
	parts := make([]string, 0, len(chapters))
	count := 0
	for _, ch := range chapters {
		parts = append(parts, RenderChapter(ch, d))
		count += len(ch.Elements)
	}
	w, err := writeText(path, strings.Join(parts, "\n<<<\n\n"), enc)
	if err != nil {
		return Written{}, err
	}
	w.Elements = count
	return w, nil
}
