package output

import (
	"bufio"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/atomizer/internal/book"
	"github.com/hyperifyio/atomizer/internal/dialect"
)

// WriteHandoutPDF renders the chapters as a plain printable handout, one
// chapter per page run. This is not an AsciiDoc processor: it understands
// only the constructs RenderChapter emits.
func WriteHandoutPDF(path string, chapters []*book.Chapter, d dialect.Dialect) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, ch := range chapters {
		pdf.AddPage()
		writeHandoutChapter(pdf, tr, RenderChapter(ch, d))
	}
	return pdf.OutputFileAndClose(path)
}

func writeHandoutChapter(pdf *gofpdf.Fpdf, tr func(string) string, text string) {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	inListing := false
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if line == "----" {
			inListing = !inListing
			pdf.Ln(2)
			continue
		}
		if inListing {
			pdf.SetFont("Courier", "", 9)
			pdf.CellFormat(0, 4, tr(line), "", 1, "L", false, 0, "")
			continue
		}
		s := strings.TrimSpace(line)
		switch {
		case s == "":
			pdf.Ln(3)
		case strings.HasPrefix(s, "[source") || s == "____":
			// block attributes and delimiters carry no printable text
		case strings.HasPrefix(s, "= "):
			pdf.SetFont("Helvetica", "B", 16)
			pdf.CellFormat(0, 10, tr(s[2:]), "", 1, "L", false, 0, "")
		case i+1 < len(lines) && isUnderline(lines[i+1], s):
			size := 13.0
			if strings.HasPrefix(lines[i+1], "~") {
				size = 11.0
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.CellFormat(0, 8, tr(s), "", 1, "L", false, 0, "")
			i++
		default:
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 5, tr(s), "", "L", false)
		}
	}
	pdf.SetFont("Helvetica", "", 11)
}

func isUnderline(line, title string) bool {
	if line == "" || len([]rune(line)) != len([]rune(title)) {
		return false
	}
	c := line[0]
	if c != '-' && c != '~' {
		return false
	}
	return strings.Count(line, string(c)) == len(line)
}
