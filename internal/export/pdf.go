package export

import (
	"github.com/go-pdf/fpdf"
	"io"
	"strings"
)

// Layout controls how the summary is drawn. Units are points on an A4 page, y grows downward.
type Layout struct {
	Left       float64
	Top        float64
	Bottom     float64
	LineHeight float64
	FontSize   float64
	// Columns is the fixed line width in characters.
	Columns int
}

// DefaultLayout mirrors a canvas starting 800pt above the bottom edge with a 50pt margin.
var DefaultLayout = Layout{
	Left:       50,
	Top:        42,
	Bottom:     792,
	LineHeight: 15,
	FontSize:   11,
	Columns:    90,
}

// WritePDF draws summary line by line, starting a new page whenever the next line would
// pass the bottom offset.
func WritePDF(w io.Writer, summary string, layout Layout) error {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetFont("Helvetica", "", layout.FontSize)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	y := layout.Top
	for _, line := range Wrap(summary, layout.Columns) {
		if y >= layout.Bottom {
			doc.AddPage()
			y = layout.Top
		}
		doc.Text(layout.Left, y, tr(line))
		y += layout.LineHeight
	}
	return doc.Output(w)
}

// Wrap breaks text into lines of at most columns characters, splitting on spaces. Words longer
// than a line are cut. Existing line breaks are kept.
func Wrap(text string, columns int) []string {
	if columns <= 0 {
		columns = DefaultLayout.Columns
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		var line []rune
		for _, word := range strings.Fields(para) {
			rw := []rune(word)
			for len(rw) > columns {
				if len(line) > 0 {
					lines = append(lines, string(line))
					line = nil
				}
				lines = append(lines, string(rw[:columns]))
				rw = rw[columns:]
			}
			switch {
			case len(line) == 0:
				line = append(line, rw...)
			case len(line)+1+len(rw) <= columns:
				line = append(append(line, ' '), rw...)
			default:
				lines = append(lines, string(line))
				line = append([]rune{}, rw...)
			}
		}
		lines = append(lines, string(line))
	}
	return lines
}
