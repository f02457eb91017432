// Package export writes a summary as downloadable artifacts: plain text, a paginated PDF
// and a word cloud of the keywords.
package export

import (
	"io"
	"path/filepath"
	"strings"
)

// TextFilename returns the plain-text artifact name for an uploaded file.
func TextFilename(upload string) string {
	return baseName(upload) + "_summary.txt"
}

// PDFFilename returns the PDF artifact name for an uploaded file.
func PDFFilename(upload string) string {
	return baseName(upload) + "_summary.pdf"
}

// CloudFilename returns the word cloud artifact name for an uploaded file.
func CloudFilename(upload string) string {
	return baseName(upload) + "_cloud.png"
}

func baseName(upload string) string {
	base := filepath.Base(strings.ReplaceAll(upload, `\`, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == "/" {
		return "document"
	}
	return base
}

// WriteText writes the summary as UTF-8 text.
func WriteText(w io.Writer, summary string) error {
	_, err := io.WriteString(w, summary)
	return err
}
