// Package pdf extracts plain text from PDF files.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"
	"io"
	"io/ioutil"
	"os"
)

// ExtractionError is returned when a PDF cannot be read or interpreted.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract text from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ErrNoText is wrapped in an ExtractionError when a PDF holds no extractable text,
// typically because it is scanned or image based.
var ErrNoText = errors.New("no extractable text")

// Open opens file for reading. The caller closes the returned file.
func Open(file string) (*os.File, *pdf.Reader, error) {
	return pdf.Open(file)
}

// ExtractText returns all the text in the PDF at path.
func ExtractText(path string) (string, error) {
	f, r, err := Open(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	defer func() {
		_ = f.Close()
	}()

	rd, err := PlainText(r, AllPages)
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	b, err := ioutil.ReadAll(rd)
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return "", &ExtractionError{Path: path, Err: ErrNoText}
	}
	return string(b), nil
}

// AllPages selects every page of the document.
var AllPages = PageRange{}

// PageRange is an inclusive, 1-based page range.
type PageRange struct {
	Start int
	End   int
}

// PlainText returns the text of the pages in pageRange, one page after another.
func PlainText(r *pdf.Reader, pageRange PageRange) (reader io.Reader, err error) {
	pages := r.NumPage()
	if pageRange == AllPages {
		pageRange.Start = 1
		pageRange.End = pages
	}
	if pageRange.Start < 1 {
		pageRange.Start = 1
	}
	if pageRange.End > pages {
		pageRange.End = pages
	}

	var buf bytes.Buffer
	fonts := make(map[string]*pdf.Font)
	for i := pageRange.Start; i <= pageRange.End; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() { // cache fonts so we don't continually parse charmap
			if _, ok := fonts[name]; !ok {
				f := p.Font(name)
				logrus.Debugf("font: %s %s", name, f.BaseFont())
				fonts[name] = &f
			}
		}

		text, err := GetPlainText(p, fonts)
		if err != nil {
			return &bytes.Buffer{}, fmt.Errorf("page %d: %w", i, err)
		}
		buf.WriteString(text)
		buf.WriteByte('\n')
	}
	return &buf, nil
}

// GetPlainText returns all unformatted text of a page.
// fonts can be passed in (to improve parsing performance) or left nil.
func GetPlainText(p pdf.Page, fonts map[string]*pdf.Font) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = ""
			err = errors.New(fmt.Sprint(r))
		}
	}()

	if fonts == nil {
		fonts = make(map[string]*pdf.Font)
		for _, name := range p.Fonts() {
			f := p.Font(name)
			fonts[name] = &f
		}
	}

	strm := p.V.Key("Contents")
	var enc pdf.TextEncoding = &nopEncoder{}

	var textBuilder bytes.Buffer
	showText := func(s string) {
		textBuilder.WriteString(enc.Decode(s))
	}

	pdf.Interpret(strm, func(stk *pdf.Stack, op string) {
		n := stk.Len()
		args := make([]pdf.Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}

		switch op {
		default:
			return
		case "T*": // move to start of next line
			textBuilder.WriteByte('\n')
		case "Td", "TD": // move text position, usually a new word or line
			textBuilder.WriteByte(' ')
		case "Tf": // set text font and size
			if len(args) != 2 {
				panic("bad Tf")
			}
			if font, ok := fonts[args[0].Name()]; ok {
				enc = font.Encoder()
			} else {
				enc = &nopEncoder{}
			}
		case "\"": // set spacing, move to next line, and show text
			if len(args) != 3 {
				logrus.Warnf("bad \" operator")
				return
			}
			textBuilder.WriteByte('\n')
			showText(args[2].RawString())
		case "'": // move to next line and show text
			if len(args) != 1 {
				logrus.Warnf("bad ' operator")
				return
			}
			textBuilder.WriteByte('\n')
			showText(args[0].RawString())
		case "Tj":
			if len(args) != 1 {
				logrus.Warnf("bad Tj operator")
				return
			}
			showText(args[0].RawString())
		case "TJ": // show text, allowing individual glyph positioning
			v := args[0]
			for i := 0; i < v.Len(); i++ {
				x := v.Index(i)
				if x.Kind() == pdf.String {
					showText(x.RawString())
				}
			}
		}
	})
	return textBuilder.String(), nil
}

type nopEncoder struct {
}

func (e *nopEncoder) Decode(raw string) (text string) {
	return raw
}
