package export

import (
	"errors"
	"github.com/psykhi/wordclouds"
	"image/color"
	"image/png"
	"io"
)

var (
	// ErrNothingToVisualize is returned for an empty keyword list.
	ErrNothingToVisualize = errors.New("no keywords to visualize")
	// ErrNoFont is returned when no font file is configured.
	ErrNoFont = errors.New("word cloud font not configured")
)

// CloudOptions controls word cloud rendering.
type CloudOptions struct {
	FontPath string
	Width    int
	Height   int
}

// roughly matplotlib "plasma"
var plasma = []color.Color{
	color.RGBA{R: 0x0d, G: 0x08, B: 0x87, A: 0xff},
	color.RGBA{R: 0x6a, G: 0x00, B: 0xa8, A: 0xff},
	color.RGBA{R: 0xb1, G: 0x2a, B: 0x90, A: 0xff},
	color.RGBA{R: 0xe1, G: 0x64, B: 0x62, A: 0xff},
	color.RGBA{R: 0xfc, G: 0xa6, B: 0x36, A: 0xff},
}

// WordCloud renders keywords as a PNG. Earlier keywords are drawn larger.
func WordCloud(w io.Writer, keywords []string, opts CloudOptions) error {
	if len(keywords) == 0 {
		return ErrNothingToVisualize
	}
	if opts.FontPath == "" {
		return ErrNoFont
	}
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 400
	}

	weights := make(map[string]int, len(keywords))
	for i, kw := range keywords {
		weights[kw] = len(keywords) - i
	}

	cloud := wordclouds.NewWordcloud(weights,
		wordclouds.FontFile(opts.FontPath),
		wordclouds.Width(opts.Width),
		wordclouds.Height(opts.Height),
		wordclouds.Colors(plasma),
		wordclouds.BackgroundColor(color.White),
		wordclouds.FontMaxSize(opts.Height/4),
		wordclouds.FontMinSize(opts.Height/20),
	)
	return png.Encode(w, cloud.Draw())
}
