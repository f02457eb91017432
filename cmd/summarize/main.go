package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
	"os"
	"os/signal"
	"path/filepath"
	"pdfdigest/internal/config"
	"pdfdigest/internal/export"
	"pdfdigest/internal/pipeline"
	"strings"
)

var (
	app  = kingpin.New("summarize", "consume a pdf file and write its summary, keywords and word cloud")
	args = struct {
		input     *string
		config    *string
		out       *string
		backend   *string
		generator *string
		minWords  *int
		keywords  *int
		font      *string
		logLevel  *string
	}{
		input:     app.Flag("in", "input file to process").Short('i').Required().ExistingFile(),
		config:    app.Flag("config", "TOML configuration file").Short('c').Envar("PDFDIGEST_CONFIG").String(),
		out:       app.Flag("out", "directory for the .txt, .pdf and .png artifacts").Short('o').Default(".").String(),
		backend:   app.Flag("backend", "summarizer: remote, textrank or lexrank").Short('b').String(),
		generator: app.Flag("generator", "keyword generator: rake, textrank, prose or frequency").Short('g').String(),
		minWords:  app.Flag("min-words", "target minimum summary length in words").Short('n').Int(),
		keywords:  app.Flag("keywords", "number of keywords to keep").Short('k').Int(),
		font:      app.Flag("font", "TrueType font for the word cloud").Envar("PDFDIGEST_FONT").String(),
		logLevel:  app.Flag("log-level", "debug, info, warn or error").Default("info").String(),
	}
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	level, err := logrus.ParseLevel(*args.logLevel)
	if err != nil {
		logrus.Fatal(err)
	}
	logrus.SetLevel(level)
	logrus.Infof("input: %s", *args.input)

	cfg, err := config.Load(*args.config)
	if err != nil {
		logrus.Fatal(err)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		logrus.Fatal(err)
	}

	p, err := pipeline.FromConfig(cfg)
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := p.Process(ctx, *args.input)
	if err != nil {
		logrus.Fatal(err)
	}

	fmt.Printf("Summary:\n%s\n\n", res.Summary)
	fmt.Printf("Keywords: %s\n", strings.Join(res.Keywords, ", "))

	if err := writeArtifacts(cfg, res); err != nil {
		logrus.Fatal(err)
	}
}

func applyFlags(cfg *config.Config) {
	if *args.backend != "" {
		cfg.Summary.Backend = *args.backend
	}
	if *args.generator != "" {
		cfg.Keywords.Generator = *args.generator
	}
	if *args.minWords > 0 {
		cfg.Summary.MinWords = *args.minWords
	}
	if *args.keywords > 0 {
		cfg.Keywords.Count = *args.keywords
	}
	if *args.font != "" {
		cfg.Export.FontPath = *args.font
	}
}

func writeArtifacts(cfg *config.Config, res *pipeline.Result) error {
	if err := os.MkdirAll(*args.out, 0o755); err != nil {
		return err
	}
	write := func(name string, fn func(f *os.File) error) error {
		path := filepath.Join(*args.out, name)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			_ = f.Close()
			_ = os.Remove(path)
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		logrus.Infof("wrote %s", path)
		return nil
	}

	if err := write(export.TextFilename(*args.input), func(f *os.File) error {
		return export.WriteText(f, res.Summary)
	}); err != nil {
		return err
	}
	if err := write(export.PDFFilename(*args.input), func(f *os.File) error {
		return export.WritePDF(f, res.Summary, export.DefaultLayout)
	}); err != nil {
		return err
	}

	err := write(export.CloudFilename(*args.input), func(f *os.File) error {
		return export.WordCloud(f, res.Keywords, export.CloudOptions{
			FontPath: cfg.Export.FontPath,
			Width:    cfg.Export.CloudWidth,
			Height:   cfg.Export.CloudHeight,
		})
	})
	if errors.Is(err, export.ErrNothingToVisualize) || errors.Is(err, export.ErrNoFont) {
		logrus.Warnf("word cloud skipped: %v", err)
		return nil
	}
	return err
}
