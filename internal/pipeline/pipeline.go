// Package pipeline runs the document digest: extract text, then summarize it and pull keywords.
package pipeline

import (
	"context"
	"fmt"
	"github.com/sirupsen/logrus"
	"pdfdigest/internal/config"
	"pdfdigest/internal/keywords"
	"pdfdigest/internal/pdf"
	"pdfdigest/internal/summary"
	"pdfdigest/internal/text"
)

// Result is the outcome of one digest.
type Result struct {
	// Text is the raw extracted text.
	Text     string
	Summary  string
	Keywords []string
}

// Pipeline holds the collaborators built once per process.
type Pipeline struct {
	// Extract reads the text of a document on disk.
	Extract      func(path string) (string, error)
	Summarizer   *summary.Controller
	Keywords     *keywords.Extractor
	MinWords     int
	KeywordCount int
}

// FromConfig builds a Pipeline and its model collaborators from cfg.
func FromConfig(cfg *config.Config) (*Pipeline, error) {
	model, err := summary.NewBackend(cfg.Summary.Backend, summary.RemoteConfig{
		URL:               cfg.Remote.URL,
		Token:             cfg.Remote.Token,
		Model:             cfg.Remote.Model,
		Timeout:           cfg.Remote.Timeout.Duration,
		RequestsPerSecond: cfg.Remote.RequestsPerSecond,
	})
	if err != nil {
		return nil, err
	}
	gen, err := keywords.NewGenerator(cfg.Keywords.Generator)
	if err != nil {
		return nil, err
	}

	extractor := keywords.NewExtractor(gen, keywords.NewFilter(
		keywords.WithLengthBounds(cfg.Keywords.MinLength, cfg.Keywords.MaxLength),
		keywords.WithSites(cfg.Keywords.Sites),
	))
	extractor.Sites = cfg.Keywords.Sites

	logrus.WithFields(logrus.Fields{
		"summarizer": cfg.Summary.Backend,
		"keywords":   cfg.Keywords.Generator,
	}).Info("pipeline ready")

	return &Pipeline{
		Extract: pdf.ExtractText,
		Summarizer: summary.NewController(model,
			summary.WithThresholds(cfg.Summary.SingleChunkWords, cfg.Summary.LargeDocWords),
			summary.WithChunkSizes(cfg.Summary.MediumChunkSize, cfg.Summary.LargeChunkSize),
			summary.WithMaxDepth(cfg.Summary.MaxDepth),
		),
		Keywords:     extractor,
		MinWords:     cfg.Summary.MinWords,
		KeywordCount: cfg.Keywords.Count,
	}, nil
}

// Process digests the document at path. Extraction and summarization failures are returned;
// a keyword generator failure only leaves the keyword list empty.
func (p *Pipeline) Process(ctx context.Context, path string) (*Result, error) {
	raw, err := p.Extract(path)
	if err != nil {
		return nil, err
	}
	log := logrus.WithField("path", path)
	log.Debugf("extracted %d bytes", len(raw))

	res, err := p.Digest(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("digest %s: %w", path, err)
	}
	log.WithFields(logrus.Fields{
		"summary_words": text.WordCount(res.Summary),
		"keywords":      len(res.Keywords),
	}).Info("document digested")
	return res, nil
}

// Digest summarizes raw text and extracts its keywords.
func (p *Pipeline) Digest(ctx context.Context, raw string) (*Result, error) {
	sum, err := p.Summarizer.Summarize(ctx, raw, p.MinWords)
	if err != nil {
		return nil, err
	}

	kws, err := p.Keywords.Extract(raw, p.KeywordCount)
	if err != nil {
		logrus.WithError(err).Warn("keyword extraction failed")
		kws = []string{}
	}
	return &Result{Text: raw, Summary: sum, Keywords: kws}, nil
}
