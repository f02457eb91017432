// Package keywords turns document text into a short, clean list of topical keywords.
//
// A Generator proposes ranked candidates and a Filter rejects the junk: URLs, platform names,
// digits, low-variety strings and other extraction noise.
package keywords

import (
	"fmt"
	"github.com/sirupsen/logrus"
	"pdfdigest/internal/text"
	"strings"
)

// overFetch is how many candidates are requested per keyword wanted. Most are discarded.
const overFetch = 3

// Candidate is a proposed keyword with its relevance score.
type Candidate struct {
	Text  string
	Score float64
}

// Generator proposes keyword candidates ordered by descending relevance.
type Generator interface {
	Candidates(text string, topN int) ([]Candidate, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(text string, topN int) ([]Candidate, error)

// Candidates calls fn.
func (fn GeneratorFunc) Candidates(text string, topN int) ([]Candidate, error) {
	return fn(text, topN)
}

// Generator names accepted by NewGenerator.
const (
	GeneratorRAKE      = "rake"
	GeneratorTextRank  = "textrank"
	GeneratorProse     = "prose"
	GeneratorFrequency = "frequency"
)

// NewGenerator resolves a generator by name.
func NewGenerator(name string) (Generator, error) {
	switch strings.ToLower(name) {
	case GeneratorRAKE, "":
		return RAKE{}, nil
	case GeneratorTextRank:
		return TextRank{}, nil
	case GeneratorProse:
		return Prose{}, nil
	case GeneratorFrequency:
		return Frequency{}, nil
	default:
		return nil, fmt.Errorf("unknown keyword generator %q, expected one of rake, textrank, prose, frequency", name)
	}
}

// Extractor runs a Generator over noise-stripped text and filters its candidates.
type Extractor struct {
	Generator Generator
	Filter    *Filter
	// Sites are stripped from the text before candidates are generated.
	Sites []string
}

// NewExtractor returns an Extractor using the default site list.
func NewExtractor(gen Generator, filter *Filter) *Extractor {
	return &Extractor{
		Generator: gen,
		Filter:    filter,
		Sites:     DefaultSites,
	}
}

// Extract returns at most n keywords for doc, in relevance order.
func (e *Extractor) Extract(doc string, n int) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}
	clean := text.StripNoise(doc, e.Sites)
	if clean == "" {
		return []string{}, nil
	}
	candidates, err := e.Generator.Candidates(clean, n*overFetch)
	if err != nil {
		return nil, fmt.Errorf("generate keyword candidates: %w", err)
	}
	keywords := e.Filter.FilterAndDedupe(candidates, n)
	logrus.WithFields(logrus.Fields{
		"candidates": len(candidates),
		"kept":       len(keywords),
	}).Debug("keywords filtered")
	return keywords, nil
}

func hyphenate(phrase string) string {
	return strings.Join(strings.Fields(phrase), "-")
}

func truncate(cands []Candidate, topN int) []Candidate {
	if topN > 0 && len(cands) > topN {
		return cands[:topN]
	}
	return cands
}
