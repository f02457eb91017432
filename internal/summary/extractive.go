package summary

import (
	"context"
	"errors"
	textrank "github.com/DavidBelicza/TextRank"
	"github.com/JesusIslam/tldr"
	"pdfdigest/internal/text"
	"sort"
	"strings"
)

const maxSentences = 40

var errNoSentences = errors.New("no sentences found")

// TextRank is an extractive chunk summarizer ranking sentences by relation weight.
type TextRank struct{}

// SummarizeChunk picks the best ranked sentences that fit the length bounds.
func (TextRank) SummarizeChunk(ctx context.Context, chunk string, maxLen, minLen int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	tr := textrank.NewTextRank()
	tr.Populate(chunk, textrank.NewDefaultLanguage(), textrank.NewDefaultRule())
	tr.Ranking(textrank.NewDefaultAlgorithm())

	found := textrank.FindSentencesByRelationWeight(tr, maxSentences)
	ranked := make([]sentence, 0, len(found))
	for _, s := range found {
		ranked = append(ranked, sentence{pos: s.ID, text: s.Value})
	}
	summary, err := fitSentences(ranked, maxLen, minLen)
	if err != nil {
		return "", &ModelError{Backend: BackendTextRank, Err: err}
	}
	return summary, nil
}

// LexRank is an extractive chunk summarizer built on the tldr LexRank implementation.
type LexRank struct{}

// SummarizeChunk picks the most central sentences that fit the length bounds.
func (LexRank) SummarizeChunk(ctx context.Context, chunk string, maxLen, minLen int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	n := maxInt(1, minInt(maxSentences, strings.Count(chunk, ".")+strings.Count(chunk, "!")+strings.Count(chunk, "?")))
	found, err := tldr.New().Summarize(chunk, n)
	if err != nil {
		return "", &ModelError{Backend: BackendLexRank, Err: err}
	}
	ranked := make([]sentence, 0, len(found))
	for _, s := range found {
		pos := strings.Index(chunk, s)
		if pos < 0 {
			pos = len(chunk)
		}
		ranked = append(ranked, sentence{pos: pos, text: s})
	}
	summary, err := fitSentences(ranked, maxLen, minLen)
	if err != nil {
		return "", &ModelError{Backend: BackendLexRank, Err: err}
	}
	return summary, nil
}

type sentence struct {
	pos  int
	text string
}

// fitSentences takes ranked sentences, best first, while they fit in maxLen words and until
// minLen words are collected, then restores document order. When even the best sentence is too
// long it is cut to maxLen words.
func fitSentences(ranked []sentence, maxLen, minLen int) (string, error) {
	var picked []sentence
	total := 0
	for _, s := range ranked {
		s.text = text.Normalize(s.text)
		words := text.WordCount(s.text)
		if words == 0 || total+words > maxLen {
			continue
		}
		picked = append(picked, s)
		total += words
		if total >= minLen {
			break
		}
	}
	if len(picked) == 0 {
		for _, s := range ranked {
			if fields := strings.Fields(s.text); len(fields) > 0 {
				return strings.Join(fields[:minInt(len(fields), maxLen)], " "), nil
			}
		}
		return "", errNoSentences
	}
	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].pos < picked[j].pos
	})
	out := make([]string, 0, len(picked))
	for _, s := range picked {
		out = append(out, s.text)
	}
	return strings.Join(out, " "), nil
}
