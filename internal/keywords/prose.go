package keywords

import (
	"github.com/jdkato/prose/v3"
	"pdfdigest/internal/bag"
	"strings"
)

var nounTags = map[string]bool{"NN": true, "NNS": true, "NNP": true, "NNPS": true}

// Prose counts named entities and nouns found by the prose tagger.
type Prose struct{}

// Candidates returns entities and nouns by descending frequency. Entities count double.
func (Prose) Candidates(text string, topN int) ([]Candidate, error) {
	doc, err := newDocument(text)
	if err != nil {
		return nil, err
	}

	counts := bag.New(0)
	for _, ent := range doc.Entities() {
		term := hyphenate(strings.ToLower(ent.Text))
		counts.Observe(term)
		counts.Observe(term)
	}
	for _, tok := range doc.Tokens() {
		if nounTags[tok.Tag] {
			counts.Observe(strings.ToLower(tok.Text))
		}
	}
	return ranked(counts, topN), nil
}

// newDocument tokenizes text, rejoining words hyphenated across line breaks.
func newDocument(text string) (*prose.Document, error) {
	return prose.NewDocument(text,
		prose.UsingTokenizer(prose.NewIterTokenizer(prose.UsingSanitizer(strings.NewReplacer("-\n", "")))),
	)
}

func ranked(counts *bag.Bag, topN int) []Candidate {
	total := counts.Total()
	entries := counts.Ranked()
	cands := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		cands = append(cands, Candidate{Text: e.Term, Score: float64(e.Count) / float64(total)})
	}
	return truncate(cands, topN)
}
