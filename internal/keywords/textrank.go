package keywords

import (
	textrank "github.com/DavidBelicza/TextRank"
)

// TextRank ranks single words by their weight in the word co-occurrence graph.
type TextRank struct{}

// Candidates returns the heaviest words first.
func (TextRank) Candidates(text string, topN int) ([]Candidate, error) {
	tr := textrank.NewTextRank()
	tr.Populate(text, textrank.NewDefaultLanguage(), textrank.NewDefaultRule())
	tr.Ranking(textrank.NewDefaultAlgorithm())

	words := textrank.FindSingleWords(tr)
	cands := make([]Candidate, 0, len(words))
	for _, w := range words {
		cands = append(cands, Candidate{Text: w.Word, Score: float64(w.Weight)})
	}
	return truncate(cands, topN), nil
}
