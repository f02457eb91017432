package keywords

import (
	rake "github.com/afjoseph/RAKE.Go"
)

// RAKE scores phrases with the Rapid Automatic Keyword Extraction algorithm.
type RAKE struct{}

// Candidates returns RAKE phrases, hyphen-joined, best first.
func (RAKE) Candidates(text string, topN int) ([]Candidate, error) {
	pairs := rake.RunRake(text)
	cands := make([]Candidate, 0, len(pairs))
	for _, p := range pairs {
		cands = append(cands, Candidate{Text: hyphenate(p.Key), Score: p.Value})
	}
	return truncate(cands, topN), nil
}
