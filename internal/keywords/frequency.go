package keywords

import (
	"bufio"
	"bytes"
	"pdfdigest/internal/bag"
	"strings"
	"unicode"
)

// Frequency is a bag-of-words generator: the most frequent non-particle words win.
type Frequency struct{}

// Candidates returns words by descending frequency.
func (Frequency) Candidates(text string, topN int) ([]Candidate, error) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), len(text)+bufio.MaxScanTokenSize)
	scanner.Split(scanCleanWords)

	counts := bag.New(0)
	for scanner.Scan() {
		counts.Observe(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ranked(counts, topN), nil
}

// scanCleanWords is bufio.ScanWords with lowercasing, punctuation trimming and particle removal.
func scanCleanWords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	advance, token, err = bufio.ScanWords(data, atEOF)
	if err != nil || token == nil {
		return
	}
	token = bytes.TrimFunc(bytes.ToLower(token), unicode.IsPunct)
	if particles[string(token)] {
		return advance, []byte{}, nil
	}
	return
}

var particles = toSet(
	"the", "of", "and", "a", "to", "is", "in", "or", "for", "be", "may", "are", "as", "on", "with", "by", "not", "one",
	"that", "at", "an", "has", "if", "he", "each", "it", "can", "such", "this", "his", "will", "use", "any", "all", "from",
	"no", "per", "they", "but", "their", "who", "during", "should", "only", "using", "she", "than", "once", "into", "been",
	"being", "does", "then", "thus", "between", "do", "other", "used", "where", "some", "also", "was", "were", "we", "our",
	"these", "those", "which", "there", "have", "had", "its", "more", "most", "been", "about", "would", "could",
)

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
