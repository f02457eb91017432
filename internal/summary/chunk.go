package summary

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Length bounds, in words, passed to the chunk summarizer.
const (
	maxLenCap      = 150
	maxLenFloor    = 50
	minLenFloor    = 30
	maxLenFraction = 0.5
	minLenFraction = 0.2
)

// Bounds returns the max and min summary lengths for a chunk of the given word count.
// minLen never exceeds maxLen.
func Bounds(chunkWords int) (maxLen, minLen int) {
	maxLen = minInt(maxLenCap, maxInt(maxLenFloor, round(float64(chunkWords)*maxLenFraction)))
	minLen = maxInt(minLenFloor, round(float64(chunkWords)*minLenFraction))
	return maxLen, minInt(minLen, maxLen)
}

// split partitions s into contiguous chunks of at most size bytes. A chunk ends at the last
// space before the size boundary when there is one, otherwise at the last rune boundary.
// size <= 0 yields s as a single chunk.
func split(s string, size int) []string {
	if s == "" {
		return nil
	}
	if size <= 0 || len(s) <= size {
		return []string{s}
	}
	var chunks []string
	for len(s) > size {
		cut := strings.LastIndexByte(s[:size+1], ' ')
		if cut <= 0 {
			cut = size
			for cut > 0 && !utf8.RuneStart(s[cut]) {
				cut--
			}
			if cut == 0 {
				// a single rune wider than size
				_, cut = utf8.DecodeRuneInString(s)
			}
		}
		if chunk := strings.TrimSpace(s[:cut]); chunk != "" {
			chunks = append(chunks, chunk)
		}
		s = strings.TrimLeft(s[cut:], " ")
	}
	if s != "" {
		chunks = append(chunks, s)
	}
	return chunks
}

func round(f float64) int {
	return int(math.Round(f))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
