// Package text holds the normalisation helpers shared by the summary and keyword pipelines.
package text

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	urlPattern = regexp.MustCompile(`(?i)(https?|www\.)\S*`)
)

// Normalize strips control characters, collapses whitespace runs to a single space and trims.
// Whitespace control characters (tab, newline, CR, VT, FF) count as whitespace, not noise.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = true
			continue
		case isControl(r):
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

func isControl(r rune) bool {
	return r <= 0x1f || (r >= 0x7f && r <= 0x9f)
}

// StripNoise removes URL-like tokens and every case-insensitive occurrence of the given site names.
func StripNoise(s string, sites []string) string {
	s = urlPattern.ReplaceAllString(s, " ")
	for _, site := range sites {
		if site == "" {
			continue
		}
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(site))
		s = re.ReplaceAllString(s, " ")
	}
	return Normalize(s)
}

// WordCount returns the number of whitespace separated fields in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
