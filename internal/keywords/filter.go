package keywords

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Default bounds. Lengths are counted in characters after trimming and lowercasing.
const (
	DefaultMinLength = 3
	DefaultMaxLength = 25
	minAlphaRatio    = 0.6
	maxRepeat        = 4
)

// DefaultSites are platform names rejected as keywords and stripped from text before extraction.
var DefaultSites = []string{"youtube", "vercel", "github", "linkedin", "twitter", "facebook"}

var (
	allowedChars = regexp.MustCompile(`^[a-z-]+$`)
	vowels       = regexp.MustCompile(`[aeiou]`)
	nonsense     = []*regexp.Regexp{
		regexp.MustCompile(`^[a-z]{1,2}\d+$`),
		regexp.MustCompile(`^\d+[a-z]{1,2}$`),
		regexp.MustCompile(`^[a-z]{3}\d{3,}$`),
	}
	urlMarkers = []string{"http", "www.", ".com", ".app", ".io", ".org"}
)

// Filter decides which keyword candidates are worth keeping.
type Filter struct {
	minLength int
	maxLength int
	markers   []string
}

// FilterOption configures a Filter.
type FilterOption func(*Filter)

// WithLengthBounds sets the accepted length range. Invalid ranges are ignored.
func WithLengthBounds(min, max int) FilterOption {
	return func(f *Filter) {
		if min > 0 && max >= min {
			f.minLength = min
			f.maxLength = max
		}
	}
}

// WithSites replaces the platform names rejected as keywords.
func WithSites(sites []string) FilterOption {
	return func(f *Filter) {
		f.markers = append(append([]string{}, urlMarkers...), lower(sites)...)
	}
}

// NewFilter returns a Filter with the default bounds and site list.
func NewFilter(opts ...FilterOption) *Filter {
	f := &Filter{
		minLength: DefaultMinLength,
		maxLength: DefaultMaxLength,
	}
	WithSites(DefaultSites)(f)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// IsValid reports whether candidate passes every quality check.
func (f *Filter) IsValid(candidate string) bool {
	kw := strings.ToLower(strings.TrimSpace(candidate))
	n := utf8.RuneCountInString(kw)
	if n < f.minLength || n > f.maxLength {
		return false
	}
	for _, m := range f.markers {
		if strings.Contains(kw, m) {
			return false
		}
	}
	if !allowedChars.MatchString(kw) {
		return false
	}
	if !vowels.MatchString(kw) {
		return false
	}
	if alphaRatio(kw) < minAlphaRatio {
		return false
	}
	if distinct(kw) < maxInt(3, n/2) {
		return false
	}
	for _, re := range nonsense {
		if re.MatchString(kw) {
			return false
		}
	}
	return !repeats(kw, maxRepeat)
}

// FilterAndDedupe keeps valid candidates in their given order, dropping case-insensitive duplicates,
// until limit keywords are collected. The first-seen casing is returned.
func (f *Filter) FilterAndDedupe(candidates []Candidate, limit int) []string {
	keywords := make([]string, 0, maxInt(limit, 0))
	if limit <= 0 {
		return keywords
	}
	seen := make(map[string]struct{}, limit)
	for _, c := range candidates {
		if len(keywords) == limit {
			break
		}
		kw := strings.TrimSpace(c.Text)
		key := strings.ToLower(kw)
		if _, ok := seen[key]; ok {
			continue
		}
		if !f.IsValid(kw) {
			continue
		}
		seen[key] = struct{}{}
		keywords = append(keywords, kw)
	}
	return keywords
}

func alphaRatio(s string) float64 {
	var letters, total int
	for _, r := range s {
		total++
		if r >= 'a' && r <= 'z' {
			letters++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(letters) / float64(total)
}

func distinct(s string) int {
	set := make(map[rune]struct{})
	for _, r := range s {
		set[r] = struct{}{}
	}
	return len(set)
}

// repeats reports whether any rune occurs n or more times in a row.
func repeats(s string, n int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run >= n {
			return true
		}
	}
	return false
}

func lower(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
