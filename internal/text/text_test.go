package text

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"only whitespace", " \t\n\r ", ""},
		{"collapses runs", "a  b\t\tc\n\nd", "a b c d"},
		{"trims", "  hello world  ", "hello world"},
		{"drops control characters", "he\x00llo\x07 wor\x7fld\u0085", "hello world"},
		{"control between spaces", "a \x01 b", "a b"},
		{"keeps unicode letters", "café  naïve", "café naïve"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"  \x00\x1f mixed\t\tcontrol \x9f and\n\nspace  ",
		"\x7f\x80\x81",
		"line one\r\nline two three",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestStripNoise(t *testing.T) {
	in := "Watch it on YouTube at https://youtube.com/watch?v=1 or www.example.org today, see Vercel docs"
	got := StripNoise(in, []string{"youtube", "vercel"})
	assert.Equal(t, "Watch it on at or today, see docs", got)
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   "))
	assert.Equal(t, 3, WordCount(" one two\nthree "))
}
