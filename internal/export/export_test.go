package export

import (
	"bytes"
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestFilenames(t *testing.T) {
	assert.Equal(t, "Q3 report_summary.txt", TextFilename("reports/Q3 report.pdf"))
	assert.Equal(t, "paper_summary.pdf", PDFFilename(`C:\Users\me\paper.pdf`))
	assert.Equal(t, "paper_cloud.png", CloudFilename("paper.pdf"))
	assert.Equal(t, "document_summary.txt", TextFilename(""))
	assert.Equal(t, "document_summary.txt", TextFilename(".pdf"))
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, "A summary with ünïcode."))
	assert.Equal(t, "A summary with ünïcode.", buf.String())
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"aaa bbb", "ccc"}, Wrap("aaa bbb ccc", 7))
	assert.Equal(t, []string{"x", "abcd", "efgh", "ij"}, Wrap("x abcdefghij", 4))
	assert.Equal(t, []string{"one", "", "two"}, Wrap("one\n\ntwo", 10))
	assert.Equal(t, []string{""}, Wrap("", 10))
	for _, line := range Wrap(strings.Repeat("lorem ipsum dolor ", 40), 0) {
		assert.LessOrEqual(t, len([]rune(line)), DefaultLayout.Columns)
	}
}

func TestWritePDFPaginates(t *testing.T) {
	lines := make([]string, 120)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d of the summary", i+1)
	}

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, strings.Join(lines, "\n"), DefaultLayout))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "%PDF-"))

	pages := strings.Count(out, "/Type /Page") - strings.Count(out, "/Type /Pages")
	assert.Equal(t, 3, pages, "50 lines fit on a page")
}

func TestWritePDFEmptySummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, "", DefaultLayout))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))
}

func TestWordCloudNothingToVisualize(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WordCloud(&buf, nil, CloudOptions{FontPath: "font.ttf"}), ErrNothingToVisualize)
	assert.ErrorIs(t, WordCloud(&buf, []string{}, CloudOptions{}), ErrNothingToVisualize)
	assert.ErrorIs(t, WordCloud(&buf, []string{"democracy"}, CloudOptions{}), ErrNoFont)
	assert.Zero(t, buf.Len())
}
