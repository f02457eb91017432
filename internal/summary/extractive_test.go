package summary

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pdfdigest/internal/text"
	"testing"
)

const article = `The city council approved a new budget for public transport on Monday. ` +
	`The budget funds twenty electric buses and a new tram line across the river. ` +
	`Council members argued for months about the cost of the tram line. ` +
	`Supporters say electric buses will cut air pollution in the city centre. ` +
	`Critics worry that the tram line will take years to build. ` +
	`Construction of the tram line is expected to begin next spring.`

func TestFitSentences(t *testing.T) {
	ranked := []sentence{
		{pos: 30, text: "third sentence has five words"},
		{pos: 0, text: "first  sentence\nhas five words"},
		{pos: 10, text: "second sentence is far too long to fit in the remaining budget"},
		{pos: 20, text: "short one"},
	}

	got, err := fitSentences(ranked, 12, 7)
	require.NoError(t, err)
	assert.Equal(t, "first sentence has five words third sentence has five words", got)

	got, err = fitSentences(ranked, 12, 3)
	require.NoError(t, err)
	assert.Equal(t, "third sentence has five words", got)
}

func TestFitSentencesTruncatesOversizedBest(t *testing.T) {
	got, err := fitSentences([]sentence{{text: "one two three four five six"}}, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, "one two three four", got)

	_, err = fitSentences(nil, 10, 5)
	assert.ErrorIs(t, err, errNoSentences)
}

func TestExtractiveBackends(t *testing.T) {
	for name, backend := range map[string]ChunkSummarizer{
		"textrank": TextRank{},
		"lexrank":  LexRank{},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := backend.SummarizeChunk(context.Background(), article, 30, 10)
			require.NoError(t, err)
			assert.NotEmpty(t, got)
			assert.LessOrEqual(t, text.WordCount(got), 30)
		})
	}
}

func TestExtractiveBackendsHonourContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := TextRank{}.SummarizeChunk(ctx, article, 30, 10)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = LexRank{}.SummarizeChunk(ctx, article, 30, 10)
	assert.ErrorIs(t, err, context.Canceled)
}
