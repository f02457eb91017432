// Package summary produces an abstractive summary of long documents by splitting them into chunks
// small enough for a summarization model and stitching the per-chunk fragments back together.
package summary

import (
	"context"
	"fmt"
	"github.com/sirupsen/logrus"
	"pdfdigest/internal/text"
	"strings"
)

// Defaults for the chunking policy. Chunk sizes are in bytes of normalized text.
const (
	DefaultSingleChunkWords = 500
	DefaultLargeDocWords    = 3000
	DefaultMediumChunkSize  = 2000
	DefaultLargeChunkSize   = 3500
	DefaultMaxDepth         = 2
)

// ChunkSummarizer summarizes one chunk into a fragment between minLen and maxLen words.
// Implementations must generate deterministically.
type ChunkSummarizer interface {
	SummarizeChunk(ctx context.Context, text string, maxLen, minLen int) (string, error)
}

// ChunkSummarizerFunc adapts a function to the ChunkSummarizer interface.
type ChunkSummarizerFunc func(ctx context.Context, text string, maxLen, minLen int) (string, error)

func (fn ChunkSummarizerFunc) SummarizeChunk(ctx context.Context, text string, maxLen, minLen int) (string, error) {
	return fn(ctx, text, maxLen, minLen)
}

// Controller drives a ChunkSummarizer over a whole document. It holds no mutable state and
// is safe for concurrent use when its ChunkSummarizer is.
type Controller struct {
	model            ChunkSummarizer
	singleChunkWords int
	largeDocWords    int
	mediumChunkSize  int
	largeChunkSize   int
	maxDepth         int
}

// Option configures a Controller.
type Option func(*Controller)

// WithThresholds sets the word counts below which a document is kept whole, and at or above
// which the large chunk size is used.
func WithThresholds(singleChunkWords, largeDocWords int) Option {
	return func(c *Controller) {
		if singleChunkWords > 0 && largeDocWords >= singleChunkWords {
			c.singleChunkWords = singleChunkWords
			c.largeDocWords = largeDocWords
		}
	}
}

// WithChunkSizes sets the medium and large chunk sizes.
func WithChunkSizes(medium, large int) Option {
	return func(c *Controller) {
		if medium > 0 && large > 0 {
			c.mediumChunkSize = medium
			c.largeChunkSize = large
		}
	}
}

// WithMaxDepth bounds how many times a short joined summary is summarized again.
func WithMaxDepth(depth int) Option {
	return func(c *Controller) {
		if depth >= 0 {
			c.maxDepth = depth
		}
	}
}

// NewController returns a Controller that sends chunks to model.
func NewController(model ChunkSummarizer, opts ...Option) *Controller {
	c := &Controller{
		model:            model,
		singleChunkWords: DefaultSingleChunkWords,
		largeDocWords:    DefaultLargeDocWords,
		mediumChunkSize:  DefaultMediumChunkSize,
		largeChunkSize:   DefaultLargeChunkSize,
		maxDepth:         DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Summarize returns a summary of doc aiming for at least minWords words.
//
// Chunks whose model call fails are skipped; a SummarizationError is returned only when every
// chunk fails. Blank input returns ErrNothingToSummarize without calling the model.
func (c *Controller) Summarize(ctx context.Context, doc string, minWords int) (string, error) {
	return c.summarize(ctx, doc, minWords, 0)
}

func (c *Controller) summarize(ctx context.Context, doc string, minWords, depth int) (string, error) {
	if strings.TrimSpace(doc) == "" {
		return "", ErrNothingToSummarize
	}
	norm := text.Normalize(doc)
	chunks := split(norm, c.chunkSize(text.WordCount(norm)))

	log := logrus.WithFields(logrus.Fields{"chunks": len(chunks), "depth": depth})
	log.Debug("summarizing")

	var (
		fragments []string
		total     int
		lastErr   error
	)
	for i, chunk := range chunks {
		words := text.WordCount(chunk)
		maxLen, minLen := Bounds(words)
		fragment, err := c.model.SummarizeChunk(ctx, chunk, maxLen, minLen)
		if err == nil && strings.TrimSpace(fragment) == "" {
			err = &ModelError{Backend: fmt.Sprintf("%T", c.model), Err: ErrEmptyFragment}
		}
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			log.WithError(err).WithField("chunk", i).Warn("chunk summarization failed, skipping")
			lastErr = err
			continue
		}
		fragments = append(fragments, fragment)
		total += text.WordCount(fragment)
		if total >= minWords && len(chunks) > 1 {
			break
		}
	}
	if len(fragments) == 0 {
		return "", &SummarizationError{Chunks: len(chunks), Err: lastErr}
	}

	joined := text.Normalize(strings.Join(fragments, " "))
	if text.WordCount(joined) >= minWords || len(chunks) < 2 || depth >= c.maxDepth || len(joined) >= len(norm) {
		return joined, nil
	}

	refined, err := c.summarize(ctx, joined, minWords, depth+1)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.WithError(err).Warn("refinement failed, keeping joined summary")
		return joined, nil
	}
	return refined, nil
}

// zero means no split
func (c *Controller) chunkSize(words int) int {
	switch {
	case words < c.singleChunkWords:
		return 0
	case words < c.largeDocWords:
		return c.mediumChunkSize
	default:
		return c.largeChunkSize
	}
}
