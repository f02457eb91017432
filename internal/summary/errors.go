package summary

import (
	"errors"
	"fmt"
)

// ErrNothingToSummarize is returned for blank input. No model call is made.
var ErrNothingToSummarize = errors.New("nothing to summarize")

// ErrEmptyFragment marks a chunk the model answered with blank text.
var ErrEmptyFragment = errors.New("model returned an empty summary")

// ModelError is a failure of one chunk summarizer call.
type ModelError struct {
	Backend string
	Err     error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("%s summarizer: %v", e.Backend, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// SummarizationError is returned when every chunk of a document failed.
type SummarizationError struct {
	Chunks int
	Err    error
}

func (e *SummarizationError) Error() string {
	return fmt.Sprintf("summarization failed for all %d chunks: %v", e.Chunks, e.Err)
}

func (e *SummarizationError) Unwrap() error {
	return e.Err
}

// APIError is a non-200 response from a remote summarization service.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s - %s", e.StatusCode, e.Message, e.Body)
}
