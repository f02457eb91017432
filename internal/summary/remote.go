package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"io"
	"net/http"
	"strings"
	"time"
)

// Remote defaults target the hosted inference API serving a BART summarization model.
const (
	DefaultRemoteModel   = "facebook/bart-large-cnn"
	DefaultRemoteBaseURL = "https://api-inference.huggingface.co/models/"
	DefaultRemoteTimeout = 120 * time.Second
)

// RemoteConfig holds configuration for the remote summarization service.
type RemoteConfig struct {
	// URL is the full endpoint. Defaults to DefaultRemoteBaseURL + Model.
	URL string
	// Token is sent as a bearer token when set.
	Token   string
	Model   string
	Timeout time.Duration
	// RequestsPerSecond throttles calls to the service. Zero means unlimited.
	RequestsPerSecond float64
}

// Remote calls an abstractive summarization model over HTTP.
type Remote struct {
	client  *http.Client
	limiter *rate.Limiter
	url     string
	token   string
}

type remoteRequest struct {
	Inputs     string           `json:"inputs"`
	Parameters remoteParameters `json:"parameters"`
}

type remoteParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type remoteResult struct {
	SummaryText string `json:"summary_text"`
}

// NewRemote creates a Remote summarizer.
func NewRemote(cfg RemoteConfig) *Remote {
	if cfg.Model == "" {
		cfg.Model = DefaultRemoteModel
	}
	if cfg.URL == "" {
		cfg.URL = DefaultRemoteBaseURL + cfg.Model
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultRemoteTimeout
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return &Remote{
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		url:     cfg.URL,
		token:   cfg.Token,
	}
}

// SummarizeChunk posts one chunk and returns the generated summary text.
func (r *Remote) SummarizeChunk(ctx context.Context, text string, maxLen, minLen int) (string, error) {
	summary, err := r.summarize(ctx, text, maxLen, minLen)
	if err != nil {
		return "", &ModelError{Backend: BackendRemote, Err: err}
	}
	return summary, nil
}

func (r *Remote) summarize(ctx context.Context, text string, maxLen, minLen int) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	body, err := json.Marshal(remoteRequest{
		Inputs:     text,
		Parameters: remoteParameters{MaxLength: maxLen, MinLength: minLen, DoSample: false},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	logrus.Debugf("summarize request: %d bytes, max_length=%d min_length=%d", len(text), maxLen, minLen)
	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       strings.TrimSpace(string(b)),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	var results []remoteResult
	if err := json.Unmarshal(raw, &results); err != nil {
		// some deployments answer with a bare object
		var single remoteResult
		if err2 := json.Unmarshal(raw, &single); err2 != nil {
			return "", fmt.Errorf("failed to decode response: %w", err)
		}
		results = []remoteResult{single}
	}
	if len(results) == 0 || strings.TrimSpace(results[0].SummaryText) == "" {
		return "", fmt.Errorf("empty response from summarizer")
	}
	return strings.TrimSpace(results[0].SummaryText), nil
}
