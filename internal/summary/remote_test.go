package summary

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRemoteSummarizeChunk(t *testing.T) {
	var got remoteRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`[{"summary_text": "  A short summary. "}]`))
	}))
	defer srv.Close()

	r := NewRemote(RemoteConfig{URL: srv.URL, Token: "secret"})
	summary, err := r.SummarizeChunk(context.Background(), "some long text", 120, 40)
	require.NoError(t, err)
	assert.Equal(t, "A short summary.", summary)
	assert.Equal(t, "some long text", got.Inputs)
	assert.Equal(t, remoteParameters{MaxLength: 120, MinLength: 40, DoSample: false}, got.Parameters)
}

func TestRemoteObjectResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"summary_text": "object form"}`))
	}))
	defer srv.Close()

	summary, err := NewRemote(RemoteConfig{URL: srv.URL}).SummarizeChunk(context.Background(), "text", 50, 30)
	require.NoError(t, err)
	assert.Equal(t, "object form", summary)
}

func TestRemoteErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusServiceUnavailable, `{"error": "model is loading"}`},
		{"empty list", http.StatusOK, `[]`},
		{"blank summary", http.StatusOK, `[{"summary_text": "  "}]`},
		{"not json", http.StatusOK, `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewRemote(RemoteConfig{URL: srv.URL}).SummarizeChunk(context.Background(), "text", 50, 30)
			var modelErr *ModelError
			require.True(t, errors.As(err, &modelErr))
			assert.Equal(t, BackendRemote, modelErr.Backend)
		})
	}
}

func TestRemoteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model is loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewRemote(RemoteConfig{URL: srv.URL}).SummarizeChunk(context.Background(), "text", 50, 30)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "model is loading", apiErr.Body)
}

func TestNewRemoteDefaults(t *testing.T) {
	r := NewRemote(RemoteConfig{})
	assert.Equal(t, DefaultRemoteBaseURL+DefaultRemoteModel, r.url)
	assert.Equal(t, DefaultRemoteTimeout, r.client.Timeout)

	r = NewRemote(RemoteConfig{Model: "sshleifer/distilbart-cnn-12-6"})
	assert.Equal(t, DefaultRemoteBaseURL+"sshleifer/distilbart-cnn-12-6", r.url)
}

func TestNewBackend(t *testing.T) {
	for name, want := range map[string]ChunkSummarizer{
		"":         &Remote{},
		"remote":   &Remote{},
		"textrank": TextRank{},
		"LexRank":  LexRank{},
	} {
		got, err := NewBackend(name, RemoteConfig{})
		require.NoError(t, err, name)
		assert.IsType(t, want, got, name)
	}
	_, err := NewBackend("bart", RemoteConfig{})
	assert.Error(t, err)
}

func TestRemoteThrottle(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`[{"summary_text": "ok"}]`))
	}))
	defer srv.Close()

	r := NewRemote(RemoteConfig{URL: srv.URL, RequestsPerSecond: 0.01})
	_, err := r.SummarizeChunk(context.Background(), "first", 50, 30)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = r.SummarizeChunk(ctx, "second", 50, 30)
	require.Error(t, err)
	var modelErr *ModelError
	assert.True(t, errors.As(err, &modelErr))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
