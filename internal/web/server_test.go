package web

import (
	"bytes"
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"pdfdigest/internal/pdf"
	"pdfdigest/internal/pipeline"
	"pdfdigest/internal/store"
	"pdfdigest/internal/summary"
	"strings"
	"testing"
	"time"
)

type fakeDigester struct {
	content string
	result  *pipeline.Result
	err     error
}

func (f *fakeDigester) Process(_ context.Context, path string) (*pipeline.Result, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f.content = string(b)
	return f.result, f.err
}

// slowDigester blocks until its context is done.
type slowDigester struct{}

func (slowDigester) Process(ctx context.Context, _ string) (*pipeline.Result, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func newTestServer(t *testing.T, d Digester) http.Handler {
	return newTestServerConfig(t, d, Config{Theme: "classic"})
}

func newTestServerConfig(t *testing.T, d Digester, cfg Config) http.Handler {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return NewServer(d, st, cfg).Router()
}

func upload(t *testing.T, h http.Handler, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/digests", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(newTestServer(t, &fakeDigester{}), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestIndexThemes(t *testing.T) {
	h := newTestServer(t, &fakeDigester{})

	rec := get(h, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Upload a PDF to begin.")
	assert.NotContains(t, rec.Body.String(), "How it works")

	rec = get(h, "/?theme=midnight")
	assert.Contains(t, rec.Body.String(), "PDF Digest")
	assert.Contains(t, rec.Body.String(), "How it works")

	rec = get(h, "/?theme=unknown")
	assert.Contains(t, rec.Body.String(), "Upload any PDF to summarize it")
}

func TestUploadAndDownload(t *testing.T) {
	d := &fakeDigester{result: &pipeline.Result{
		Text:     "Raw extracted text of the report.",
		Summary:  "The report says <b>growth</b> slowed.",
		Keywords: []string{"growth", "inflation"},
	}}
	h := newTestServer(t, d)

	rec := upload(t, h, "Q3 Report.PDF", "%PDF-1.4 fake")
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "%PDF-1.4 fake", d.content)
	location := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/digests/"))
	assert.True(t, strings.HasSuffix(location, "?theme=classic"))
	base := strings.TrimSuffix(location, "?theme=classic")

	rec = get(h, location)
	require.Equal(t, http.StatusOK, rec.Code)
	page := rec.Body.String()
	assert.Contains(t, page, "The report says &lt;b&gt;growth&lt;/b&gt; slowed.")
	assert.Contains(t, page, "Raw extracted text of the report.")
	assert.Contains(t, page, `<span class="keyword">inflation</span>`)

	rec = get(h, base+"/summary.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "The report says <b>growth</b> slowed.", rec.Body.String())
	assert.Equal(t, `attachment; filename="Q3 Report_summary.txt"`, rec.Header().Get("Content-Disposition"))

	rec = get(h, base+"/summary.pdf")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))

	rec = get(h, base+"/cloud.png")
	assert.Equal(t, http.StatusNotFound, rec.Code, "no font configured")

	rec = get(h, "/")
	assert.Contains(t, rec.Body.String(), "Q3 Report.PDF")
}

func TestUploadRejected(t *testing.T) {
	h := newTestServer(t, &fakeDigester{})

	rec := upload(t, h, "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = upload(t, h, "notes.txt", "hello")
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Contains(t, rec.Body.String(), "Only PDF files are supported.")
}

func TestUploadPipelineErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unreadable pdf", &pdf.ExtractionError{Path: "x.pdf", Err: errors.New("bad xref")}, http.StatusUnprocessableEntity},
		{"no text", summary.ErrNothingToSummarize, http.StatusUnprocessableEntity},
		{"model down", &summary.SummarizationError{Chunks: 3, Err: errors.New("503")}, http.StatusBadGateway},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"other", errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := upload(t, newTestServer(t, &fakeDigester{err: tt.err}), "doc.pdf", "%PDF")
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `class="error"`)
		})
	}
}

func TestUploadTimeout(t *testing.T) {
	h := newTestServerConfig(t, slowDigester{}, Config{Theme: "classic", RequestTimeout: 20 * time.Millisecond})
	rec := upload(t, h, "doc.pdf", "%PDF")
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Summarizing took too long.")
	assert.Equal(t, 1, strings.Count(body, "<html"), "the error page is written once")
}

func TestUnknownDigest(t *testing.T) {
	h := newTestServer(t, &fakeDigester{})
	for _, path := range []string{"/digests/nope", "/digests/nope/summary.txt", "/digests/nope/summary.pdf", "/digests/nope/cloud.png"} {
		assert.Equal(t, http.StatusNotFound, get(h, path).Code, path)
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview("  short \n"))
	long := strings.Repeat("é", previewLength+5)
	assert.Equal(t, strings.Repeat("é", previewLength)+"...", preview(long))
}
