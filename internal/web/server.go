// Package web serves the upload page, the digest results and their downloads.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"pdfdigest/internal/export"
	"pdfdigest/internal/pdf"
	"pdfdigest/internal/pipeline"
	"pdfdigest/internal/store"
	"pdfdigest/internal/summary"
	"strings"
	"time"
)

const (
	previewLength = 2000
	recentCount   = 10
)

// Digester runs the document pipeline on a file.
type Digester interface {
	Process(ctx context.Context, path string) (*pipeline.Result, error)
}

// Config holds the server settings.
type Config struct {
	MaxUploadBytes int64
	// RequestTimeout bounds the digest of one upload.
	RequestTimeout time.Duration
	// Theme is used when a request names no theme.
	Theme  string
	Cloud  export.CloudOptions
	Layout export.Layout
}

// Server handles HTTP requests.
type Server struct {
	digester Digester
	store    *store.Store
	cfg      Config
}

// NewServer creates a Server.
func NewServer(d Digester, s *store.Store, cfg Config) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.Layout == (export.Layout{}) {
		cfg.Layout = export.DefaultLayout
	}
	return &Server{digester: d, store: s, cfg: cfg}
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	r.Get("/", s.handleIndex)
	r.Post("/digests", s.handleUpload)
	r.Route("/digests/{id}", func(r chi.Router) {
		r.Get("/", s.handleDigest)
		r.Get("/summary.txt", s.handleText)
		r.Get("/summary.pdf", s.handlePDF)
		r.Get("/cloud.png", s.handleCloud)
	})
	return r
}

type pageData struct {
	Theme  Theme
	Themes []string
	Error  string
	Recent []*store.Digest
	Digest *store.Digest
}

func (s *Server) page(r *http.Request) pageData {
	return pageData{
		Theme:  lookupTheme(r.URL.Query().Get("theme"), s.cfg.Theme),
		Themes: ThemeNames(),
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := s.page(r)
	recent, err := s.store.Recent(r.Context(), recentCount)
	if err != nil {
		logrus.WithError(err).Error("list recent digests")
	}
	data.Recent = recent
	s.render(w, http.StatusOK, indexPage, data)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	data := s.page(r)
	fail := func(status int, msg string) {
		data.Error = msg
		s.render(w, status, indexPage, data)
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(http.StatusRequestEntityTooLarge, fmt.Sprintf("The file is larger than %d MB.", s.cfg.MaxUploadBytes>>20))
			return
		}
		fail(http.StatusBadRequest, "Choose a PDF file to upload.")
		return
	}
	defer file.Close()
	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		fail(http.StatusUnsupportedMediaType, "Only PDF files are supported.")
		return
	}

	tmp, err := spool(file)
	if err != nil {
		logrus.WithError(err).Error("spool upload")
		fail(http.StatusInternalServerError, "The upload could not be stored.")
		return
	}
	defer os.Remove(tmp)

	ctx := r.Context()
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}
	res, err := s.digester.Process(ctx, tmp)
	if err != nil {
		status, msg := classify(err)
		logrus.WithError(err).WithField("file", header.Filename).Warn("digest failed")
		fail(status, msg)
		return
	}

	d := &store.Digest{
		Filename: filepath.Base(header.Filename),
		Summary:  res.Summary,
		Preview:  preview(res.Text),
		Keywords: res.Keywords,
	}
	if err := s.store.Save(r.Context(), d); err != nil {
		logrus.WithError(err).Error("save digest")
		fail(http.StatusInternalServerError, "The summary could not be saved.")
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/digests/%s?theme=%s", d.ID, data.Theme.Name), http.StatusSeeOther)
}

// classify maps a pipeline error to a status code and a message for the user.
func classify(err error) (int, string) {
	var extErr *pdf.ExtractionError
	var sumErr *summary.SummarizationError
	switch {
	case errors.As(err, &extErr):
		return http.StatusUnprocessableEntity, "The PDF could not be read. It may be corrupt, encrypted or scanned."
	case errors.Is(err, summary.ErrNothingToSummarize):
		return http.StatusUnprocessableEntity, "The PDF contains no text to summarize."
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Summarizing took too long. Try a shorter document."
	case errors.As(err, &sumErr):
		return http.StatusBadGateway, "The summarization model failed. Please try again."
	default:
		return http.StatusInternalServerError, "Something went wrong."
	}
}

func (s *Server) digest(w http.ResponseWriter, r *http.Request) (*store.Digest, bool) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return nil, false
	}
	if err != nil {
		logrus.WithError(err).Error("get digest")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return nil, false
	}
	return d, true
}

func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	d, ok := s.digest(w, r)
	if !ok {
		return
	}
	data := s.page(r)
	data.Digest = d
	s.render(w, http.StatusOK, digestPage, data)
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	d, ok := s.digest(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteText(&buf, d.Summary); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	attach(w, "text/plain; charset=utf-8", export.TextFilename(d.Filename), &buf)
}

func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	d, ok := s.digest(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WritePDF(&buf, d.Summary, s.cfg.Layout); err != nil {
		logrus.WithError(err).Error("render summary pdf")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	attach(w, "application/pdf", export.PDFFilename(d.Filename), &buf)
}

func (s *Server) handleCloud(w http.ResponseWriter, r *http.Request) {
	d, ok := s.digest(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	err := export.WordCloud(&buf, d.Keywords, s.cfg.Cloud)
	if errors.Is(err, export.ErrNothingToVisualize) || errors.Is(err, export.ErrNoFont) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		logrus.WithError(err).Error("render word cloud")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = buf.WriteTo(w)
}

func (s *Server) render(w http.ResponseWriter, status int, tmpl *template.Template, data pageData) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logrus.WithError(err).Error("render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func attach(w http.ResponseWriter, contentType, filename string, body *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = body.WriteTo(w)
}

func spool(src io.Reader) (string, error) {
	f, err := os.CreateTemp("", "pdfdigest-*.pdf")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func preview(text string) string {
	r := []rune(strings.TrimSpace(text))
	if len(r) <= previewLength {
		return string(r)
	}
	return string(r[:previewLength]) + "..."
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logrus.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start),
			"request_id": middleware.GetReqID(r.Context()),
		}).Info("request")
	})
}
