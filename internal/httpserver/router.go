// Package httpserver is the thin HTTP wrapper around the synthscan core: it
// decodes uploads, hands raw bytes and a filename to the analyzer, and
// serializes the result record. No analysis logic lives here.
package httpserver

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/mkrasov/synthscan"
)

// maxUploadBytes bounds the multipart upload size.
const maxUploadBytes = 32 << 20

type Router struct {
	analyzer *synthscan.Config
}

// NewRouter builds the HTTP handler for the analysis API.
func NewRouter(analyzer *synthscan.Config, allowedOrigins []string) http.Handler {
	r := &Router{analyzer: analyzer}
	mux := chi.NewRouter()

	mux.Use(requestLogger)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.Post("/api/analyze", r.wrap(r.handleAnalyze))
	mux.Post("/api/analyze-url", r.wrap(r.handleAnalyzeURL))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
}

// requestLogger tags each request with an ID and logs it through slog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := uuid.NewString()
		start := time.Now()
		next.ServeHTTP(w, req)
		slog.Info("request",
			"id", id,
			"method", req.Method,
			"path", req.URL.Path,
			"duration", time.Since(start))
	})
}

// POST /api/analyze
// Multipart form with a "file" field. Responds with the analysis result.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		return fmt.Errorf("invalid multipart form: %w", err)
	}
	file, header, err := req.FormFile("file")
	if err != nil {
		return fmt.Errorf("missing file field: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("reading upload: %w", err)
	}

	result := r.analyzer.Analyze(req.Context(), data, header.Filename)
	return writeJSON(w, result)
}

// POST /api/analyze-url
// Body: {"url": "<remote file>"}. Fetches the file and analyzes it.
func (r *Router) handleAnalyzeURL(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if body.URL == "" {
		return fmt.Errorf("url is required")
	}

	dl, err := r.analyzer.Download(req.Context(), body.URL, synthscan.DownloadOpts{})
	if err != nil || dl == nil {
		return fmt.Errorf("could not fetch %s", body.URL)
	}

	result := r.analyzer.Analyze(req.Context(), dl.Data, path.Base(body.URL))
	return writeJSON(w, result)
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}
