// Package synthscan assigns a heuristic synthetic-vs-authentic score to an
// uploaded file. It combines metadata inspection, OCR keyword scanning, and a
// battery of pixel-statistics signals for images, plus lightweight stylometric
// scoring for text-bearing documents.
//
// The scorer is an explainable rule engine, not a trained classifier: its
// value is the breakdown of contributing signals, not predictive accuracy.
package synthscan

import (
	"context"
	"net/http"
)

// OCREngine abstracts text recognition over a decoded image.
// Implementations must be safe for concurrent use; the engine is created once
// per process and reused across requests.
type OCREngine interface {
	// Recognize returns the text found in img, fragments joined by newlines.
	// A failed or unavailable backend returns ("", nil) — missing OCR is a
	// degraded-signal condition, not an error.
	Recognize(ctx context.Context, data []byte) (string, error)
}

// Config holds all dependencies injected by the consumer.
type Config struct {
	OCR        OCREngine    // optional: nil = no OCR signal (empty text)
	Rules      *Rules       // optional: nil = DefaultRules()
	HTTPClient *http.Client // optional: used by Download (nil = http.DefaultClient)
	UserAgent  string       // default: "Mozilla/5.0 (compatible; synthscan/1.0)"

	// OnPanic is an optional callback invoked when an extractor recovers from
	// an internal panic. Useful for metrics; the pipeline itself degrades to
	// the extractor's neutral default and keeps going.
	OnPanic func(tag string, r any)
}

// defaults fills zero-value fields with sensible defaults.
func (cfg *Config) defaults() {
	if cfg.Rules == nil {
		cfg.Rules = DefaultRules()
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0 (compatible; synthscan/1.0)"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
}

// recovered runs fn and converts any panic into a no-op, reporting it through
// cfg.OnPanic. Every extractor call goes through this boundary so a failing
// extractor can never abort the pipeline.
func (cfg *Config) recovered(tag string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if cfg.OnPanic != nil {
				cfg.OnPanic(tag, r)
			}
		}
	}()
	fn()
}
