// Package tesseract provides the gosseract-backed OCR engine for synthscan.
// It lives in its own package so consumers that never enable OCR do not pay
// the cgo dependency.
package tesseract

import (
	"context"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Engine wraps a single tesseract client. Initialization is expensive, so it
// happens once per process on first use; recognition calls are serialized
// because the underlying client is not safe for concurrent use.
type Engine struct {
	once    sync.Once
	mu      sync.Mutex
	client  *gosseract.Client
	initErr error
}

// New returns an uninitialized engine. The tesseract client is created
// lazily on the first Recognize call and reused until Close.
func New() *Engine {
	return &Engine{}
}

// Recognize runs English OCR over an encoded image payload. A missing or
// broken tesseract installation yields ("", nil): degraded signal, not an
// error. Only context cancellation is surfaced.
func (e *Engine) Recognize(ctx context.Context, data []byte) (string, error) {
	e.once.Do(func() {
		c := gosseract.NewClient()
		if err := c.SetLanguage("eng"); err != nil {
			_ = c.Close()
			e.initErr = err
			return
		}
		e.client = c
	})
	if e.initErr != nil || e.client == nil {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.client.SetImageFromBytes(data); err != nil {
		return "", nil
	}
	text, err := e.client.Text()
	if err != nil {
		return "", nil
	}
	return text, nil
}

// Close releases the tesseract client. Call once at process exit.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client == nil {
		return nil
	}
	err := e.client.Close()
	e.client = nil
	return err
}
