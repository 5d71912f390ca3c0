package synthscan

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// DownloadOpts configures a remote file download for analyze-by-URL.
type DownloadOpts struct {
	MaxBytes  int64         // max response body size (default: 10MB)
	Timeout   time.Duration // per-request timeout (default: 10s)
	UserAgent string        // override config user agent
}

const (
	defaultMaxBytes = 10 * 1024 * 1024
	defaultTimeout  = 10 * time.Second
)

// DownloadResult holds downloaded file data.
type DownloadResult struct {
	Data     []byte
	MIMEType string
}

// Download fetches a file from url so it can be fed to Analyze. Returns nil
// result (not error) on recoverable failures (404, oversized body, etc.) for
// graceful degradation.
func (cfg *Config) Download(ctx context.Context, url string, opts DownloadOpts) (*DownloadResult, error) {
	cfg.defaults()

	if opts.MaxBytes <= 0 {
		opts.MaxBytes = defaultMaxBytes
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = cfg.UserAgent
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil
	}
	req.Header.Set("User-Agent", ua)

	resp, err := cfg.HTTPClient.Do(req) //nolint:gosec // G704: URL is caller-supplied by design — SSRF is caller's responsibility
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	ct := resp.Header.Get("Content-Type")
	// Strip MIME parameters: "image/jpeg; charset=utf-8" → "image/jpeg"
	if idx := strings.IndexByte(ct, ';'); idx >= 0 {
		ct = strings.TrimSpace(ct[:idx])
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, opts.MaxBytes))
	if err != nil || len(data) == 0 {
		return nil, nil
	}

	return &DownloadResult{Data: data, MIMEType: ct}, nil
}
