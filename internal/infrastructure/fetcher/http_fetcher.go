package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"JSMChanges/internal/ports"
)

const maxBodyBytes = 16 << 20

// HTTPFetcher performs single-attempt GET requests bounded by a per-call timeout.
type HTTPFetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	logger    *slog.Logger
}

var _ ports.Fetcher = (*HTTPFetcher)(nil)

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithClient sets a custom HTTP client.
func WithClient(client *http.Client) Option {
	return func(f *HTTPFetcher) { f.client = client }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) { f.userAgent = ua }
}

// WithLogger attaches a logger for failed fetches.
func WithLogger(log *slog.Logger) Option {
	return func(f *HTTPFetcher) { f.logger = log }
}

// New builds a fetcher whose every call is bounded by timeout.
func New(timeout time.Duration, opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:    &http.Client{},
		timeout:   timeout,
		userAgent: "JSMChanges/1.0",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the body of url, or ok=false on any failure.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, bool) {
	start := time.Now()
	body, err := f.get(ctx, url)
	if err != nil {
		f.warn("fetch unavailable", "url", url, "error", err, "elapsed", time.Since(start))
		return "", false
	}
	f.debug("fetch completed", "url", url, "bytes", len(body), "elapsed", time.Since(start))
	return body, true
}

func (f *HTTPFetcher) get(ctx context.Context, url string) (string, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(raw), nil
}

func (f *HTTPFetcher) debug(msg string, args ...interface{}) {
	if f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}

func (f *HTTPFetcher) warn(msg string, args ...interface{}) {
	if f.logger != nil {
		f.logger.Warn(msg, args...)
	}
}
