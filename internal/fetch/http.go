// Package fetch downloads metrics.rs sources over HTTP or git and
// maintains the digest-verified download cache.
package fetch

import (
	"context"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "fcgen"

	// maxSourceSize caps downloads; metrics.rs is a few hundred KB at most.
	maxSourceSize = 8 << 20
)

// HTTPClient downloads a source file from a raw URL.
type HTTPClient struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		h.httpClient = c
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(h *HTTPClient) {
		h.userAgent = ua
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		h.timeout = d
	}
}

// NewHTTPClient creates a new source download client.
func NewHTTPClient(opts ...Option) *HTTPClient {
	c := &HTTPClient{
		httpClient: &http.Client{},
		userAgent:  defaultUserAgent,
		timeout:    defaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Apply timeout to client if not custom
	if c.httpClient.Timeout == 0 {
		c.httpClient.Timeout = c.timeout
	}

	return c
}

// Fetch downloads the file at url and returns its contents.
// One attempt, no retries: a failed download aborts the pipeline.
func (c *HTTPClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{
			URL:     url,
			Message: "failed to create request",
			Err:     err,
		}
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{
			URL:     url,
			Message: "request failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &HTTPStatusError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceSize))
	if err != nil {
		return nil, &NetworkError{
			URL:     url,
			Message: "failed to read response body",
			Err:     err,
		}
	}

	return data, nil
}
