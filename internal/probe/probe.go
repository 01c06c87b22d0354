package probe

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/XiaoConstantine/dspy-go/pkg/logging"

	"github.com/dshills/dashreview/internal/cache"
)

// DefaultTimeout bounds a single probe.
const DefaultTimeout = 10 * time.Second

// Prober reports whether a URL points at an existing resource.
type Prober interface {
	Exists(ctx context.Context, url string) bool
}

// Func adapts an ordinary function to the Prober interface.
type Func func(ctx context.Context, url string) bool

// Exists calls f(ctx, url).
func (f Func) Exists(ctx context.Context, url string) bool {
	return f(ctx, url)
}

// Never is a Prober that reports every URL as missing.
var Never Prober = Func(func(context.Context, string) bool { return false })

// HTTP probes with a single HEAD request.
type HTTP struct {
	client *http.Client
	cache  *cache.Cache
}

// Option configures an HTTP prober.
type Option func(*HTTP)

// WithCache records positive results in c and consults it before probing.
func WithCache(c *cache.Cache) Option {
	return func(h *HTTP) { h.cache = c }
}

// WithClient replaces the HTTP client.
func WithClient(c *http.Client) Option {
	return func(h *HTTP) { h.client = c }
}

// NewHTTP creates an HTTP prober. A non-positive timeout uses DefaultTimeout.
func NewHTTP(timeout time.Duration, opts ...Option) *HTTP {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	h := &HTTP{client: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Exists sends a HEAD request to rawURL and reports whether it answered with
// a 2xx status.
func (h *HTTP) Exists(ctx context.Context, rawURL string) bool {
	logger := logging.GetLogger()

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		logger.Debug(ctx, "Not probing malformed URL %q", rawURL)
		return false
	}

	if h.cache != nil && h.cache.Available(rawURL) {
		logger.Debug(ctx, "Probe cache hit for %s", rawURL)
		return true
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		logger.Debug(ctx, "Building probe request for %s: %v", rawURL, err)
		return false
	}

	resp, err := h.client.Do(req)
	if err != nil {
		logger.Debug(ctx, "Probe of %s failed: %v", rawURL, err)
		return false
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Debug(ctx, "Probe of %s returned status %d", rawURL, resp.StatusCode)
		return false
	}

	if h.cache != nil {
		if err := h.cache.MarkAvailable(rawURL); err != nil {
			logger.Warn(ctx, "Recording probe result for %s: %v", rawURL, err)
		}
	}
	return true
}
