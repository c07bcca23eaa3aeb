// Package http provides the rate-limited HTTP client used for listing and
// detail page fetches. It randomizes browser-like headers per request,
// decodes responses to UTF-8, retries transient failures with exponential
// backoff, and applies a jittered politeness delay after every successful
// call.
package http

import (
	"context"
	"fmt"
	"io"
	mathrand "math/rand"
	"net/http"
	"time"

	"github.com/toolindex/toolindex"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultRequestDelay is the default base politeness delay applied after a
// successful request. The actual delay adds uniform jitter of up to 60% of
// the base.
const DefaultRequestDelay = 1 * time.Second

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5 Safari/605.1.15",
}

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure Client implements toolindex.Fetcher at compile time.
var _ toolindex.Fetcher = (*Client)(nil)

// Client retrieves HTML content over HTTP. It is safe for concurrent use:
// the underlying http.Client pools connections and all mutable state is
// confined to the rate limiter.
type Client struct {
	client      *http.Client
	limiter     *rate.Limiter
	timeout     time.Duration
	delay       time.Duration
	retryDelays []time.Duration
	userAgent   string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRequestDelay sets the base politeness delay applied after successful
// requests. A non-positive value disables the delay.
func WithRequestDelay(d time.Duration) Option {
	return func(c *Client) { c.delay = d }
}

// WithRetryDelays sets the backoff delays between retry attempts. The number
// of delays determines the number of retries. Useful for testing without
// waiting for real backoff.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *Client) { c.retryDelays = delays }
}

// NewClient creates a new Client with a randomly selected User-Agent that
// is then reused for the client's lifetime, mimicking a single browser
// session.
func NewClient(opts ...Option) *Client {
	c := &Client{
		timeout:     DefaultTimeout,
		delay:       DefaultRequestDelay,
		retryDelays: DefaultRetryDelays(),
		userAgent:   userAgents[mathrand.Intn(len(userAgents))],
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{Timeout: c.timeout}

	// Token bucket sized from the politeness delay so the pre-request rate
	// matches the post-request delay even under concurrent workers.
	if c.delay > 0 {
		c.limiter = rate.NewLimiter(rate.Every(c.delay), 1)
	}

	return c
}

// Fetch issues a GET request with randomized headers and returns the
// response body decoded to UTF-8. Transient failures (transport errors,
// HTTP 429/430 and 5xx) are retried with exponential backoff; exhaustion
// returns an ETRANSIENT error.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	maxAttempts := len(c.retryDelays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, retryable, err := c.fetchOnce(ctx, url)
		if err == nil {
			c.sleepWithJitter(ctx)
			return body, nil
		}
		lastErr = err

		if !retryable || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.retryDelays[attempt]):
		}
	}

	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return "", toolindex.Errorf(toolindex.ETRANSIENT, "fetch %s: %v", url, lastErr)
}

// fetchOnce performs a single GET attempt. The second return value reports
// whether the failure is worth retrying.
func (c *Client) fetchOnce(ctx context.Context, url string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, err
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == 430:
		retryAfter := resp.Header.Get("Retry-After")
		return "", true, fmt.Errorf("rate limited; retry after %s", retryAfter)
	case resp.StatusCode >= 500:
		return "", true, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode != http.StatusOK:
		return "", false, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, err
	}

	decoded, err := decodeUTF8(raw, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", false, err
	}

	return decoded, false, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.7,es-ES;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}

// sleepWithJitter applies the post-success politeness delay:
// base + uniform(0, 0.6*base). The delay is per-call, not coordinated
// across workers.
func (c *Client) sleepWithJitter(ctx context.Context) {
	if c.delay <= 0 {
		return
	}
	jitter := time.Duration(mathrand.Float64() * 0.6 * float64(c.delay))
	select {
	case <-ctx.Done():
	case <-time.After(c.delay + jitter):
	}
}

// decodeUTF8 converts the body to UTF-8 based on the Content-Type header
// and content sniffing. Already-UTF-8 bodies are returned as-is.
func decodeUTF8(raw []byte, contentType string) (string, error) {
	enc, name, _ := charset.DetermineEncoding(raw, contentType)
	if name == "utf-8" || name == "UTF-8" {
		return string(raw), nil
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decoding %s body: %w", name, err)
	}
	return string(decoded), nil
}
