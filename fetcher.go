package toolindex

import "context"

// Fetcher retrieves UTF-8 HTML from URLs.
// Implementations own politeness (rate limiting, inter-request delay),
// randomized browser-like headers, and bounded retries for transient
// failures. Implementations must be safe for concurrent use by the
// enrichment worker pool.
type Fetcher interface {
	// Fetch issues a GET request and returns the decoded response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)
}
