// Package zerolog provides logging decorators for the core service
// interfaces.
package zerolog

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/toolindex/toolindex"
)

var _ toolindex.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-request logging: URL, duration,
// payload size, and outcome.
type LoggingFetcher struct {
	next   toolindex.Fetcher
	logger zerolog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next toolindex.Fetcher, logger zerolog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Warn().
			Str("url", url).
			Dur("duration", time.Since(begin)).
			Str("code", toolindex.ErrorCode(err)).
			Err(err).
			Msg("fetch failed")
		return "", err
	}

	f.logger.Debug().
		Str("url", url).
		Dur("duration", time.Since(begin)).
		Int("bytes", len(html)).
		Msg("fetched page")
	return html, nil
}
