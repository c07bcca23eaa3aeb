// Package mock provides function-field mock implementations of the
// toolindex service interfaces for testing.
package mock

import (
	"context"

	"github.com/toolindex/toolindex"
)

var _ toolindex.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of toolindex.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}
