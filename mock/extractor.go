package mock

import (
	"context"

	"github.com/toolindex/toolindex"
)

var _ toolindex.DetailExtractor = (*DetailExtractor)(nil)

// DetailExtractor is a mock implementation of toolindex.DetailExtractor.
type DetailExtractor struct {
	ExtractDetailFn func(ctx context.Context, toolURL string) (*toolindex.DetailExtraction, error)
}

func (e *DetailExtractor) ExtractDetail(ctx context.Context, toolURL string) (*toolindex.DetailExtraction, error) {
	return e.ExtractDetailFn(ctx, toolURL)
}

var _ toolindex.ListExtractor = (*ListExtractor)(nil)

// ListExtractor is a mock implementation of toolindex.ListExtractor.
type ListExtractor struct {
	ExtractCardsFn func(ctx context.Context, pageURL, categoryURL string) ([]toolindex.ToolReference, error)
}

func (e *ListExtractor) ExtractCards(ctx context.Context, pageURL, categoryURL string) ([]toolindex.ToolReference, error) {
	return e.ExtractCardsFn(ctx, pageURL, categoryURL)
}
