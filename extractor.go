package toolindex

import "context"

// DetailExtractor extracts structured per-tool metadata from a tool detail
// page.
//
// Implementations report expected-absent capability (no API credential
// configured) with an EUNAVAILABLE error and retry-exhausted transport
// failure with ETRANSIENT, so the caller can select the fallback strategy
// deliberately.
type DetailExtractor interface {
	ExtractDetail(ctx context.Context, toolURL string) (*DetailExtraction, error)
}

// ListExtractor extracts tool cards from a category listing page.
// Error semantics match DetailExtractor.
type ListExtractor interface {
	ExtractCards(ctx context.Context, pageURL, categoryURL string) ([]ToolReference, error)
}
