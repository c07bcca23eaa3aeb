package crawl

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/toolindex/toolindex"
	tgq "github.com/toolindex/toolindex/goquery"
)

// NextPageFunc reports whether a listing page signals a further page.
// It is pluggable so the fragile markup heuristic can be tested and
// replaced in isolation; the page cap remains the true safety bound.
type NextPageFunc func(html string) bool

// Paginator drives page-by-page listing extraction for a category.
type Paginator struct {
	Fetcher  toolindex.Fetcher
	Lists    toolindex.ListExtractor
	BaseURL  string
	MaxPages int
	HasNext  NextPageFunc // defaults to goquery.HasNextPage
	Logger   zerolog.Logger
}

// PageURL returns the query-parameter paginated URL for a listing page.
func PageURL(categoryURL string, page int) string {
	if page <= 1 {
		return categoryURL
	}
	sep := "?"
	if strings.Contains(categoryURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%spage=%d", categoryURL, sep, page)
}

func (p *Paginator) hasNext(html string) bool {
	if p.HasNext != nil {
		return p.HasNext(html)
	}
	return tgq.HasNextPage(html)
}

// ListAllTools materializes the category's tool references page by page up
// to the page cap. It stops at the first of: no next-page signal, zero
// cards on a non-first page, or the cap. Cards are deduplicated by slug
// within each page only; cross-page deduplication is the caller's concern.
func (p *Paginator) ListAllTools(ctx context.Context, categoryURL string) ([]toolindex.ToolReference, error) {
	var all []toolindex.ToolReference

	for page := 1; page <= p.MaxPages; page++ {
		refs, hasNext, err := p.listPage(ctx, categoryURL, page)
		if err != nil {
			return nil, err
		}

		p.Logger.Info().
			Str("category", categoryURL).
			Int("page", page).
			Int("tools", len(refs)).
			Bool("next", hasNext).
			Msg("listed page")

		if len(refs) == 0 && page > 1 {
			break
		}
		all = append(all, refs...)
		if !hasNext {
			break
		}
	}

	p.Logger.Info().
		Str("category", categoryURL).
		Int("total_tools", len(all)).
		Msg("finished listing category")

	return all, nil
}

// listPage extracts one listing page: structured extraction first, HTML
// fallback when it is unavailable, fails, or yields nothing. The fallback's
// fetch failure is fatal for the page and propagates; the structured path
// never is.
func (p *Paginator) listPage(ctx context.Context, categoryURL string, page int) ([]toolindex.ToolReference, bool, error) {
	pageURL := PageURL(categoryURL, page)

	refs, err := p.Lists.ExtractCards(ctx, pageURL, categoryURL)
	if err == nil && len(refs) > 0 {
		// The API response carries no pagination markup, so a plain GET
		// answers the has-next question. Its failure only ends pagination.
		html, ferr := p.Fetcher.Fetch(ctx, pageURL)
		if ferr != nil {
			p.Logger.Warn().Str("url", pageURL).Err(ferr).Msg("next-page probe failed, assuming last page")
			return dedupeBySlug(refs), false, nil
		}
		return dedupeBySlug(refs), p.hasNext(html), nil
	}

	if err != nil && toolindex.ErrorCode(err) != toolindex.EUNAVAILABLE {
		p.Logger.Warn().Str("url", pageURL).Err(err).Msg("structured listing extraction failed, using HTML fallback")
	}

	html, err := p.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, false, err
	}

	refs, err = tgq.ParseCards(html, p.BaseURL, categoryURL)
	if err != nil {
		return nil, false, err
	}
	return refs, p.hasNext(html), nil
}

// dedupeBySlug collapses duplicate slugs within a page: the later card's
// fields win at the first occurrence's position.
func dedupeBySlug(refs []toolindex.ToolReference) []toolindex.ToolReference {
	seen := make(map[string]int, len(refs))
	out := refs[:0:0]
	for _, ref := range refs {
		if idx, ok := seen[ref.Slug]; ok {
			out[idx] = ref
			continue
		}
		seen[ref.Slug] = len(out)
		out = append(out, ref)
	}
	return out
}
