package crawl_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolindex/toolindex"
	"github.com/toolindex/toolindex/crawl"
	"github.com/toolindex/toolindex/mock"
)

const baseURL = "https://example.com"
const categoryURL = "https://example.com/ai-tools/code-assistant"

// listingPage renders a synthetic listing page with n tool cards and an
// optional next link.
func listingPage(page, n int, hasNext bool) string {
	html := "<html><body>"
	for i := 0; i < n; i++ {
		html += fmt.Sprintf(`<a href="/tool/p%d-t%d"><h3>Tool %d-%d</h3></a>`, page, i, page, i)
	}
	if hasNext {
		html += `<a href="?page=next">Next</a>`
	}
	return html + "</body></html>"
}

// unavailableLists is a ListExtractor with no credential configured.
func unavailableLists() *mock.ListExtractor {
	return &mock.ListExtractor{
		ExtractCardsFn: func(ctx context.Context, pageURL, categoryURL string) ([]toolindex.ToolReference, error) {
			return nil, toolindex.Errorf(toolindex.EUNAVAILABLE, "no API key")
		},
	}
}

func newPaginator(fetch func(ctx context.Context, url string) (string, error), lists toolindex.ListExtractor, maxPages int) *crawl.Paginator {
	return &crawl.Paginator{
		Fetcher:  &mock.Fetcher{FetchFn: fetch},
		Lists:    lists,
		BaseURL:  baseURL,
		MaxPages: maxPages,
		Logger:   zerolog.Nop(),
	}
}

func TestPaginator_StopsWhenNoNextSignal(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		crawl.PageURL(categoryURL, 1): listingPage(1, 2, true),
		crawl.PageURL(categoryURL, 2): listingPage(2, 3, false),
	}
	fetch := func(ctx context.Context, url string) (string, error) {
		html, ok := pages[url]
		require.True(t, ok, "unexpected fetch of %s", url)
		return html, nil
	}

	p := newPaginator(fetch, unavailableLists(), 200)
	refs, err := p.ListAllTools(context.Background(), categoryURL)

	require.NoError(t, err)
	assert.Len(t, refs, 5)
}

func TestPaginator_StopsOnEmptyNonFirstPage(t *testing.T) {
	t.Parallel()

	// Page 2 has a falsely-persistent next signal but zero cards.
	pages := map[string]string{
		crawl.PageURL(categoryURL, 1): listingPage(1, 2, true),
		crawl.PageURL(categoryURL, 2): listingPage(2, 0, true),
	}
	fetch := func(ctx context.Context, url string) (string, error) {
		return pages[url], nil
	}

	p := newPaginator(fetch, unavailableLists(), 200)
	refs, err := p.ListAllTools(context.Background(), categoryURL)

	require.NoError(t, err)
	assert.Len(t, refs, 2, "only page 1 tools survive")
}

func TestPaginator_EmptyFirstPageIsAttemptedOnce(t *testing.T) {
	t.Parallel()

	fetch := func(ctx context.Context, url string) (string, error) {
		return listingPage(1, 0, false), nil
	}

	p := newPaginator(fetch, unavailableLists(), 200)
	refs, err := p.ListAllTools(context.Background(), categoryURL)

	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestPaginator_NeverExceedsPageCap(t *testing.T) {
	t.Parallel()

	// Every page claims a next page exists.
	var fetched int
	fetch := func(ctx context.Context, url string) (string, error) {
		fetched++
		return listingPage(fetched, 1, true), nil
	}

	p := newPaginator(fetch, unavailableLists(), 3)
	refs, err := p.ListAllTools(context.Background(), categoryURL)

	require.NoError(t, err)
	assert.Len(t, refs, 3)
	assert.Equal(t, 3, fetched, "pagination must stop at the cap")
}

func TestPaginator_StructuredPathProbesNextPage(t *testing.T) {
	t.Parallel()

	lists := &mock.ListExtractor{
		ExtractCardsFn: func(ctx context.Context, pageURL, catURL string) ([]toolindex.ToolReference, error) {
			if pageURL == crawl.PageURL(categoryURL, 1) {
				return []toolindex.ToolReference{
					{Name: "A", URL: baseURL + "/tool/a", Slug: "a", Category: "code-assistant"},
				}, nil
			}
			return nil, nil
		},
	}
	fetch := func(ctx context.Context, url string) (string, error) {
		// Probe for page 1 says no further pages.
		return listingPage(1, 1, false), nil
	}

	p := newPaginator(fetch, lists, 200)
	refs, err := p.ListAllTools(context.Background(), categoryURL)

	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "a", refs[0].Slug)
}

func TestPaginator_NextProbeFailureEndsPagination(t *testing.T) {
	t.Parallel()

	lists := &mock.ListExtractor{
		ExtractCardsFn: func(ctx context.Context, pageURL, catURL string) ([]toolindex.ToolReference, error) {
			return []toolindex.ToolReference{
				{Name: "A", URL: baseURL + "/tool/a", Slug: "a", Category: "code-assistant"},
			}, nil
		},
	}
	fetch := func(ctx context.Context, url string) (string, error) {
		return "", toolindex.Errorf(toolindex.ETRANSIENT, "down")
	}

	p := newPaginator(fetch, lists, 200)
	refs, err := p.ListAllTools(context.Background(), categoryURL)

	require.NoError(t, err, "probe failure is not fatal on the structured path")
	assert.Len(t, refs, 1)
}

func TestPaginator_StructuredDuplicatesCollapseLastWins(t *testing.T) {
	t.Parallel()

	lists := &mock.ListExtractor{
		ExtractCardsFn: func(ctx context.Context, pageURL, catURL string) ([]toolindex.ToolReference, error) {
			return []toolindex.ToolReference{
				{Name: "First", URL: baseURL + "/tool/dup", Slug: "dup"},
				{Name: "Second", URL: baseURL + "/tool/dup", Slug: "dup"},
			}, nil
		},
	}
	fetch := func(ctx context.Context, url string) (string, error) {
		return listingPage(1, 0, false), nil
	}

	p := newPaginator(fetch, lists, 200)
	refs, err := p.ListAllTools(context.Background(), categoryURL)

	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Second", refs[0].Name)
}

func TestPaginator_FallbackFetchFailureIsFatal(t *testing.T) {
	t.Parallel()

	fetch := func(ctx context.Context, url string) (string, error) {
		return "", toolindex.Errorf(toolindex.ETRANSIENT, "site down")
	}

	p := newPaginator(fetch, unavailableLists(), 200)
	_, err := p.ListAllTools(context.Background(), categoryURL)

	require.Error(t, err)
	assert.Equal(t, toolindex.ETRANSIENT, toolindex.ErrorCode(err))
}

func TestPageURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, categoryURL, crawl.PageURL(categoryURL, 1))
	assert.Equal(t, categoryURL+"?page=2", crawl.PageURL(categoryURL, 2))
	assert.Equal(t, categoryURL+"?sort=new&page=3", crawl.PageURL(categoryURL+"?sort=new", 3))
}
