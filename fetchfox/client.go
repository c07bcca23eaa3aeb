// Package fetchfox provides the structured-extraction strategy backed by
// the FetchFox scraping API, which converts a URL plus a CSS-selector
// specification into field-keyed JSON.
//
// The client reports a missing credential as EUNAVAILABLE without touching
// the network, and retry-exhausted transport failure as ETRANSIENT, so the
// caller can hand over to the HTML fallback strategy.
package fetchfox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/toolindex/toolindex"
	tgq "github.com/toolindex/toolindex/goquery"
)

// DefaultRetryAttempts is the total number of API attempts per call.
const DefaultRetryAttempts = 3

// DefaultRetryDelay is the fixed backoff between API attempts.
const DefaultRetryDelay = 2500 * time.Millisecond

// Selector describes one field of a selector specification.
type Selector struct {
	Selector  string              `json:"selector"`
	Type      string              `json:"type"` // text | attribute | multiple
	Attribute string              `json:"attribute,omitempty"`
	Output    map[string]Selector `json:"output,omitempty"`
}

// request is the API request body.
type request struct {
	URL       string              `json:"url"`
	Selectors map[string]Selector `json:"selectors"`
}

// detailSelectors is the selector specification for tool detail pages.
func detailSelectors() map[string]Selector {
	return map[string]Selector{
		"title":     {Selector: "h1", Type: "text"},
		"meta_desc": {Selector: "meta[name='description']", Type: "attribute", Attribute: "content"},
		"og_desc":   {Selector: "meta[property='og:description']", Type: "attribute", Attribute: "content"},
		"og_img":    {Selector: "meta[property='og:image']", Type: "attribute", Attribute: "content"},
		"visit":     {Selector: "a[href*='redirect'], a[class*='visit'], a[class*='website']", Type: "attribute", Attribute: "href"},
		"pricing":   {Selector: ".pricing, .price, [class*='pricing'], [class*='price']", Type: "text"},
		"tags":      {Selector: ".tag, .category, [class*='tag'], [class*='category']", Type: "multiple"},
	}
}

// listingSelectors is the selector specification for category listing pages.
func listingSelectors() map[string]Selector {
	return map[string]Selector{
		"cards": {
			Selector: "a[href*='/tool/']",
			Type:     "multiple",
			Output: map[string]Selector{
				"href": {Type: "attribute", Attribute: "href"},
				"name": {Selector: "h2, h3, h4", Type: "text"},
				"img":  {Selector: "img", Type: "attribute", Attribute: "src"},
				"desc": {Selector: "p", Type: "text"},
			},
		},
	}
}

// Ensure Client implements both extraction interfaces at compile time.
var (
	_ toolindex.DetailExtractor = (*Client)(nil)
	_ toolindex.ListExtractor   = (*Client)(nil)
)

// Client calls the FetchFox scraping API.
type Client struct {
	apiKey  string
	apiURL  string
	baseURL string

	client   *http.Client
	attempts int
	delay    time.Duration
	logger   zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithRetry sets the attempt count and fixed backoff between attempts.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// WithLogger sets the logger used for warnings.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a FetchFox client. An empty apiKey produces a client
// whose calls return EUNAVAILABLE without a network round trip. baseURL is
// the directory site used to resolve relative URLs in responses.
func NewClient(apiKey, apiURL, baseURL string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		apiURL:   apiURL,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 30 * time.Second},
		attempts: DefaultRetryAttempts,
		delay:    DefaultRetryDelay,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// detailResponse mirrors the detail selector keys.
type detailResponse struct {
	Title    string   `json:"title"`
	MetaDesc string   `json:"meta_desc"`
	OgDesc   string   `json:"og_desc"`
	OgImg    string   `json:"og_img"`
	Visit    string   `json:"visit"`
	Pricing  string   `json:"pricing"`
	Tags     []string `json:"tags"`
}

// ExtractDetail extracts structured tool metadata through the API.
func (c *Client) ExtractDetail(ctx context.Context, toolURL string) (*toolindex.DetailExtraction, error) {
	var resp detailResponse
	if err := c.scrape(ctx, toolURL, detailSelectors(), &resp); err != nil {
		return nil, err
	}

	desc := strings.TrimSpace(resp.MetaDesc)
	if desc == "" {
		desc = strings.TrimSpace(resp.OgDesc)
	}

	pricing := strings.TrimSpace(resp.Pricing)
	if pricing == "" {
		pricing = "Information not available"
	}

	var tags []string
	for _, tag := range resp.Tags {
		if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
			tags = append(tags, tag)
		}
	}

	return &toolindex.DetailExtraction{
		Title:    strings.TrimSpace(resp.Title),
		Desc:     desc,
		Image:    strings.TrimSpace(resp.OgImg),
		Redirect: tgq.DecodeRedirect(strings.TrimSpace(resp.Visit)),
		Pricing:  pricing,
		Tags:     tags,
	}, nil
}

// listingResponse mirrors the listing selector keys.
type listingResponse struct {
	Cards []struct {
		Href string `json:"href"`
		Name string `json:"name"`
		Img  string `json:"img"`
		Desc string `json:"desc"`
	} `json:"cards"`
}

// ExtractCards extracts listing-page tool cards through the API. An empty
// result with a nil error means the page had no usable cards; the caller
// decides whether to fall back.
func (c *Client) ExtractCards(ctx context.Context, pageURL, categoryURL string) ([]toolindex.ToolReference, error) {
	var resp listingResponse
	if err := c.scrape(ctx, pageURL, listingSelectors(), &resp); err != nil {
		return nil, err
	}

	category := tgq.SlugFromURL(categoryURL)

	var refs []toolindex.ToolReference
	for _, card := range resp.Cards {
		href := strings.TrimSpace(card.Href)
		if href == "" {
			continue
		}
		toolURL := tgq.ResolveURL(c.baseURL, href)
		if toolURL == "" {
			continue
		}
		slug := tgq.SlugFromURL(toolURL)

		name := strings.TrimSpace(card.Name)
		if name == "" {
			name = slug
		}

		img := strings.TrimSpace(card.Img)
		if img != "" {
			img = tgq.ResolveURL(c.baseURL, img)
		}

		refs = append(refs, toolindex.ToolReference{
			Name:             name,
			URL:              toolURL,
			Slug:             slug,
			ImageURL:         img,
			ShortDescription: strings.TrimSpace(card.Desc),
			Category:         category,
		})
	}

	return refs, nil
}

// scrape posts the selector specification and decodes the JSON response
// into out. Transport failures and non-2xx responses are retried with fixed
// backoff.
func (c *Client) scrape(ctx context.Context, targetURL string, selectors map[string]Selector, out any) error {
	if c.apiKey == "" {
		return toolindex.Errorf(toolindex.EUNAVAILABLE, "no FetchFox API key configured")
	}

	body, err := json.Marshal(request{URL: targetURL, Selectors: selectors})
	if err != nil {
		return toolindex.Errorf(toolindex.EINTERNAL, "encoding request for %s: %v", targetURL, err)
	}

	var lastErr error
	for attempt := 0; attempt < c.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.delay):
			}
		}

		raw, err := c.post(ctx, body)
		if err != nil {
			lastErr = err
			continue
		}

		if err := json.Unmarshal(raw, out); err != nil {
			c.logger.Warn().Str("url", targetURL).Err(err).Msg("FetchFox returned malformed JSON")
			lastErr = err
			continue
		}
		return nil
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	c.logger.Warn().Str("url", targetURL).Err(lastErr).Msg("FetchFox extraction failed")
	return toolindex.Errorf(toolindex.ETRANSIENT, "FetchFox %s: %v", targetURL, lastErr)
}

func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d from FetchFox", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
