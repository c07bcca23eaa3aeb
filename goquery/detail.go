package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/toolindex/toolindex"
)

// DefaultPricing is used when no pricing element is found on the page.
const DefaultPricing = "Information not available"

// descSelectors is the priority list for the description field; the first
// matching selector wins. Meta selectors read the content attribute, the
// rest read element text.
var descSelectors = []string{
	"meta[name='description']",
	"meta[property='og:description']",
	".description",
	".summary",
	"p",
}

// redirectSelectors is the priority list for the outbound visit link.
var redirectSelectors = []string{
	"a[href*='redirect']",
	"a[class*='visit']",
	"a[class*='website']",
}

// pricingSelectors is the priority list for the pricing blurb.
var pricingSelectors = []string{
	".pricing",
	".price",
	"[class*='pricing']",
	"[class*='price']",
}

// tagSelectors collect tag and category chips.
var tagSelectors = []string{
	".tag",
	".category",
	"[class*='tag']",
	"[class*='category']",
}

// Ensure DetailParser implements toolindex.DetailExtractor at compile time.
var _ toolindex.DetailExtractor = (*DetailParser)(nil)

// DetailParser is the always-available HTML fallback extraction strategy.
// It fetches the tool page through the rate-limited Fetcher and extracts
// fields with per-field selector priority lists.
type DetailParser struct {
	Fetcher toolindex.Fetcher
	BaseURL string
}

// NewDetailParser creates a DetailParser resolving relative URLs against
// baseURL.
func NewDetailParser(fetcher toolindex.Fetcher, baseURL string) *DetailParser {
	return &DetailParser{Fetcher: fetcher, BaseURL: baseURL}
}

// ExtractDetail fetches and parses a tool detail page. Fetch failures
// propagate to the caller; there is no further fallback behind this
// strategy.
func (p *DetailParser) ExtractDetail(ctx context.Context, toolURL string) (*toolindex.DetailExtraction, error) {
	html, err := p.Fetcher.Fetch(ctx, toolURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, toolindex.Errorf(toolindex.EINVALID, "failed to parse HTML for %s: %v", toolURL, err)
	}

	return &toolindex.DetailExtraction{
		Title:    p.title(doc, toolURL),
		Desc:     firstMatch(doc, descSelectors),
		Image:    p.image(doc),
		Redirect: p.redirect(doc),
		Pricing:  p.pricing(doc),
		Tags:     p.tags(doc),
	}, nil
}

func (p *DetailParser) title(doc *goquery.Document, toolURL string) string {
	if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return SlugFromURL(toolURL)
}

func (p *DetailParser) image(doc *goquery.Document) string {
	if content, ok := doc.Find("meta[property='og:image']").First().Attr("content"); ok {
		return ResolveURL(p.BaseURL, strings.TrimSpace(content))
	}
	return ""
}

func (p *DetailParser) redirect(doc *goquery.Document) string {
	for _, sel := range redirectSelectors {
		if href, ok := doc.Find(sel).First().Attr("href"); ok && href != "" {
			return DecodeRedirect(ResolveURL(p.BaseURL, strings.TrimSpace(href)))
		}
	}

	// Last resort: the first external absolute link not pointing back at
	// the directory site itself.
	host := ""
	if u, err := url.Parse(p.BaseURL); err == nil {
		host = u.Host
	}
	redirect := ""
	doc.Find("a[href^='http']").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if href == "" {
			return true
		}
		if host != "" && strings.Contains(href, host) {
			return true
		}
		redirect = DecodeRedirect(href)
		return false
	})
	return redirect
}

func (p *DetailParser) pricing(doc *goquery.Document) string {
	if text := firstMatch(doc, pricingSelectors); text != "" {
		return text
	}
	return DefaultPricing
}

// tags collects tag text lowercased and deduplicated in document order.
func (p *DetailParser) tags(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, sel := range tagSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			tag := strings.ToLower(strings.TrimSpace(s.Text()))
			if tag == "" {
				return
			}
			if _, ok := seen[tag]; ok {
				return
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		})
	}
	return tags
}

// firstMatch walks a selector priority list and returns the first non-empty
// value. Meta elements contribute their content attribute, other elements
// their trimmed text.
func firstMatch(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		var value string
		if goquery.NodeName(sel) == "meta" {
			value, _ = sel.Attr("content")
		} else {
			value = sel.Text()
		}
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}
