// Package goquery provides the CSS-selector HTML parsing fallback for
// listing and detail pages, plus next-page detection for the category
// paginator. It covers the same logical fields as the structured-extraction
// API so either strategy can feed the enrichment pipeline.
package goquery

import (
	"net/url"
	"strings"
)

// ResolveURL resolves href against base. Absolute hrefs are returned as-is;
// unparseable input returns an empty string.
func ResolveURL(base, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	h, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return b.ResolveReference(h).String()
}

// SlugFromURL derives the identity slug from the last path segment of a URL.
func SlugFromURL(rawURL string) string {
	trimmed := strings.TrimRight(rawURL, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx != -1 {
		return trimmed[idx+1:]
	}
	return trimmed
}

// DecodeRedirect unwraps the site's internal redirect?to=<url> indirection,
// returning the inner URL. Anything else is returned unchanged.
func DecodeRedirect(href string) string {
	if !strings.Contains(href, "redirect") {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if to := u.Query().Get("to"); to != "" {
		return to
	}
	return href
}
