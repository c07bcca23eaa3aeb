// Package rod provides a Fetcher that renders pages in a headless Chrome
// browser. The directory's listing pages are served pre-rendered, so the
// plain HTTP fetcher is the default; this one exists for the parts of the
// site that hydrate their tool cards client side.
package rod

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/toolindex/toolindex"
)

var _ toolindex.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser *rod.Browser
}

// NewFetcher launches a headless Chrome browser. Close must be called when
// the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher() (*Fetcher, error) {
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &Fetcher{browser: browser}, nil
}

// Fetch navigates to the URL, waits for the page to load, and returns the
// rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", toolindex.Errorf(toolindex.ETRANSIENT, "opening page for %q: %v", url, err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", toolindex.Errorf(toolindex.ETRANSIENT, "navigating to %q: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", toolindex.Errorf(toolindex.ETRANSIENT, "loading %q: %v", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", toolindex.Errorf(toolindex.ETRANSIENT, "reading HTML of %q: %v", url, err)
	}
	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}
