package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var nextPattern = regexp.MustCompile(`(?i)next`)

// HasNextPage reports whether the listing page signals a further page:
// either a link[rel=next] element or an anchor whose text or aria-label
// matches "next".
//
// The signal is a heuristic over page markup and can both false-positive
// and false-negative; the paginator's page cap is the true safety bound.
// Unparseable input reports no next page.
func HasNextPage(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}

	if doc.Find("link[rel='next']").Length() > 0 {
		return true
	}

	found := false
	doc.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if nextPattern.MatchString(strings.TrimSpace(sel.Text())) {
			found = true
			return false
		}
		if label, ok := sel.Attr("aria-label"); ok && nextPattern.MatchString(label) {
			found = true
			return false
		}
		return true
	})
	return found
}
