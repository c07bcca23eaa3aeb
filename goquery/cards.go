package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/toolindex/toolindex"
)

// cardAnchorSelector matches listing-card anchors pointing at tool detail
// pages.
const cardAnchorSelector = "a[href*='/tool/']"

// maxAnchorNameLen bounds the name taken from bare anchor text when the
// card has no heading element.
const maxAnchorNameLen = 80

// ParseCards extracts tool cards from a category listing page.
//
// Cards are deduplicated by slug within the page: the later card's fields
// win, at the position of the first occurrence. Cross-page deduplication is
// the caller's concern.
func ParseCards(html, baseURL, categoryURL string) ([]toolindex.ToolReference, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, toolindex.Errorf(toolindex.EINVALID, "failed to parse HTML: %v", err)
	}

	category := SlugFromURL(categoryURL)

	seen := make(map[string]int)
	var refs []toolindex.ToolReference

	doc.Find(cardAnchorSelector).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		toolURL := ResolveURL(baseURL, href)
		if toolURL == "" {
			return
		}
		slug := SlugFromURL(toolURL)

		name := strings.TrimSpace(sel.Find("h2, h3, h4").First().Text())
		if name == "" {
			name = strings.TrimSpace(sel.Text())
			if len(name) > maxAnchorNameLen {
				name = name[:maxAnchorNameLen]
			}
		}
		if name == "" {
			name = slug
		}

		imageURL := ""
		if src, ok := sel.Find("img").First().Attr("src"); ok && src != "" {
			imageURL = ResolveURL(baseURL, src)
		}

		desc := strings.TrimSpace(sel.Find("p").First().Text())

		ref := toolindex.ToolReference{
			Name:             name,
			URL:              toolURL,
			Slug:             slug,
			ImageURL:         imageURL,
			ShortDescription: desc,
			Category:         category,
		}

		if idx, ok := seen[slug]; ok {
			refs[idx] = ref
		} else {
			seen[slug] = len(refs)
			refs = append(refs, ref)
		}
	})

	return refs, nil
}
