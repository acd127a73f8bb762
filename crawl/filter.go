package crawl

import (
	"strings"

	"github.com/fwojciec/linkcrawl"
)

// FilterLinks returns the hrefs that are present and start with prefix.
// Null hrefs are dropped and duplicates collapse into one entry.
func FilterLinks(hrefs []linkcrawl.Href, prefix string) linkcrawl.LinkSet {
	links := make(linkcrawl.LinkSet)
	for _, href := range hrefs {
		if !href.Valid {
			continue
		}
		if !strings.HasPrefix(href.Value, prefix) {
			continue
		}
		links.Add(href.Value)
	}
	return links
}
