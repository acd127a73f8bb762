package crawl_test

import (
	"testing"

	"github.com/fwojciec/linkcrawl"
	"github.com/fwojciec/linkcrawl/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFilterLinks(t *testing.T) {
	t.Parallel()

	t.Run("drops null hrefs and links outside the prefix", func(t *testing.T) {
		t.Parallel()

		links := crawl.FilterLinks([]linkcrawl.Href{
			linkcrawl.NewHref("https://example.com/b"),
			linkcrawl.NullHref,
			linkcrawl.NewHref("https://other.com/x"),
			linkcrawl.NewHref("/relative"),
		}, "https://example.com/")

		assert.Equal(t, linkcrawl.NewLinkSet("https://example.com/b"), links)
	})

	t.Run("collapses duplicates", func(t *testing.T) {
		t.Parallel()

		links := crawl.FilterLinks(hrefs(
			"https://example.com/a",
			"https://example.com/a",
			"https://example.com/b",
		), "https://example.com/")

		assert.Equal(t, 2, links.Len())
		assert.True(t, links.Has("https://example.com/a"))
		assert.True(t, links.Has("https://example.com/b"))
	})

	t.Run("does not normalize URLs", func(t *testing.T) {
		t.Parallel()

		links := crawl.FilterLinks(hrefs(
			"https://example.com/a",
			"https://example.com/a/",
			"https://example.com/a#top",
			"HTTPS://EXAMPLE.COM/a",
		), "https://example.com/")

		assert.Equal(t, 3, links.Len(), "only the upper-case variant is out of scope")
	})

	t.Run("returns an empty set for no input", func(t *testing.T) {
		t.Parallel()

		links := crawl.FilterLinks(nil, "https://example.com/")

		assert.NotNil(t, links)
		assert.Equal(t, 0, links.Len())
	})

	t.Run("keeps a present but empty href only when the prefix is empty", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 0, crawl.FilterLinks(hrefs(""), "https://example.com/").Len())
		assert.Equal(t, 1, crawl.FilterLinks(hrefs(""), "").Len())
	})
}
