package bloom_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/linkcrawl"
	"github.com/fwojciec/linkcrawl/bloom"
	"github.com/fwojciec/linkcrawl/crawl"
	"github.com/fwojciec/linkcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	// URL not yet added should return false
	assert.False(t, f.Test("https://example.com/page1"))

	f.Add("https://example.com/page1")

	assert.True(t, f.Test("https://example.com/page1"))
	assert.False(t, f.Test("https://example.com/page2"))
}

func TestFilter_TestAndAdd(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.TestAndAdd("https://example.com/page1"), "first add reports absent")
	assert.True(t, f.TestAndAdd("https://example.com/page1"), "second add reports present")
	assert.True(t, f.Test("https://example.com/page1"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("https://example.com/page1")
	f.Add("https://example.com/page2")
	f.Add("https://example.com/page3")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_SizeIsFixed(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	size := f.SizeBits()

	for i := range 5000 {
		f.Add(fmt.Sprintf("https://example.com/%d", i))
	}

	assert.Equal(t, size, f.SizeBits())
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Add(fmt.Sprintf("https://example.com/added/%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("https://example.com/notadded/%d", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% to account for statistical variance
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}

func TestVisitedSet(t *testing.T) {
	t.Parallel()

	v := bloom.NewVisitedSet(1000, 0.001)

	assert.Equal(t, 0, v.Len())
	assert.False(t, v.Contains("https://example.com/a"))

	assert.True(t, v.Add("https://example.com/a"))
	assert.False(t, v.Add("https://example.com/a"))
	assert.True(t, v.Add("https://example.com/b"))

	assert.True(t, v.Contains("https://example.com/a"))
	assert.True(t, v.Contains("https://example.com/b"))
	assert.Equal(t, 2, v.Len())
}

func TestVisitedSet_drives_a_crawl(t *testing.T) {
	t.Parallel()

	const numPages = 50
	pages := map[string][]linkcrawl.Href{}
	for i := range numPages {
		pages[fmt.Sprintf("https://example.com/%d", i)] = []linkcrawl.Href{
			linkcrawl.NewHref(fmt.Sprintf("https://example.com/%d", (i+1)%numPages)),
			linkcrawl.NewHref(fmt.Sprintf("https://example.com/%d", (i*11)%numPages)),
		}
	}

	c := crawl.NewCrawler("https://example.com/0", "https://example.com/")
	c.Fetcher = &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) { return url, nil },
	}
	c.Extractor = &mock.LinkExtractor{
		ExtractHrefsFn: func(content string) ([]linkcrawl.Href, error) { return pages[content], nil },
	}
	c.Visited = bloom.NewVisitedSet(10000, 0.0001)

	run, err := c.Run(context.Background())

	require.NoError(t, err)
	seen := map[string]bool{}
	for _, u := range run.Visited {
		assert.False(t, seen[u], "%s visited twice", u)
		seen[u] = true
	}
	assert.Len(t, run.Visited, numPages)
}

func TestVisitedSet_SizeAndEstimate(t *testing.T) {
	t.Parallel()

	v := bloom.NewVisitedSet(1000, 0.01)
	size := v.SizeBits()
	assert.Positive(t, size)

	for i := range 100 {
		v.Add(fmt.Sprintf("https://example.com/%d", i))
	}

	assert.Equal(t, size, v.SizeBits())
	assert.InDelta(t, 100, float64(v.EstimatedCount()), 10)
}

func TestVisitedSet_saturated_filter_respects_visit_cap(t *testing.T) {
	t.Parallel()

	const maxVisited = 30

	c := crawl.NewCrawler("https://example.com/0", "https://example.com/")
	c.Fetcher = &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) { return url, nil },
	}
	// Every page links to 50 fresh children.
	c.Extractor = &mock.LinkExtractor{
		ExtractHrefsFn: func(content string) ([]linkcrawl.Href, error) {
			links := make([]linkcrawl.Href, 50)
			for i := range links {
				links[i] = linkcrawl.NewHref(fmt.Sprintf("%s/%d", content, i))
			}
			return links, nil
		},
	}
	c.Visited = bloom.NewVisitedSet(10, 0.3)
	c.MaxVisited = maxVisited

	var last linkcrawl.ProgressEvent
	c.Progress = func(e linkcrawl.ProgressEvent) { last = e }

	run, err := c.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, linkcrawl.RunTruncated, run.Status)
	assert.Len(t, run.Visited, maxVisited)
	assert.Equal(t, maxVisited, last.VisitedSize)
}
