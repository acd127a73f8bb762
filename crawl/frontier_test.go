package crawl_test

import (
	"testing"

	"github.com/fwojciec/linkcrawl/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFrontier_Push_rejects_duplicate_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	assert.True(t, f.Push("https://example.com/docs/page1"), "first push should succeed")
	assert.False(t, f.Push("https://example.com/docs/page1"), "duplicate URL should be rejected")
	assert.Equal(t, 1, f.Len())
}

func TestFrontier_Pop_returns_most_recent_first(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier("https://example.com/a", "https://example.com/b")
	f.Push("https://example.com/c")

	url, ok := f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/c", url)

	url, ok = f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/b", url)

	url, ok = f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/a", url)

	_, ok = f.Pop()
	assert.False(t, ok, "pop on empty frontier should return false")
}

func TestFrontier_Contains_forgets_popped_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	assert.False(t, f.Contains("https://example.com/page"))

	f.Push("https://example.com/page")
	assert.True(t, f.Contains("https://example.com/page"))

	f.Pop()
	assert.False(t, f.Contains("https://example.com/page"), "popped URL is no longer pending")

	assert.True(t, f.Push("https://example.com/page"), "frontier alone does not remember popped URLs")
}

func TestFrontier_Len_tracks_queue_size(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	assert.Equal(t, 0, f.Len(), "new frontier should be empty")

	f.Push("https://example.com/a")
	f.Push("https://example.com/b")
	assert.Equal(t, 2, f.Len())

	f.Pop()
	assert.Equal(t, 1, f.Len())

	f.Pop()
	assert.Equal(t, 0, f.Len())
}

func TestVisitedSet(t *testing.T) {
	t.Parallel()

	v := crawl.NewVisitedSet()
	assert.Equal(t, 0, v.Len())
	assert.False(t, v.Contains("https://example.com/a"))

	assert.True(t, v.Add("https://example.com/b"))
	assert.True(t, v.Add("https://example.com/a"))
	assert.False(t, v.Add("https://example.com/a"), "second add reports already visited")

	assert.True(t, v.Contains("https://example.com/a"))
	assert.False(t, v.Contains("https://example.com/a/"), "no normalization")
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, v.URLs())
}
