package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/linkcrawl"
	"github.com/fwojciec/linkcrawl/crawl"
	"github.com/fwojciec/linkcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorker_Process(t *testing.T) {
	t.Parallel()

	t.Run("returns filtered links for the page", func(t *testing.T) {
		t.Parallel()

		g := graph{
			"https://example.com/a": {
				linkcrawl.NewHref("https://example.com/b"),
				linkcrawl.NewHref("https://example.com/b"),
				linkcrawl.NullHref,
				linkcrawl.NewHref("https://other.com/x"),
			},
		}
		w := &crawl.Worker{
			Fetcher:     g.fetcher(),
			Extractor:   g.extractor(),
			ScopePrefix: "https://example.com/",
		}

		result := w.Process(context.Background(), "https://example.com/a")

		require.True(t, result.OK())
		assert.Equal(t, "https://example.com/a", result.URL)
		assert.Equal(t, linkcrawl.NewLinkSet("https://example.com/b"), result.Links)
	})

	t.Run("reports fetch failure as EFETCH with no links", func(t *testing.T) {
		t.Parallel()

		w := &crawl.Worker{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "", errors.New("connection refused")
				},
			},
			Extractor: &mock.LinkExtractor{
				ExtractHrefsFn: func(_ string) ([]linkcrawl.Href, error) {
					t.Fatal("extractor must not run after a failed fetch")
					return nil, nil
				},
			},
			ScopePrefix: "https://example.com/",
		}

		result := w.Process(context.Background(), "https://example.com/a")

		require.False(t, result.OK())
		assert.Equal(t, linkcrawl.EFETCH, linkcrawl.ErrorCode(result.Err))
		assert.Contains(t, linkcrawl.ErrorMessage(result.Err), "connection refused")
		assert.NotNil(t, result.Links)
		assert.Equal(t, 0, result.Links.Len())
	})

	t.Run("reports extraction failure as EPARSE with no links", func(t *testing.T) {
		t.Parallel()

		w := &crawl.Worker{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html", nil
				},
			},
			Extractor: &mock.LinkExtractor{
				ExtractHrefsFn: func(_ string) ([]linkcrawl.Href, error) {
					return nil, errors.New("unexpected EOF")
				},
			},
			ScopePrefix: "https://example.com/",
		}

		result := w.Process(context.Background(), "https://example.com/a")

		require.False(t, result.OK())
		assert.Equal(t, linkcrawl.EPARSE, linkcrawl.ErrorCode(result.Err))
		assert.Equal(t, 0, result.Links.Len())
	})

	t.Run("keeps the code of an already classified error", func(t *testing.T) {
		t.Parallel()

		original := linkcrawl.Errorf(linkcrawl.EFETCH, "HTTP 503 for https://example.com/a")
		w := &crawl.Worker{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "", original
				},
			},
			Extractor:   &mock.LinkExtractor{},
			ScopePrefix: "https://example.com/",
		}

		result := w.Process(context.Background(), "https://example.com/a")

		assert.Same(t, original, result.Err)
	})

	t.Run("reports a fetch abandoned on cancellation as ECANCELED", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		w := &crawl.Worker{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, _ string) (string, error) {
					cancel()
					<-ctx.Done()
					return "", ctx.Err()
				},
			},
			Extractor:   &mock.LinkExtractor{},
			ScopePrefix: "https://example.com/",
		}

		result := w.Process(ctx, "https://example.com/a")

		require.False(t, result.OK())
		assert.Equal(t, linkcrawl.ECANCELED, linkcrawl.ErrorCode(result.Err))
		assert.Zero(t, result.Links.Len())
	})

	t.Run("bounds a hanging fetch with the timeout", func(t *testing.T) {
		t.Parallel()

		w := &crawl.Worker{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, _ string) (string, error) {
					<-ctx.Done()
					return "", ctx.Err()
				},
			},
			Extractor:   &mock.LinkExtractor{},
			ScopePrefix: "https://example.com/",
			Timeout:     20 * time.Millisecond,
		}

		start := time.Now()
		result := w.Process(context.Background(), "https://example.com/slow")

		assert.Less(t, time.Since(start), time.Second)
		assert.Equal(t, linkcrawl.EFETCH, linkcrawl.ErrorCode(result.Err))
	})

	t.Run("applies the default timeout when none is set", func(t *testing.T) {
		t.Parallel()

		var deadline time.Time
		var hasDeadline bool
		w := &crawl.Worker{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, _ string) (string, error) {
					deadline, hasDeadline = ctx.Deadline()
					return "", nil
				},
			},
			Extractor: &mock.LinkExtractor{
				ExtractHrefsFn: func(_ string) ([]linkcrawl.Href, error) { return nil, nil },
			},
		}

		w.Process(context.Background(), "https://example.com/a")

		require.True(t, hasDeadline)
		assert.WithinDuration(t, time.Now().Add(crawl.DefaultFetchTimeout), deadline, time.Second)
	})
}
