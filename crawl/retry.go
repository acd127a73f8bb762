package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/linkcrawl"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryDelaysFor returns the first n default delays, continuing to double
// past the third. Zero or negative n means no retries.
func RetryDelaysFor(n int) []time.Duration {
	if n <= 0 {
		return nil
	}
	delays := make([]time.Duration, n)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

// ProcessWithRetry runs process for url, retrying fetch failures after each
// of the given delays. Successful results and parse failures return
// immediately; an empty delays slice means a single attempt.
func ProcessWithRetry(ctx context.Context, url string, process ProcessFunc, delays []time.Duration) linkcrawl.FetchResult {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var result linkcrawl.FetchResult
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result = process(ctx, url)
		if result.OK() || linkcrawl.ErrorCode(result.Err) != linkcrawl.EFETCH {
			return result
		}

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return result
		case <-time.After(delays[attempt]):
		}
	}

	return result
}
