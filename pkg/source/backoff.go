package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const userAgent = "pickscout/1.0 (sports picks aggregator)"

const maxRetries = 3

var initialDelay = 2 * time.Second

// getWithBackoff performs a GET with exponential backoff on rate limiting.
// On a 429 it waits, doubles the wait and retries, starting at 2s for up
// to 3 attempts. After exhausting retries it returns the last response,
// even if that response is still a 429: the pipeline degrades to empty
// results rather than failing the run.
func getWithBackoff(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	delay := initialDelay

	var resp *http.Response
	for attempt := 0; attempt < maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request %s: %w", url, err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err = client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", url, err)
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt == maxRetries-1 {
			return resp, nil
		}

		resp.Body.Close()
		slog.Warn("rate limited, backing off", "url", url, "wait", delay)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return resp, nil
}
