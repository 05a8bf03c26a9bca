package llm

import (
	"context"
	"math"
	"math/rand"
	"net/http"
	"time"
)

// doWithRetry issues makeRequest until it returns 200, a non-retryable
// status arrives, the attempt budget runs out, or ctx ends. Waits grow
// exponentially with jitter; a Retry-After header overrides the schedule.
func doWithRetry(ctx context.Context, config RetryConfig, makeRequest func(ctx context.Context) (*http.Response, error)) (*http.Response, error) {
	var lastStatus int

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := float64(config.InitialBackoff) * math.Pow(config.BackoffFactor, float64(attempt-1))
			if backoff > float64(config.MaxBackoff) {
				backoff = float64(config.MaxBackoff)
			}
			jitter := backoff * config.JitterFraction * rand.Float64()
			sleepDur := time.Duration(backoff + jitter)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(sleepDur):
			}
		}

		resp, err := makeRequest(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Transport failure: worth another attempt.
			lastStatus = 0
			continue
		}

		if resp.StatusCode == 200 {
			return resp, nil
		}

		lastStatus = resp.StatusCode

		// Honor Retry-After (especially for 429) instead of the backoff
		// schedule.
		if retryAfter := parseRetryAfter(resp.Header.Get("Retry-After")); retryAfter > 0 {
			resp.Body.Close()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryAfter):
			}
			continue
		}

		if !isRetryable(resp.StatusCode, config.RetryableStatuses) {
			return resp, nil // caller classifies the error
		}

		resp.Body.Close()
	}

	return nil, &ErrMaxRetriesExceeded{
		Attempts:   config.MaxRetries + 1,
		LastStatus: lastStatus,
	}
}
