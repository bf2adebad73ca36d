package webclient

import (
	"context"
	"net/http"
	"time"
)

const maxDelay = 30 * time.Second

// AttemptFunc performs one request and reports its outcome.
type AttemptFunc func() (status int, body []byte, err error)

// retryable reports whether a response is worth another attempt:
// rate limiting or a server-side failure.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// DoWithRetry runs fn up to attempts times, doubling the delay between
// attempts (capped at maxDelay), until it returns a non-retryable outcome
// or the context is cancelled. The last attempt's result is returned as-is.
func DoWithRetry(ctx context.Context, attempts int, initialDelay time.Duration, fn AttemptFunc) (int, []byte, error) {
	if attempts <= 0 {
		attempts = 1
	}
	if initialDelay <= 0 {
		initialDelay = 2 * time.Second
	}

	delay := initialDelay
	var (
		status int
		body   []byte
		err    error
	)
	for i := 0; i < attempts; i++ {
		status, body, err = fn()
		if err == nil && !retryable(status) {
			return status, body, nil
		}
		if i == attempts-1 {
			break
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return status, body, ctx.Err()
		case <-t.C:
		}
		if delay < maxDelay {
			delay *= 2
		}
	}
	return status, body, err
}
