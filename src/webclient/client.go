// Package webclient is the outbound HTTP plumbing shared by feed clients:
// a client constructor with a bounded timeout and a capped-backoff retry
// loop for upstreams that rate limit.
package webclient

import (
	"net/http"
	"time"
)

const defaultTimeout = 60 * time.Second

// NewDefault returns an HTTP client with a sane overall timeout.
func NewDefault(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
