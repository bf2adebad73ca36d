package webclient

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestDoWithRetryRecoversFromTransientFailure(t *testing.T) {
	calls := 0
	status, body, err := DoWithRetry(context.Background(), 3, time.Millisecond, func() (int, []byte, error) {
		calls++
		if calls == 1 {
			return http.StatusBadGateway, nil, nil
		}
		return http.StatusOK, []byte("feed"), nil
	})
	if err != nil || status != http.StatusOK || string(body) != "feed" {
		t.Errorf("got %d %q %v; want recovered 200", status, body, err)
	}
	if calls != 2 {
		t.Errorf("calls = %d; want 2", calls)
	}
}

func TestDoWithRetryStopsOnNonRetryableStatus(t *testing.T) {
	calls := 0
	status, _, err := DoWithRetry(context.Background(), 3, time.Millisecond, func() (int, []byte, error) {
		calls++
		return http.StatusNotFound, nil, nil
	})
	if err != nil || status != http.StatusNotFound {
		t.Errorf("got %d %v; want 404 with no error", status, err)
	}
	if calls != 1 {
		t.Errorf("calls = %d; want 1 (404 is not transient)", calls)
	}
}

func TestDoWithRetryExhaustsAttempts(t *testing.T) {
	wantErr := errors.New("connection reset")
	calls := 0
	_, _, err := DoWithRetry(context.Background(), 3, time.Millisecond, func() (int, []byte, error) {
		calls++
		return 0, nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v; want the last attempt's error", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d; want all 3 attempts", calls)
	}
}
