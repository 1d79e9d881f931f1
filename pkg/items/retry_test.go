package items

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"
)

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"server error", &StatusError{Code: 503}, true},
		{"wrapped server error", fmt.Errorf("load: %w", &StatusError{Code: 500}), true},
		{"client error", &StatusError{Code: 404}, false},
		{"connection refused", &url.Error{Op: "Get", URL: "http://x", Err: errors.New("connection refused")}, true},
		{"canceled", context.Canceled, false},
		{"canceled inside url error", &url.Error{Op: "Get", URL: "http://x", Err: context.Canceled}, false},
		{"decode error", errors.New("failed to decode response"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldRetry(tt.err); got != tt.want {
				t.Errorf("shouldRetry(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestWithBackoff(t *testing.T) {
	t.Run("stops after attempts", func(t *testing.T) {
		calls := 0
		err := withBackoff(context.Background(), 3, time.Millisecond, func() error {
			calls++
			return &StatusError{Code: 502}
		})
		if calls != 3 {
			t.Errorf("Expected 3 calls, got %d", calls)
		}
		var status *StatusError
		if !errors.As(err, &status) {
			t.Errorf("Expected last StatusError, got %v", err)
		}
	})

	t.Run("non retryable returns at once", func(t *testing.T) {
		calls := 0
		withBackoff(context.Background(), 5, time.Millisecond, func() error {
			calls++
			return &StatusError{Code: 400}
		})
		if calls != 1 {
			t.Errorf("Expected 1 call, got %d", calls)
		}
	})

	t.Run("cancelled while waiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := withBackoff(ctx, 5, time.Hour, func() error {
			calls++
			cancel()
			return &StatusError{Code: 500}
		})
		if !errors.Is(err, context.Canceled) || calls != 1 {
			t.Errorf("Expected context.Canceled after 1 call, got %v after %d", err, calls)
		}
	})
}
