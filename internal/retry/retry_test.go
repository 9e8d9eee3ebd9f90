// internal/retry/retry_test.go
package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

type statusErr struct {
	code int
}

func (e *statusErr) Error() string   { return fmt.Sprintf("status %d", e.code) }
func (e *statusErr) StatusCode() int { return e.code }

func fastConfig(attempts int) Config {
	cfg := DefaultConfig()
	cfg.MaxAttempts = attempts
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 5 * time.Millisecond
	return cfg
}

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(3), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestDo_DefaultIsSingleAttempt(t *testing.T) {
	calls := 0
	wantErr := &statusErr{code: http.StatusServiceUnavailable}
	err := Do(context.Background(), DefaultConfig(), func() error {
		calls++
		return wantErr
	})
	if calls != 1 {
		t.Fatalf("Default policy must not retry, got %d calls", calls)
	}
	// Single-attempt failures come back unwrapped.
	if !errors.Is(err, wantErr) {
		t.Errorf("Expected the original error, got %v", err)
	}
}

func TestDo_RetriesRetryableStatus(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(3), func() error {
		calls++
		if calls < 3 {
			return &statusErr{code: http.StatusBadGateway}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

func TestDo_NonRetryableStatusStopsEarly(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(3), func() error {
		calls++
		return &statusErr{code: http.StatusNotFound}
	})
	if err == nil {
		t.Fatal("Expected an error")
	}
	if calls != 1 {
		t.Errorf("404 must not be retried, got %d calls", calls)
	}
}

func TestDo_TransportFailureIsRetryable(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(2), func() error {
		calls++
		// Status 0 marks a failure below the HTTP layer.
		return &statusErr{code: 0}
	})
	if err == nil {
		t.Fatal("Expected an error after exhausting attempts")
	}
	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}
}

func TestDo_ExhaustedAttemptsWrapsLastError(t *testing.T) {
	cause := &statusErr{code: http.StatusServiceUnavailable}
	err := Do(context.Background(), fastConfig(2), func() error {
		return cause
	})
	if err == nil {
		t.Fatal("Expected an error")
	}
	if !errors.Is(err, cause) {
		t.Errorf("Wrapped error should unwrap to the last failure, got %v", err)
	}
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	cfg := fastConfig(5)
	cfg.InitialBackoff = time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := Do(ctx, cfg, func() error {
		return &statusErr{code: http.StatusServiceUnavailable}
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline error, got %v", err)
	}
}
