package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastRetryConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		BaseDelay:   time.Millisecond,
		MaxDelay:    2 * time.Millisecond,
	}
}

func TestWithRetry_SuccessFirstAttempt(t *testing.T) {
	calls := 0
	out, err := WithRetry(context.Background(), "test", fastRetryConfig(3), func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ok" {
		t.Fatalf("out = %q", out)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestWithRetry_RetriesTransientFailure(t *testing.T) {
	calls := 0
	out, err := WithRetry(context.Background(), "test", fastRetryConfig(3), func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("connection reset by peer")
		}
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "recovered" {
		t.Fatalf("out = %q", out)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestWithRetry_NonRetryableStopsImmediately(t *testing.T) {
	authErr := errors.New("invalid api key")
	calls := 0
	_, err := WithRetry(context.Background(), "test", fastRetryConfig(5), func(ctx context.Context) (string, error) {
		calls++
		return "", authErr
	})
	if !errors.Is(err, authErr) {
		t.Fatalf("err = %v, want the original auth error", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (no retries for auth failures)", calls)
	}
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	transient := errors.New("upstream timeout")
	calls := 0
	_, err := WithRetry(context.Background(), "test", fastRetryConfig(3), func(ctx context.Context) (string, error) {
		calls++
		return "", transient
	})
	if !errors.Is(err, transient) {
		t.Fatalf("err = %v, want last transient error", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want exactly MaxAttempts", calls)
	}
}

func TestRetryConfig_Normalized(t *testing.T) {
	cfg := RetryConfig{}.normalized()
	if cfg.MaxAttempts != 1 {
		t.Fatalf("MaxAttempts = %d", cfg.MaxAttempts)
	}
	if cfg.BaseDelay != time.Second {
		t.Fatalf("BaseDelay = %v", cfg.BaseDelay)
	}
	if cfg.MaxDelay != cfg.BaseDelay {
		t.Fatalf("MaxDelay = %v, want raised to BaseDelay", cfg.MaxDelay)
	}
}
