package resilience

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"contract-backend/internal/shared/telemetry"
)

// RetryConfig parameterizes WithRetry. Delays grow as
// baseDelay * 2^attempt, capped at MaxDelay, with up to 10% random jitter to
// avoid synchronized retry storms.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryConfig matches the default provider policy.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    32 * time.Second,
	}
}

func (c RetryConfig) normalized() RetryConfig {
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 1
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = time.Second
	}
	if c.MaxDelay < c.BaseDelay {
		c.MaxDelay = c.BaseDelay
	}
	return c
}

// WithRetry invokes op, retrying with exponential backoff while the
// classified error category is retryable and attempts remain. Non-retryable
// failures are surfaced immediately; after the final attempt the last error
// is returned to the caller, which decides whether to fail or fall back.
// Cancelling ctx aborts pending backoff sleeps.
func WithRetry(ctx context.Context, name string, cfg RetryConfig, op func(context.Context) (string, error)) (string, error) {
	cfg = cfg.normalized()

	var out string
	attempt := 0
	wrapped := func() error {
		attempt++
		result, err := op(ctx)
		if err == nil {
			telemetry.Info("provider.attempt", map[string]any{
				"provider": name,
				"attempt":  attempt,
				"outcome":  "success",
			})
			out = result
			return nil
		}
		category := Classify(err)
		telemetry.Error("provider.attempt", map[string]any{
			"provider": name,
			"attempt":  attempt,
			"outcome":  "failure",
			"category": string(category),
			"error":    err.Error(),
		})
		if !Retryable(category) {
			return backoff.Permanent(err)
		}
		return err
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = cfg.BaseDelay
	expo.Multiplier = 2
	expo.RandomizationFactor = 0.1
	expo.MaxInterval = cfg.MaxDelay
	expo.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(cfg.MaxAttempts-1)), ctx)
	if err := backoff.Retry(wrapped, policy); err != nil {
		return "", err
	}
	return out, nil
}
