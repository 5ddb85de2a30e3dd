package resilience

import (
	"testing"
	"time"
)

func newTestBreaker(threshold int, timeout time.Duration) (*Breaker, *time.Time) {
	b := NewBreaker(threshold, timeout)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return current }
	return b, &current
}

func TestBreaker_OpensAtThreshold(t *testing.T) {
	b, _ := newTestBreaker(5, time.Minute)

	for i := 0; i < 4; i++ {
		b.Record(CategoryServiceUnavailable)
		if !b.Allow() {
			t.Fatalf("breaker opened after %d failures, threshold is 5", i+1)
		}
	}
	b.Record(CategoryServiceUnavailable)
	if b.Allow() {
		t.Fatal("breaker still closed after reaching threshold")
	}

	state := b.State()
	if !state.Open || state.ConsecutiveFailures != 5 {
		t.Fatalf("state = %+v", state)
	}
}

func TestBreaker_OnlyServiceUnavailableCounts(t *testing.T) {
	b, _ := newTestBreaker(2, time.Minute)

	b.Record(CategoryNetwork)
	b.Record(CategoryAuthentication)
	b.Record(CategoryRateLimit)
	b.Record(CategoryGeneric)
	if got := b.State().ConsecutiveFailures; got != 0 {
		t.Fatalf("consecutiveFailures = %d, want 0 for non-unavailable categories", got)
	}

	b.Record(CategoryServiceUnavailable)
	b.Record(CategoryServiceUnavailable)
	if b.Allow() {
		t.Fatal("breaker should be open")
	}
}

func TestBreaker_TimeoutClosesWithZeroedCounter(t *testing.T) {
	b, current := newTestBreaker(2, time.Minute)

	b.Record(CategoryServiceUnavailable)
	b.Record(CategoryServiceUnavailable)
	if b.Allow() {
		t.Fatal("breaker should be open")
	}

	*current = current.Add(59 * time.Second)
	if b.Allow() {
		t.Fatal("breaker closed before the timeout elapsed")
	}

	*current = current.Add(time.Second)
	if !b.Allow() {
		t.Fatal("breaker should close once the timeout elapses")
	}

	state := b.State()
	if state.Open || state.ConsecutiveFailures != 0 || !state.OpenedAt.IsZero() {
		t.Fatalf("state after reset = %+v", state)
	}

	// Closed fresh: it takes a full run of failures to open again.
	b.Record(CategoryServiceUnavailable)
	if !b.Allow() {
		t.Fatal("one failure after reset should not reopen the breaker")
	}
}

func TestBreaker_StateAppliesElapsedReset(t *testing.T) {
	b, current := newTestBreaker(1, time.Minute)

	b.Record(CategoryServiceUnavailable)
	if !b.State().Open {
		t.Fatal("breaker should be open")
	}

	*current = current.Add(time.Minute)
	state := b.State()
	if state.Open {
		t.Fatal("State should observe the elapsed timeout and report closed")
	}
	if state.ConsecutiveFailures != 0 {
		t.Fatalf("consecutiveFailures = %d", state.ConsecutiveFailures)
	}
}

func TestNewBreaker_Defaults(t *testing.T) {
	b := NewBreaker(0, 0)
	if b.threshold != DefaultBreakerThreshold {
		t.Fatalf("threshold = %d", b.threshold)
	}
	if b.timeout != DefaultBreakerTimeout {
		t.Fatalf("timeout = %v", b.timeout)
	}
}
