package resilience

import (
	"errors"
	"sync"
	"time"
)

const (
	// DefaultBreakerThreshold is the consecutive-failure count that opens
	// the circuit.
	DefaultBreakerThreshold = 5
	// DefaultBreakerTimeout is how long the circuit stays open before the
	// next access closes it again.
	DefaultBreakerTimeout = 60 * time.Second
)

// ErrCircuitOpen is returned by guarded call sites while the breaker rejects
// attempts.
var ErrCircuitOpen = errors.New("circuit breaker open")

// BreakerState is a point-in-time snapshot of a breaker.
type BreakerState struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	Open                bool      `json:"isOpen"`
	OpenedAt            time.Time `json:"openedAt"`
}

// Breaker guards one provider. Only SERVICE_UNAVAILABLE failures advance the
// consecutive-failure counter; a success does not reset it. The timeout-
// driven close is evaluated on the next access rather than by a timer, so no
// callbacks dangle across restarts or test teardown.
type Breaker struct {
	mu        sync.Mutex
	threshold int
	timeout   time.Duration

	consecutiveFailures int
	open                bool
	openedAt            time.Time

	now func() time.Time
}

// NewBreaker constructs a closed breaker. Non-positive arguments fall back
// to the defaults.
func NewBreaker(threshold int, timeout time.Duration) *Breaker {
	if threshold <= 0 {
		threshold = DefaultBreakerThreshold
	}
	if timeout <= 0 {
		timeout = DefaultBreakerTimeout
	}
	return &Breaker{
		threshold: threshold,
		timeout:   timeout,
		now:       time.Now,
	}
}

// Allow reports whether a call may proceed. While open it first checks
// whether the timeout has elapsed since opening and, if so, resets to closed
// with a zeroed failure counter.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return true
	}
	if b.now().Sub(b.openedAt) >= b.timeout {
		b.open = false
		b.openedAt = time.Time{}
		b.consecutiveFailures = 0
		return true
	}
	return false
}

// Record feeds a classified failure into the breaker. Categories other than
// SERVICE_UNAVAILABLE leave the counter untouched.
func (b *Breaker) Record(category ErrorCategory) {
	if category != CategoryServiceUnavailable {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.consecutiveFailures++
	if !b.open && b.consecutiveFailures >= b.threshold {
		b.open = true
		b.openedAt = b.now()
	}
}

// State returns a snapshot, applying the same elapsed-timeout reset as
// Allow so observers never see a stale open circuit.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.open && b.now().Sub(b.openedAt) >= b.timeout {
		b.open = false
		b.openedAt = time.Time{}
		b.consecutiveFailures = 0
	}
	return BreakerState{
		ConsecutiveFailures: b.consecutiveFailures,
		Open:                b.open,
		OpenedAt:            b.openedAt,
	}
}
