package utils

import (
	"errors"
	"sync"
	"time"
)

var ErrBreakerOpen = errors.New("circuit breaker is open")

// CircuitBreaker is a minimal failure-threshold breaker for best-effort
// outbound calls. After maxFailures consecutive failures it rejects calls for
// the cooldown period, then lets one probe through.
type CircuitBreaker struct {
	name        string
	maxFailures int
	cooldown    time.Duration

	mu       sync.Mutex
	failures int
	openedAt time.Time
}

func NewCircuitBreaker(name string) *CircuitBreaker {
	return &CircuitBreaker{
		name:        name,
		maxFailures: 5,
		cooldown:    30 * time.Second,
	}
}

func (cb *CircuitBreaker) Do(fn func() error) error {
	if !cb.allow() {
		return ErrBreakerOpen
	}

	err := fn()
	cb.record(err == nil)
	return err
}

// State reports whether the breaker currently rejects calls.
func (cb *CircuitBreaker) Open() bool {
	return !cb.allow()
}

func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.failures < cb.maxFailures {
		return true
	}
	// Open; permit a probe once the cooldown has elapsed.
	return time.Since(cb.openedAt) >= cb.cooldown
}

func (cb *CircuitBreaker) record(success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if success {
		cb.failures = 0
		return
	}

	cb.failures++
	if cb.failures >= cb.maxFailures {
		cb.openedAt = time.Now()
	}
}
