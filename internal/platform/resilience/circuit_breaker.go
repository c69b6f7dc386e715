// Package resilience holds the failure-isolation primitives shared by the
// external source clients: a consecutive-failure circuit breaker and a
// single-flight call deduplicator.
package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func normalizeBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 15 * time.Second
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = 1
	}
	return cfg
}

type CircuitState string

const (
	CircuitClosed   CircuitState = "closed"
	CircuitOpen     CircuitState = "open"
	CircuitHalfOpen CircuitState = "half_open"
)

// CircuitBreaker trips after FailureThreshold consecutive failures, stays open
// for OpenTimeout, then admits up to HalfOpenMaxReq probes. All probes must
// succeed to close again; a single probe failure reopens the breaker.
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig

	state    CircuitState
	failures int
	reopenAt time.Time
	probes   int
	passed   int
	clock    func() time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   normalizeBreakerConfig(cfg),
		state: CircuitClosed,
		clock: time.Now,
	}
}

// Allow reports whether a request may proceed, moving an expired open breaker
// into half-open as a side effect.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitOpen {
		if b.clock().Before(b.reopenAt) {
			return ErrCircuitOpen
		}
		b.state = CircuitHalfOpen
		b.probes = 0
		b.passed = 0
	}

	if b.state == CircuitHalfOpen {
		if b.probes >= b.cfg.HalfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.probes++
	}

	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitClosed:
		b.failures = 0
	case CircuitHalfOpen:
		b.passed++
		if b.passed >= b.cfg.HalfOpenMaxReq {
			b.state = CircuitClosed
			b.failures = 0
			b.probes = 0
			b.passed = 0
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
	case CircuitHalfOpen:
		b.trip()
	case CircuitOpen:
		// Late failures from requests admitted earlier extend the window.
		b.reopenAt = b.clock().Add(b.cfg.OpenTimeout)
	}
}

// State reports the effective state: an open breaker whose timeout has passed
// reads as half-open even before the next Allow call.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitOpen && !b.clock().Before(b.reopenAt) {
		return CircuitHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) trip() {
	b.state = CircuitOpen
	b.reopenAt = b.clock().Add(b.cfg.OpenTimeout)
	b.probes = 0
	b.passed = 0
}
