package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(threshold, halfOpenMax int, timeout time.Duration) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      timeout,
		HalfOpenMaxReq:   halfOpenMax,
	})
	now := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	b.clock = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	b, _ := newTestBreaker(3, 1, 10*time.Second)

	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	b.RecordFailure()
	if state := b.State(); state != CircuitClosed {
		t.Fatalf("success should reset the streak, state=%s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitOpen {
		t.Fatalf("expected open after 3 consecutive failures, state=%s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCircuitBreaker_HalfOpenProbeClosesOnSuccess(t *testing.T) {
	b, now := newTestBreaker(1, 1, 10*time.Second)

	b.RecordFailure()
	*now = now.Add(11 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("probe after timeout should be admitted: %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("second probe should be rejected while first is in flight, got %v", err)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitClosed {
		t.Fatalf("expected closed after successful probe, state=%s", state)
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("closed breaker should allow: %v", err)
	}
}

func TestCircuitBreaker_HalfOpenProbeFailureReopens(t *testing.T) {
	b, now := newTestBreaker(1, 2, 10*time.Second)

	b.RecordFailure()
	*now = now.Add(10 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("probe after timeout should be admitted: %v", err)
	}
	b.RecordFailure()

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("failed probe should reopen the breaker, got %v", err)
	}
}
