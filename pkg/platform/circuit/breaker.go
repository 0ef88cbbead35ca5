// Package circuit provides a minimal consecutive-failure circuit breaker for
// remote collaborators (payment gateway, AI engine).
package circuit

import (
	"sync"
	"time"
)

type state int

const (
	closed state = iota
	open
)

const defaultCooldown = 30 * time.Second

// Breaker opens after failureThreshold consecutive failures and closes again
// after successThreshold consecutive successes. While open, callers should
// skip the remote call and fail fast with a typed unavailability error. Once
// the cooldown after the last failure has elapsed, IsOpen lets trial calls
// through again so the remote can prove itself; a failing trial restarts the
// cooldown.
type Breaker struct {
	mu               sync.Mutex
	state            state
	failureCount     int
	successCount     int
	failureThreshold int
	successThreshold int
	cooldown         time.Duration
	openedAt         time.Time
	now              func() time.Time
}

// Option customizes a Breaker.
type Option func(*Breaker)

// WithCooldown overrides how long an open circuit blocks calls before
// allowing a trial. Values at or below zero keep the default.
func WithCooldown(d time.Duration) Option {
	return func(b *Breaker) {
		if d > 0 {
			b.cooldown = d
		}
	}
}

// New builds a Breaker. Thresholds at or below zero fall back to defaults
// (5 failures to open, 3 successes to close, 30s cooldown).
func New(failureThreshold, successThreshold int, opts ...Option) *Breaker {
	if failureThreshold <= 0 {
		failureThreshold = 5
	}
	if successThreshold <= 0 {
		successThreshold = 3
	}
	b := &Breaker{
		failureThreshold: failureThreshold,
		successThreshold: successThreshold,
		cooldown:         defaultCooldown,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// IsOpen reports whether calls should currently be skipped. An open circuit
// whose cooldown has elapsed reports closed so that a trial call goes out.
func (b *Breaker) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != open {
		return false
	}
	return b.now().Sub(b.openedAt) < b.cooldown
}

// RecordFailure notes a failed call and returns true if the circuit is now open.
func (b *Breaker) RecordFailure() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failureCount++
	b.successCount = 0
	if b.state == open {
		b.openedAt = b.now()
		return true
	}
	if b.failureCount >= b.failureThreshold {
		b.state = open
		b.openedAt = b.now()
		return true
	}
	return false
}

// RecordSuccess notes a successful call and returns true if the circuit closed.
func (b *Breaker) RecordSuccess() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failureCount = 0
	if b.state == open {
		b.successCount++
		if b.successCount >= b.successThreshold {
			b.state = closed
			b.successCount = 0
			return true
		}
		return false
	}
	return false
}
