package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	b := New(3, 2)

	assert.False(t, b.RecordFailure())
	assert.False(t, b.RecordFailure())
	assert.True(t, b.RecordFailure(), "third consecutive failure should open")
	assert.True(t, b.IsOpen())
}

func TestBreakerSuccessResetsFailureStreak(t *testing.T) {
	b := New(3, 2)

	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()
	assert.False(t, b.RecordFailure(), "streak restarted after success")
	assert.False(t, b.IsOpen())
}

func TestBreakerClosesAfterConsecutiveSuccesses(t *testing.T) {
	b := New(1, 2)

	b.RecordFailure()
	assert.True(t, b.IsOpen())

	assert.False(t, b.RecordSuccess())
	assert.True(t, b.RecordSuccess(), "second consecutive success should close")
	assert.False(t, b.IsOpen())
}

func TestBreakerAllowsTrialAfterCooldown(t *testing.T) {
	b := New(1, 1, WithCooldown(10*time.Second))
	current := time.Now()
	b.now = func() time.Time { return current }

	b.RecordFailure()
	assert.True(t, b.IsOpen())

	current = current.Add(9 * time.Second)
	assert.True(t, b.IsOpen(), "still cooling down")

	current = current.Add(2 * time.Second)
	assert.False(t, b.IsOpen(), "cooldown elapsed, trial call allowed")

	b.RecordFailure()
	assert.True(t, b.IsOpen(), "failing trial restarts the cooldown")

	current = current.Add(11 * time.Second)
	assert.False(t, b.IsOpen())
	assert.True(t, b.RecordSuccess(), "successful trial closes the circuit")
	assert.False(t, b.IsOpen())
}
