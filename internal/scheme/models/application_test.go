package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
)

func newApp() *Application {
	return NewApplication(
		domain.ApplicationID(uuid.New()),
		domain.ChildID(uuid.New()),
		domain.SchemeID(uuid.New()),
		time.Now(),
	)
}

func TestApplicationAdvance(t *testing.T) {
	now := time.Now()

	t.Run("forward progression allowed", func(t *testing.T) {
		app := newApp()
		require.NoError(t, app.Advance(StatusInProgress, now))
		require.NoError(t, app.Advance(StatusSubmitted, now))
		require.NoError(t, app.Advance(StatusApproved, now))
	})

	t.Run("skipping ahead allowed", func(t *testing.T) {
		app := newApp()
		require.NoError(t, app.Advance(StatusSubmitted, now))
	})

	t.Run("backwards transition rejected", func(t *testing.T) {
		app := newApp()
		require.NoError(t, app.Advance(StatusSubmitted, now))
		err := app.Advance(StatusInProgress, now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("terminal states are final", func(t *testing.T) {
		app := newApp()
		require.NoError(t, app.Advance(StatusRejected, now))
		err := app.Advance(StatusApproved, now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("same state rejected", func(t *testing.T) {
		app := newApp()
		err := app.Advance(StatusIdentified, now)
		require.Error(t, err)
	})
}

func TestParseApplicationStatus(t *testing.T) {
	_, err := ParseApplicationStatus("pending")
	require.Error(t, err)

	st, err := ParseApplicationStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, st)
}
