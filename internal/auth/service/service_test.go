package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carebridge/internal/auth/store"
	"carebridge/internal/notify"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
)

type staticTokens struct{}

func (staticTokens) GenerateAccessToken(domain.AccountID, domain.Role) (string, error) {
	return "signed-token", nil
}

func newTestService() (*Service, *notify.MemoryPublisher) {
	events := notify.NewMemoryPublisher()
	svc := New(store.NewMemoryStore(), staticTokens{}, events, slog.New(slog.DiscardHandler))
	return svc, events
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates donor account", func(t *testing.T) {
		svc, _ := newTestService()
		account, err := svc.Register(ctx, "Asha Donor", "asha@example.com", "password123", domain.RoleDonor)
		require.NoError(t, err)
		assert.Equal(t, "asha@example.com", account.Email)
		assert.Equal(t, domain.RoleDonor, account.Role)
		assert.NotEmpty(t, account.PasswordHash)
	})

	t.Run("derives name from email when blank", func(t *testing.T) {
		svc, _ := newTestService()
		account, err := svc.Register(ctx, "  ", "ravi.kumar@example.com", "password123", domain.RoleDonor)
		require.NoError(t, err)
		assert.Equal(t, "Ravi Kumar", account.Name)
	})

	t.Run("rejects short password", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, "X", "x@example.com", "short", domain.RoleDonor)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, "A", "dup@example.com", "password123", domain.RoleDonor)
		require.NoError(t, err)
		_, err = svc.Register(ctx, "B", "dup@example.com", "password123", domain.RoleDonor)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, "A", "not-an-email", "password123", domain.RoleDonor)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("issues token for valid credentials", func(t *testing.T) {
		svc, events := newTestService()
		_, err := svc.Register(ctx, "Asha", "asha@example.com", "password123", domain.RoleDonor)
		require.NoError(t, err)

		tokenString, account, err := svc.Login(ctx, "asha@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "signed-token", tokenString)
		assert.Equal(t, "asha@example.com", account.Email)

		published := events.Events()
		require.Len(t, published, 1)
		assert.Equal(t, notify.KindLogin, published[0].Kind)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, "Asha", "asha@example.com", "password123", domain.RoleDonor)
		require.NoError(t, err)

		_, _, err = svc.Login(ctx, "asha@example.com", "wrong-password")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("rejects unknown account without leaking existence", func(t *testing.T) {
		svc, _ := newTestService()
		_, _, err := svc.Login(ctx, "nobody@example.com", "password123")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
