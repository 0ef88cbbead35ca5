package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-signing-key", time.Minute)
	accountID := domain.AccountID(uuid.New())

	signed, err := svc.GenerateAccessToken(accountID, domain.RoleDonor)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, domain.RoleDonor, claims.Role)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	issuer := NewJWTService("key-one", time.Minute)
	verifier := NewJWTService("key-two", time.Minute)

	signed, err := issuer.GenerateAccessToken(domain.AccountID(uuid.New()), domain.RoleAdmin)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(signed)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := NewJWTService("test-signing-key", -time.Minute)

	signed, err := svc.GenerateAccessToken(domain.AccountID(uuid.New()), domain.RoleDonor)
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-signing-key", time.Minute)
	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
}
