package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "carebridge/pkg/domain-errors"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerify(t *testing.T) {
	v := NewVerifier("test-secret")

	t.Run("accepts valid signature", func(t *testing.T) {
		sig := sign("test-secret", "order_123", "pay_456")
		assert.NoError(t, v.Verify("order_123", "pay_456", sig))
	})

	t.Run("rejects wrong secret", func(t *testing.T) {
		sig := sign("other-secret", "order_123", "pay_456")
		err := v.Verify("order_123", "pay_456", sig)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeSignatureMismatch))
	})

	t.Run("rejects swapped order and payment", func(t *testing.T) {
		sig := sign("test-secret", "pay_456", "order_123")
		assert.Error(t, v.Verify("order_123", "pay_456", sig))
	})

	t.Run("rejects empty signature", func(t *testing.T) {
		assert.Error(t, v.Verify("order_123", "pay_456", ""))
	})
}

// An unprovisioned secret must reject everything: the empty-key HMAC is
// computable by any client, so accepting it would let anyone forge a
// signature and credit the ledger.
func TestVerify_EmptySecretRejectsEverything(t *testing.T) {
	v := NewVerifier("")

	forged := sign("", "order_attacker", "pay_attacker")
	err := v.Verify("order_attacker", "pay_attacker", forged)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeSignatureMismatch))

	assert.Error(t, v.Verify("order_attacker", "pay_attacker", ""))
}

// Any single-byte mutation of a valid signature must be rejected.
func TestVerify_RandomSingleByteFlips(t *testing.T) {
	v := NewVerifier("test-secret")
	valid := sign("test-secret", "order_123", "pay_456")
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		tampered := []byte(valid)
		pos := rng.Intn(len(tampered))
		old := tampered[pos]
		for tampered[pos] == old {
			tampered[pos] = "0123456789abcdef"[rng.Intn(16)]
		}

		err := v.Verify("order_123", "pay_456", string(tampered))
		require.Error(t, err, "flip at position %d must be rejected", pos)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeSignatureMismatch))
	}
}
