// Package payment integrates the external payment gateway: order creation
// against its HTTP API and webhook-style signature verification before any
// ledger write.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	dErrors "carebridge/pkg/domain-errors"
)

// Verifier checks gateway payment signatures. The secret comes from config
// only; nothing in the request body can influence which key is used.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Expected computes the hex HMAC-SHA256 over "orderID|paymentID".
func (v *Verifier) Expected(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares the supplied signature against the expected one in constant
// time. Any mismatch, including malformed input, fails closed. An empty
// secret means no key was provisioned: the empty-key HMAC is computable by
// anyone, so nothing can be verified and every signature is rejected.
func (v *Verifier) Verify(orderID, paymentID, signature string) error {
	if len(v.secret) == 0 {
		return dErrors.New(dErrors.CodeSignatureMismatch, "payment signature verification failed")
	}
	expected := v.Expected(orderID, paymentID)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return dErrors.New(dErrors.CodeSignatureMismatch, "payment signature verification failed")
	}
	return nil
}
