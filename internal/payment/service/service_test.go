package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	donationmodels "carebridge/internal/donation/models"
	donationservice "carebridge/internal/donation/service"
	"carebridge/internal/payment"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
)

type recordingLedger struct {
	calls []donationservice.CreateInput
}

func (l *recordingLedger) CreateDonation(_ context.Context, in donationservice.CreateInput) (*donationmodels.Donation, error) {
	l.calls = append(l.calls, in)
	return donationmodels.NewDonation(domain.DonationID(uuid.New()), in.DonorID, in.Amount, domain.FundTypeGeneral, in.Message, time.Now())
}

type fakeGateway struct {
	lastAmount int64
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount int64, currency string) (*payment.Order, error) {
	g.lastAmount = amount
	return &payment.Order{ID: "order_test", Amount: amount, Currency: currency}, nil
}

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func newTestService(ledger *recordingLedger, gw *fakeGateway) *Service {
	return New(gw, payment.NewVerifier("test-secret"), ledger, slog.New(slog.DiscardHandler))
}

func TestCreateOrder(t *testing.T) {
	gw := &fakeGateway{}
	svc := newTestService(&recordingLedger{}, gw)

	t.Run("converts rupees to paise", func(t *testing.T) {
		order, err := svc.CreateOrder(context.Background(), 499.50)
		require.NoError(t, err)
		assert.Equal(t, int64(49950), order.Amount)
		assert.Equal(t, "INR", order.Currency)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := svc.CreateOrder(context.Background(), 0)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestVerifyAndCommit(t *testing.T) {
	donor := domain.AccountID(uuid.New())

	t.Run("commits on valid signature", func(t *testing.T) {
		ledger := &recordingLedger{}
		svc := newTestService(ledger, &fakeGateway{})

		donation, err := svc.VerifyAndCommit(context.Background(), VerifyInput{
			OrderID:   "order_123",
			PaymentID: "pay_456",
			Signature: sign("test-secret", "order_123", "pay_456"),
			Amount:    500,
			DonorID:   donor,
		})
		require.NoError(t, err)
		assert.NotNil(t, donation)
		require.Len(t, ledger.calls, 1)
		assert.Equal(t, "pay_456", ledger.calls[0].PaymentID)
	})

	t.Run("tampered signature leaves ledger untouched", func(t *testing.T) {
		ledger := &recordingLedger{}
		svc := newTestService(ledger, &fakeGateway{})

		_, err := svc.VerifyAndCommit(context.Background(), VerifyInput{
			OrderID:   "order_123",
			PaymentID: "pay_456",
			Signature: sign("wrong-secret", "order_123", "pay_456"),
			Amount:    500,
			DonorID:   donor,
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeSignatureMismatch))
		assert.Empty(t, ledger.calls, "mismatch must produce zero ledger writes")
	})

	t.Run("requires order and payment ids", func(t *testing.T) {
		ledger := &recordingLedger{}
		svc := newTestService(ledger, &fakeGateway{})

		_, err := svc.VerifyAndCommit(context.Background(), VerifyInput{
			Signature: "anything",
			DonorID:   donor,
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		assert.Empty(t, ledger.calls)
	})
}
