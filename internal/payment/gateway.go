package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	dErrors "carebridge/pkg/domain-errors"
	"carebridge/pkg/platform/circuit"
)

// Order is the gateway's order handle. Amount is in the smallest currency
// unit, matching what the gateway expects back during checkout.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status,omitempty"`
}

// Gateway creates orders against the Razorpay-style HTTP API using basic-auth
// key/secret credentials. A circuit breaker sheds calls while the gateway is
// down so checkout fails fast instead of piling up timeouts.
type Gateway struct {
	baseURL string
	keyID   string
	secret  string
	client  *http.Client
	breaker *circuit.Breaker
}

func NewGateway(baseURL, keyID, secret string) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		keyID:   keyID,
		secret:  secret,
		client:  &http.Client{Timeout: 10 * time.Second},
		breaker: circuit.New(3, 1),
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreateOrder registers a pending order with the gateway.
func (g *Gateway) CreateOrder(ctx context.Context, amount int64, currency string) (*Order, error) {
	if g.breaker.IsOpen() {
		return nil, dErrors.New(dErrors.CodeUnavailable, "payment gateway circuit open")
	}

	body, err := json.Marshal(createOrderRequest{Amount: amount, Currency: currency})
	if err != nil {
		return nil, fmt.Errorf("encode order request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.secret)

	resp, err := g.client.Do(req)
	if err != nil {
		g.breaker.RecordFailure()
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "payment gateway unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		g.breaker.RecordFailure()
		return nil, dErrors.New(dErrors.CodeUnavailable, fmt.Sprintf("payment gateway returned %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		g.breaker.RecordSuccess()
		return nil, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("payment gateway rejected order: %d", resp.StatusCode))
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		g.breaker.RecordFailure()
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "malformed gateway response")
	}
	g.breaker.RecordSuccess()
	return &order, nil
}
