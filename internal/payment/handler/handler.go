package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	donationmodels "carebridge/internal/donation/models"
	"carebridge/internal/payment"
	"carebridge/internal/payment/service"
	"carebridge/internal/platform/middleware"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
	"carebridge/pkg/platform/httputil"
	"carebridge/pkg/requestcontext"
)

// Handler exposes the gateway checkout endpoints for donors.
type Handler struct {
	service   *service.Service
	validator middleware.TokenValidator
	logger    *slog.Logger
}

func New(service *service.Service, validator middleware.TokenValidator, logger *slog.Logger) *Handler {
	return &Handler{service: service, validator: validator, logger: logger}
}

// Register mounts the payment routes.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))
		r.Use(middleware.RequireRole(h.logger, domain.RoleDonor))
		r.Post("/payment/createOrder", h.handleCreateOrder)
		r.Post("/payment/verifyPayment", h.handleVerifyPayment)
	})
}

type createOrderRequest struct {
	Amount float64 `json:"amount"`
}

type createOrderResponse struct {
	Success bool           `json:"success"`
	Data    *payment.Order `json:"data"`
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	order, err := h.service.CreateOrder(r.Context(), req.Amount)
	if err != nil {
		h.logRejected(r, "create order", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, createOrderResponse{Success: true, Data: order})
}

// Field names follow the gateway's checkout callback payload.
type verifyPaymentRequest struct {
	OrderID   string  `json:"razorpay_order_id"`
	PaymentID string  `json:"razorpay_payment_id"`
	Signature string  `json:"razorpay_signature"`
	Amount    float64 `json:"amount"`
	ChildID   string  `json:"child_id,omitempty"`
	Message   string  `json:"message,omitempty"`
}

type verifyPaymentResponse struct {
	Success bool                     `json:"success"`
	Data    *donationmodels.Donation `json:"data"`
}

func (h *Handler) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	in := service.VerifyInput{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
		Amount:    req.Amount,
		DonorID:   requestcontext.AccountID(r.Context()),
		Message:   req.Message,
	}
	if req.ChildID != "" {
		childID, err := domain.ParseChildID(req.ChildID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		in.ChildID = &childID
	}

	donation, err := h.service.VerifyAndCommit(r.Context(), in)
	if err != nil {
		h.logRejected(r, "verify payment", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, verifyPaymentResponse{Success: true, Data: donation})
}

func (h *Handler) logRejected(r *http.Request, op string, err error) {
	h.logger.WarnContext(r.Context(), op+" rejected",
		"error", err.Error(),
		"request_id", requestcontext.RequestID(r.Context()),
	)
}
