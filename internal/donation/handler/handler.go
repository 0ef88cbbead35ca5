package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carebridge/internal/donation/models"
	"carebridge/internal/donation/service"
	"carebridge/internal/platform/middleware"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
	"carebridge/pkg/platform/httputil"
	"carebridge/pkg/requestcontext"
)

// Handler exposes the donation ledger endpoints. Donors write and read their
// own entries; admins read the whole ledger.
type Handler struct {
	service   *service.Service
	validator middleware.TokenValidator
	logger    *slog.Logger
}

func New(service *service.Service, validator middleware.TokenValidator, logger *slog.Logger) *Handler {
	return &Handler{service: service, validator: validator, logger: logger}
}

// Register mounts the donation routes.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(h.logger, domain.RoleDonor))
			r.Post("/donations", h.handleCreate)
			r.Get("/donations/my", h.handleListMine)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(h.logger, domain.RoleAdmin))
			r.Get("/donations", h.handleListAll)
		})
	})
}

type createRequest struct {
	Amount        float64 `json:"amount"`
	Message       string  `json:"message,omitempty"`
	ChildID       string  `json:"child_id,omitempty"`
	OrphanageID   string  `json:"orphanage_id,omitempty"`
	FundType      string  `json:"fund_type,omitempty"`
	MedicalCaseID string  `json:"medical_case_id,omitempty"`
}

type donationResponse struct {
	Success bool             `json:"success"`
	Data    *models.Donation `json:"data"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	in, err := buildCreateInput(r, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	donation, err := h.service.CreateDonation(r.Context(), in)
	if err != nil {
		h.logRejected(r, "create donation", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, donationResponse{Success: true, Data: donation})
}

func buildCreateInput(r *http.Request, req createRequest) (service.CreateInput, error) {
	fundType, err := domain.ParseFundType(req.FundType)
	if err != nil {
		return service.CreateInput{}, err
	}
	in := service.CreateInput{
		DonorID:  requestcontext.AccountID(r.Context()),
		Amount:   req.Amount,
		Message:  req.Message,
		FundType: fundType,
	}
	if req.ChildID != "" {
		childID, err := domain.ParseChildID(req.ChildID)
		if err != nil {
			return service.CreateInput{}, err
		}
		in.ChildID = &childID
	}
	if req.OrphanageID != "" {
		orphanageID, err := domain.ParseAccountID(req.OrphanageID)
		if err != nil {
			return service.CreateInput{}, err
		}
		in.OrphanageID = &orphanageID
	}
	if req.MedicalCaseID != "" {
		caseID, err := domain.ParseMedicalCaseID(req.MedicalCaseID)
		if err != nil {
			return service.CreateInput{}, err
		}
		in.MedicalCaseID = &caseID
	}
	return in, nil
}

type donorListResponse struct {
	Count     int                `json:"count"`
	Donations []models.DonorView `json:"donations"`
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListDonationsForDonor(r.Context(), requestcontext.AccountID(r.Context()))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, donorListResponse{Count: len(views), Donations: views})
}

type adminListResponse struct {
	Success bool               `json:"success"`
	Count   int                `json:"count"`
	Data    []*models.Donation `json:"data"`
}

func (h *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	donations, err := h.service.ListAllDonations(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, adminListResponse{Success: true, Count: len(donations), Data: donations})
}

func (h *Handler) logRejected(r *http.Request, op string, err error) {
	h.logger.WarnContext(r.Context(), op+" rejected",
		"error", err.Error(),
		"request_id", requestcontext.RequestID(r.Context()),
	)
}
