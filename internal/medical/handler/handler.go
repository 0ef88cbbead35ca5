package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carebridge/internal/medical/models"
	"carebridge/internal/medical/service"
	"carebridge/internal/platform/middleware"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
	"carebridge/pkg/platform/httputil"
	"carebridge/pkg/requestcontext"
)

// Handler exposes the medical case endpoints. Orphanage staff open and close
// cases; donors and admins can browse them.
type Handler struct {
	service   *service.Service
	validator middleware.TokenValidator
	logger    *slog.Logger
}

func New(service *service.Service, validator middleware.TokenValidator, logger *slog.Logger) *Handler {
	return &Handler{service: service, validator: validator, logger: logger}
}

// Register mounts the medical case routes.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))

		r.Get("/medical-cases", h.handleList)
		r.Get("/medical-cases/{id}", h.handleGet)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(h.logger, domain.RoleOrphanage))
			r.Post("/medical-cases", h.handleOpen)
			r.Post("/medical-cases/{id}/close", h.handleClose)
		})
	})
}

type openRequest struct {
	ChildID      string            `json:"child_id,omitempty"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	Urgency      string            `json:"urgency"`
	CostItems    []models.CostItem `json:"cost_items,omitempty"`
	TargetAmount float64           `json:"target_amount"`
}

type caseResponse struct {
	Success bool                `json:"success"`
	Data    *models.MedicalCase `json:"data"`
}

type caseListResponse struct {
	Success bool                  `json:"success"`
	Count   int                   `json:"count"`
	Data    []*models.MedicalCase `json:"data"`
}

func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	urgency, err := domain.ParseUrgency(req.Urgency)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	in := service.OpenInput{
		Orphanage:    requestcontext.AccountID(r.Context()),
		Title:        req.Title,
		Description:  req.Description,
		Urgency:      urgency,
		CostItems:    req.CostItems,
		TargetAmount: req.TargetAmount,
	}
	if req.ChildID != "" {
		childID, err := domain.ParseChildID(req.ChildID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		in.ChildID = &childID
	}

	c, err := h.service.Open(r.Context(), in)
	if err != nil {
		h.logRejected(r, "open medical case", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, caseResponse{Success: true, Data: c})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseMedicalCaseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, caseResponse{Success: true, Data: c})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	cases, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, caseListResponse{Success: true, Count: len(cases), Data: cases})
}

func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseMedicalCaseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	c, err := h.service.Close(r.Context(), id)
	if err != nil {
		h.logRejected(r, "close medical case", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, caseResponse{Success: true, Data: c})
}

func (h *Handler) logRejected(r *http.Request, op string, err error) {
	h.logger.WarnContext(r.Context(), op+" rejected",
		"error", err.Error(),
		"request_id", requestcontext.RequestID(r.Context()),
	)
}
