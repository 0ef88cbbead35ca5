package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carebridge/internal/platform/middleware"
	"carebridge/internal/scheme/matching"
	"carebridge/internal/scheme/models"
	"carebridge/internal/scheme/service"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
	"carebridge/pkg/platform/httputil"
	"carebridge/pkg/requestcontext"
)

// Handler exposes the scheme catalog, eligibility matching and application
// endpoints. Catalog writes are admin-only; matching is open to staff roles.
type Handler struct {
	service   *service.Service
	validator middleware.TokenValidator
	logger    *slog.Logger
}

func New(service *service.Service, validator middleware.TokenValidator, logger *slog.Logger) *Handler {
	return &Handler{service: service, validator: validator, logger: logger}
}

// Register mounts the scheme routes.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(h.logger, domain.RoleAdmin))
			r.Post("/schemes", h.handleCreateScheme)
			r.Patch("/schemes/{id}", h.handleUpdateScheme)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(h.logger, domain.RoleAdmin, domain.RoleOrphanage))
			r.Get("/schemes", h.handleListSchemes)
			r.Get("/schemes/{id}", h.handleGetScheme)
			r.Get("/schemes/{id}/matches", h.handleMatchChildren)
			r.Get("/children/{id}/schemes", h.handleMatchSchemes)
			r.Post("/applications", h.handleOpenApplication)
			r.Put("/applications/{id}/status", h.handleAdvanceApplication)
			r.Get("/children/{id}/applications", h.handleListApplications)
		})
	})
}

type schemeRequest struct {
	Name        string                 `json:"name"`
	Department  string                 `json:"department,omitempty"`
	Description string                 `json:"description,omitempty"`
	Eligibility models.EligibilityRule `json:"eligibility"`
	Benefit     models.Benefit         `json:"benefit,omitempty"`
	ApplyLink   string                 `json:"apply_link,omitempty"`
}

type schemeResponse struct {
	Success bool           `json:"success"`
	Data    *models.Scheme `json:"data"`
}

type schemeListResponse struct {
	Success bool             `json:"success"`
	Count   int              `json:"count"`
	Data    []*models.Scheme `json:"data"`
}

func (h *Handler) handleCreateScheme(w http.ResponseWriter, r *http.Request) {
	var req schemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	scheme, err := h.service.CreateScheme(r.Context(), service.CreateSchemeInput{
		Name:        req.Name,
		Department:  req.Department,
		Description: req.Description,
		Rule:        req.Eligibility,
		Benefit:     req.Benefit,
		ApplyLink:   req.ApplyLink,
	})
	if err != nil {
		h.logRejected(r, "create scheme", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, schemeResponse{Success: true, Data: scheme})
}

func (h *Handler) handleGetScheme(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseSchemeID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	scheme, err := h.service.GetScheme(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, schemeResponse{Success: true, Data: scheme})
}

func (h *Handler) handleListSchemes(w http.ResponseWriter, r *http.Request) {
	schemes, err := h.service.ListSchemes(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, schemeListResponse{Success: true, Count: len(schemes), Data: schemes})
}

type updateSchemeRequest struct {
	Name        *string                 `json:"name,omitempty"`
	Department  *string                 `json:"department,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Eligibility *models.EligibilityRule `json:"eligibility,omitempty"`
	Benefit     *models.Benefit         `json:"benefit,omitempty"`
	ApplyLink   *string                 `json:"apply_link,omitempty"`
}

func (h *Handler) handleUpdateScheme(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseSchemeID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req updateSchemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	scheme, err := h.service.UpdateScheme(r.Context(), id, service.UpdateSchemeInput{
		Name:        req.Name,
		Department:  req.Department,
		Description: req.Description,
		Rule:        req.Eligibility,
		Benefit:     req.Benefit,
		ApplyLink:   req.ApplyLink,
	})
	if err != nil {
		h.logRejected(r, "update scheme", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, schemeResponse{Success: true, Data: scheme})
}

type matchChildrenResponse struct {
	Success    bool                  `json:"success"`
	Count      int                   `json:"count"`
	SchemeName string                `json:"schemeName"`
	Data       []matching.ChildMatch `json:"data"`
}

func (h *Handler) handleMatchChildren(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseSchemeID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	matches, err := h.service.MatchChildren(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, matchChildrenResponse{
		Success:    true,
		Count:      len(matches.Children),
		SchemeName: matches.SchemeName,
		Data:       matches.Children,
	})
}

type matchSchemesResponse struct {
	Success bool                    `json:"success"`
	Count   int                     `json:"count"`
	Data    []matching.ScoredScheme `json:"data"`
}

func (h *Handler) handleMatchSchemes(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseChildID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	matches, err := h.service.MatchSchemes(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, matchSchemesResponse{Success: true, Count: len(matches), Data: matches})
}

type openApplicationRequest struct {
	ChildID  string `json:"child_id"`
	SchemeID string `json:"scheme_id"`
	Notes    string `json:"notes,omitempty"`
}

type applicationResponse struct {
	Success bool                `json:"success"`
	Data    *models.Application `json:"data"`
}

type applicationListResponse struct {
	Success bool                  `json:"success"`
	Count   int                   `json:"count"`
	Data    []*models.Application `json:"data"`
}

func (h *Handler) handleOpenApplication(w http.ResponseWriter, r *http.Request) {
	var req openApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	childID, err := domain.ParseChildID(req.ChildID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	schemeID, err := domain.ParseSchemeID(req.SchemeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	app, err := h.service.OpenApplication(r.Context(), childID, schemeID, req.Notes)
	if err != nil {
		h.logRejected(r, "open application", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, applicationResponse{Success: true, Data: app})
}

type advanceApplicationRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleAdvanceApplication(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseApplicationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req advanceApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	status, err := models.ParseApplicationStatus(req.Status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	app, err := h.service.AdvanceApplication(r.Context(), id, status)
	if err != nil {
		h.logRejected(r, "advance application", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, applicationResponse{Success: true, Data: app})
}

func (h *Handler) handleListApplications(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseChildID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	apps, err := h.service.ListApplicationsForChild(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, applicationListResponse{Success: true, Count: len(apps), Data: apps})
}

func (h *Handler) logRejected(r *http.Request, op string, err error) {
	h.logger.WarnContext(r.Context(), op+" rejected",
		"error", err.Error(),
		"request_id", requestcontext.RequestID(r.Context()),
	)
}
