package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"carebridge/internal/child/models"
	"carebridge/internal/child/service"
	"carebridge/internal/platform/middleware"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
	"carebridge/pkg/platform/httputil"
	"carebridge/pkg/requestcontext"
)

// Handler exposes the child registry endpoints. Orphanage staff manage their
// own children; admins read everything.
type Handler struct {
	service   *service.Service
	validator middleware.TokenValidator
	logger    *slog.Logger
}

func New(service *service.Service, validator middleware.TokenValidator, logger *slog.Logger) *Handler {
	return &Handler{service: service, validator: validator, logger: logger}
}

// Register mounts the child registry routes.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(h.logger, domain.RoleAdmin, domain.RoleOrphanage))
			r.Get("/children", h.handleList)
			r.Get("/children/{id}", h.handleGet)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(h.logger, domain.RoleOrphanage))
			r.Post("/children", h.handleCreate)
			r.Patch("/children/{id}", h.handleUpdate)
			r.Post("/children/{id}/notes", h.handleAppendNote)
			r.Put("/children/{id}/documents/{type}/status", h.handleSetDocumentStatus)
			r.Put("/children/{id}/transition", h.handleSetTransition)
		})
	})
}

type createRequest struct {
	Name      string   `json:"name"`
	Age       *int     `json:"age,omitempty"`
	Education string   `json:"education,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	Orphanage string   `json:"orphanage,omitempty"`
}

type childResponse struct {
	Success bool          `json:"success"`
	Data    *models.Child `json:"data"`
}

type childListResponse struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Data    []*models.Child `json:"data"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	in := service.CreateInput{
		Name:      req.Name,
		Age:       req.Age,
		Education: req.Education,
		Skills:    req.Skills,
	}
	// Orphanage staff register children into their own institution unless an
	// explicit reference is supplied.
	if req.Orphanage != "" {
		id, err := domain.ParseAccountID(req.Orphanage)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		in.Orphanage = &id
	} else if caller := requestcontext.AccountID(r.Context()); !caller.IsNil() {
		in.Orphanage = &caller
	}

	child, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.logRejected(r, "create child", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, childResponse{Success: true, Data: child})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseChildID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	child, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, childResponse{Success: true, Data: child})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var scope *domain.AccountID
	if requestcontext.Role(r.Context()) == domain.RoleOrphanage {
		caller := requestcontext.AccountID(r.Context())
		scope = &caller
	}
	children, err := h.service.List(r.Context(), scope)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, childListResponse{Success: true, Count: len(children), Data: children})
}

type updateRequest struct {
	Education  *string                `json:"education,omitempty"`
	Skills     []string               `json:"skills,omitempty"`
	Orphanage  *string                `json:"orphanage,omitempty"`
	Attendance *int                   `json:"attendance,omitempty"`
	Academic   *models.AcademicRecord `json:"academic,omitempty"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseChildID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	in := service.UpdateInput{
		Education:  req.Education,
		Skills:     req.Skills,
		Attendance: req.Attendance,
		Academic:   req.Academic,
	}
	if req.Orphanage != nil {
		orphanageID, err := domain.ParseAccountID(*req.Orphanage)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		in.Orphanage = &orphanageID
	}

	child, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		h.logRejected(r, "update child", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, childResponse{Success: true, Data: child})
}

type noteRequest struct {
	Text     string `json:"text"`
	Severity string `json:"severity"`
}

func (h *Handler) handleAppendNote(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseChildID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	severity, err := domain.ParseSeverity(req.Severity)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	child, err := h.service.AppendNote(r.Context(), id, req.Text, severity)
	if err != nil {
		h.logRejected(r, "append note", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, childResponse{Success: true, Data: child})
}

type documentStatusRequest struct {
	Status  string `json:"status"`
	Locator string `json:"locator,omitempty"`
}

func (h *Handler) handleSetDocumentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseChildID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	docType, err := domain.ParseDocumentType(chi.URLParam(r, "type"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req documentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	status, err := domain.ParseDocumentStatus(req.Status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	child, err := h.service.SetDocument(r.Context(), id, models.Document{
		Type:    docType,
		Locator: req.Locator,
		Status:  status,
	})
	if err != nil {
		h.logRejected(r, "set document status", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, childResponse{Success: true, Data: child})
}

type transitionRequest struct {
	ExpectedExit *time.Time `json:"expected_exit,omitempty"`
	Readiness    int        `json:"readiness"`
	Pathways     []string   `json:"pathways,omitempty"`
}

func (h *Handler) handleSetTransition(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseChildID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	child, err := h.service.SetTransition(r.Context(), id, models.TransitionPlan{
		ExpectedExit: req.ExpectedExit,
		Readiness:    req.Readiness,
		Pathways:     req.Pathways,
	})
	if err != nil {
		h.logRejected(r, "set transition plan", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, childResponse{Success: true, Data: child})
}

func (h *Handler) logRejected(r *http.Request, op string, err error) {
	h.logger.WarnContext(r.Context(), op+" rejected",
		"error", err.Error(),
		"request_id", requestcontext.RequestID(r.Context()),
	)
}
