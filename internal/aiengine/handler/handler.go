package handler

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carebridge/internal/aiengine"
	"carebridge/internal/platform/middleware"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
	"carebridge/pkg/platform/httputil"
	"carebridge/pkg/requestcontext"
)

// Handler exposes the AI capability endpoints to staff roles.
type Handler struct {
	engine    aiengine.Engine
	validator middleware.TokenValidator
	logger    *slog.Logger
}

func New(engine aiengine.Engine, validator middleware.TokenValidator, logger *slog.Logger) *Handler {
	return &Handler{engine: engine, validator: validator, logger: logger}
}

// Register mounts the AI routes.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))
		r.Use(middleware.RequireRole(h.logger, domain.RoleAdmin, domain.RoleOrphanage))
		r.Get("/ai/predict-risk/{childId}", h.handlePredictRisk)
		r.Get("/ai/match-schemes/{childId}", h.handleMatchSchemes)
		r.Get("/ai/match-opportunity/{childId}", h.handleMatchOpportunity)
		r.Post("/ai/process-document", h.handleProcessDocument)
	})
}

type riskResponse struct {
	Success bool                     `json:"success"`
	Data    *aiengine.RiskAssessment `json:"data"`
}

func (h *Handler) handlePredictRisk(w http.ResponseWriter, r *http.Request) {
	childID, err := domain.ParseChildID(chi.URLParam(r, "childId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	assessment, err := h.engine.PredictRisk(r.Context(), childID)
	if err != nil {
		h.logRejected(r, "predict risk", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, riskResponse{Success: true, Data: assessment})
}

type schemeMatchResponse struct {
	Success bool                   `json:"success"`
	Count   int                    `json:"count"`
	Data    []aiengine.SchemeMatch `json:"data"`
}

func (h *Handler) handleMatchSchemes(w http.ResponseWriter, r *http.Request) {
	childID, err := domain.ParseChildID(chi.URLParam(r, "childId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	matches, err := h.engine.MatchSchemes(r.Context(), childID)
	if err != nil {
		h.logRejected(r, "match schemes", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, schemeMatchResponse{Success: true, Count: len(matches), Data: matches})
}

type opportunityResponse struct {
	Success bool                       `json:"success"`
	Data    *aiengine.OpportunityMatch `json:"data"`
}

func (h *Handler) handleMatchOpportunity(w http.ResponseWriter, r *http.Request) {
	childID, err := domain.ParseChildID(chi.URLParam(r, "childId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	match, err := h.engine.MatchOpportunity(r.Context(), childID)
	if err != nil {
		h.logRejected(r, "match opportunity", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, opportunityResponse{Success: true, Data: match})
}

type processDocumentRequest struct {
	DocumentType string `json:"document_type"`
	Content      string `json:"content"`
}

type processDocumentResponse struct {
	Success bool                         `json:"success"`
	Data    *aiengine.DocumentExtraction `json:"data"`
}

func (h *Handler) handleProcessDocument(w http.ResponseWriter, r *http.Request) {
	var req processDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	content, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "content must be base64"))
		return
	}

	extraction, err := h.engine.ExtractDocument(r.Context(), req.DocumentType, content)
	if err != nil {
		h.logRejected(r, "process document", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, processDocumentResponse{Success: true, Data: extraction})
}

func (h *Handler) logRejected(r *http.Request, op string, err error) {
	h.logger.WarnContext(r.Context(), op+" rejected",
		"error", err.Error(),
		"request_id", requestcontext.RequestID(r.Context()),
	)
}
