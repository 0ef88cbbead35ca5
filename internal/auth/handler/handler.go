package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carebridge/internal/auth/models"
	"carebridge/internal/platform/middleware"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
	"carebridge/pkg/platform/httputil"
	"carebridge/pkg/requestcontext"
)

// Service is the auth surface the handler depends on.
type Service interface {
	Register(ctx context.Context, name, email, password string, role domain.Role) (*models.Account, error)
	Login(ctx context.Context, email, password string) (string, *models.Account, error)
}

// Handler exposes the registration and login endpoints.
type Handler struct {
	service   Service
	validator middleware.TokenValidator
	logger    *slog.Logger
}

func New(service Service, validator middleware.TokenValidator, logger *slog.Logger) *Handler {
	return &Handler{service: service, validator: validator, logger: logger}
}

// Register mounts the auth routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)

	// Creating orphanage or admin accounts is an admin operation.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))
		r.Use(middleware.RequireRole(h.logger, domain.RoleAdmin))
		r.Post("/auth/accounts", h.handleCreatePrivileged)
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type accountResponse struct {
	Success bool            `json:"success"`
	Data    *models.Account `json:"data"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	// Self-service registration covers donors and careleavers only.
	if role != domain.RoleDonor && role != domain.RoleCareleaver {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "role requires admin provisioning"))
		return
	}

	account, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		h.logRejected(r, "register", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, accountResponse{Success: true, Data: account})
}

func (h *Handler) handleCreatePrivileged(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	account, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		h.logRejected(r, "create account", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, accountResponse{Success: true, Data: account})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	Account *models.Account `json:"account"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	tokenString, account, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logRejected(r, "login", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, loginResponse{Success: true, Token: tokenString, Account: account})
}

func (h *Handler) logRejected(r *http.Request, op string, err error) {
	h.logger.WarnContext(r.Context(), op+" rejected",
		"error", err.Error(),
		"request_id", requestcontext.RequestID(r.Context()),
	)
}
