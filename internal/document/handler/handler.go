package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	childmodels "carebridge/internal/child/models"
	"carebridge/internal/document"
	"carebridge/internal/platform/middleware"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
	"carebridge/pkg/platform/httputil"
	"carebridge/pkg/requestcontext"
)

const maxUploadBytes = 10 << 20

// ChildDocuments is the registry slice the upload endpoint needs.
type ChildDocuments interface {
	SetDocument(ctx context.Context, id domain.ChildID, doc childmodels.Document) (*childmodels.Child, error)
}

// Handler exposes document upload for orphanage staff. Every upload lands as
// pending; verification is a separate registry operation.
type Handler struct {
	blobs     document.BlobStore
	children  ChildDocuments
	validator middleware.TokenValidator
	logger    *slog.Logger
}

func New(blobs document.BlobStore, children ChildDocuments, validator middleware.TokenValidator, logger *slog.Logger) *Handler {
	return &Handler{blobs: blobs, children: children, validator: validator, logger: logger}
}

// Register mounts the upload route.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))
		r.Use(middleware.RequireRole(h.logger, domain.RoleOrphanage))
		r.Post("/children/{id}/documents", h.handleUpload)
	})
}

type uploadResponse struct {
	Success bool                 `json:"success"`
	Data    childmodels.Document `json:"data"`
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	childID, err := domain.ParseChildID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	// The cap must be in place before anything touches the form, or the full
	// body gets parsed regardless of size.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "upload is too large or malformed"))
		return
	}

	docType, err := domain.ParseDocumentType(r.FormValue("type"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "file upload is required"))
		return
	}
	defer file.Close()

	key := uuid.NewString()
	if err := h.blobs.Put(r.Context(), key, file, header.Header.Get("Content-Type")); err != nil {
		h.logRejected(r, "store document blob", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store document"))
		return
	}

	doc := childmodels.Document{
		Type:    docType,
		Locator: h.blobs.URL(key),
		Status:  domain.DocumentStatusPending,
	}
	if _, err := h.children.SetDocument(r.Context(), childID, doc); err != nil {
		h.logRejected(r, "attach document", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, uploadResponse{Success: true, Data: doc})
}

func (h *Handler) logRejected(r *http.Request, op string, err error) {
	h.logger.WarnContext(r.Context(), op+" rejected",
		"error", err.Error(),
		"request_id", requestcontext.RequestID(r.Context()),
	)
}
