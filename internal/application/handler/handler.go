// Package handler is the thin HTTP layer over the application service. It
// decodes requests, delegates, and translates domain errors; no business
// rules live here.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"jobtrack/internal/application/models"
	"jobtrack/internal/application/query"
	"jobtrack/internal/application/service"
	dErrors "jobtrack/pkg/domain-errors"
	"jobtrack/pkg/httputil"
)

// Service is the application service contract consumed by the handler.
type Service interface {
	Create(ctx context.Context, req models.CreateRequest) (models.JobApplication, error)
	List(ctx context.Context, params query.Params) (service.Page, error)
	Get(ctx context.Context, id uuid.UUID) (models.JobApplication, error)
	Update(ctx context.Context, id uuid.UUID, req models.UpdateRequest) (models.JobApplication, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register mounts the job application routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/job-applications", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	app, err := h.service.Create(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, err, "create")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, app)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, err := h.service.List(ctx, query.ParamsFromValues(r.URL.Query()))
	if err != nil {
		h.writeServiceError(ctx, w, err, "list")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.applicationID(w, r)
	if !ok {
		return
	}
	app, err := h.service.Get(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, err, "get")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, app)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.applicationID(w, r)
	if !ok {
		return
	}
	var req models.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	app, err := h.service.Update(ctx, id, req)
	if err != nil {
		h.writeServiceError(ctx, w, err, "update")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, app)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.applicationID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(ctx, id); err != nil {
		h.writeServiceError(ctx, w, err, "delete")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) applicationID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid application id"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, op string) {
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, "job application operation failed", "op", op, "error", err)
	}
	httputil.WriteError(w, err)
}
