// Package handler wires the person registry HTTP endpoints to the service.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"personreg/internal/person/models"
	dErrors "personreg/pkg/domain-errors"
	"personreg/pkg/platform/httputil"
	"personreg/pkg/requestcontext"
)

// Service defines the registry operations the handler depends on.
type Service interface {
	List(ctx context.Context) ([]models.Person, error)
	Get(ctx context.Context, id int64) (*models.Person, error)
	Create(ctx context.Context, name string, age int, email string) (*models.Person, error)
	Update(ctx context.Context, id int64, patch models.Patch) (*models.Person, error)
	Delete(ctx context.Context, id int64) error
}

// Handler translates HTTP requests into person registry operations.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a person handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the person endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/persons", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
}

// HandleList handles GET /persons. Returns a JSON array ordered by id.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	persons, err := h.service.List(r.Context())
	if err != nil {
		h.logError(r, "list persons failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, persons)
}

// HandleGet handles GET /persons/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.personID(w, r)
	if !ok {
		return
	}
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.logError(r, "get person failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// HandleCreate handles POST /persons.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[CreateRequest](w, r, h.logger)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	p, err := h.service.Create(r.Context(), req.Name, req.Age, req.Email)
	if err != nil {
		h.logError(r, "create person failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p)
}

// HandleUpdate handles PUT /persons/{id}. Fields absent from the body are
// left unchanged.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.personID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[UpdateRequest](w, r, h.logger)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	p, err := h.service.Update(r.Context(), id, req.ToPatch())
	if err != nil {
		h.logError(r, "update person failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// HandleDelete handles DELETE /persons/{id}. Responds 204 with no body.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.personID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logError(r, "delete person failed", err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// personID parses the {id} URL parameter. Malformed ids are a client error,
// not a missing resource.
func (h *Handler) personID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "person id must be an integer"))
		return 0, false
	}
	return id, true
}

func (h *Handler) logError(r *http.Request, msg string, err error) {
	// Expected client outcomes stay out of the error log.
	if dErrors.HasCode(err, dErrors.CodeNotFound) || dErrors.HasCode(err, dErrors.CodeConflict) {
		return
	}
	h.logger.ErrorContext(r.Context(), msg,
		"request_id", requestcontext.RequestID(r.Context()),
		"error", err,
	)
}
