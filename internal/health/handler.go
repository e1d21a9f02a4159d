// Package health exposes the monitoring endpoint reporting API and backing
// store condition.
package health

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"personreg/internal/person/service"
	"personreg/pkg/platform/httputil"
)

// Checker reports the registry health.
type Checker interface {
	Health(ctx context.Context) service.HealthStatus
}

// Response is the health endpoint payload.
type Response struct {
	Status   string `json:"status"`
	API      string `json:"api"`
	Database string `json:"database"`
}

// Handler serves GET /health.
type Handler struct {
	checker Checker
}

// New constructs a health handler.
func New(checker Checker) *Handler {
	return &Handler{checker: checker}
}

// Register mounts the health endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleHealth)
}

// HandleHealth reports 200 when the backing store answers a ping, 503 otherwise.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := h.checker.Health(r.Context())

	resp := Response{Status: "healthy", API: "operational", Database: status.Database}
	code := http.StatusOK
	if !status.Healthy {
		resp.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, code, resp)
}
