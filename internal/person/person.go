package person

import (
	"log/slog"

	"personreg/internal/person/handler"
	"personreg/internal/person/metrics"
	"personreg/internal/person/service"
	"personreg/internal/person/store"
)

// Service exposes person registry orchestration.
type Service = service.Service

// Handler wires HTTP endpoints to the person service.
type Handler = handler.Handler

// NewService constructs the person service with required dependencies.
func NewService(st store.Store, logger *slog.Logger, m *metrics.Metrics) *Service {
	return service.New(st, logger, m)
}

// NewHandler constructs an HTTP handler for person routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
