// Package service orchestrates person registry operations: it owns error
// translation from store sentinels to domain errors, structured logging of
// mutations, and lifecycle metrics.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	personmetrics "personreg/internal/person/metrics"
	"personreg/internal/person/models"
	"personreg/internal/person/store"
	dErrors "personreg/pkg/domain-errors"
	"personreg/pkg/platform/sentinel"
	"personreg/pkg/requestcontext"
)

// HealthStatus reports the registry and backing store condition.
type HealthStatus struct {
	Healthy  bool
	Database string
}

// Service exposes the person registry operations to the transport layer.
type Service struct {
	store   store.Store
	logger  *slog.Logger
	metrics *personmetrics.Metrics
}

// New constructs the person service. metrics may be nil (tests).
func New(st store.Store, logger *slog.Logger, metrics *personmetrics.Metrics) *Service {
	return &Service{store: st, logger: logger, metrics: metrics}
}

// List returns every stored person ordered by ascending ID.
func (s *Service) List(ctx context.Context) ([]models.Person, error) {
	persons, err := s.store.List(ctx)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to list persons")
	}
	return persons, nil
}

// Get returns the person with the given ID.
func (s *Service) Get(ctx context.Context, id int64) (*models.Person, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to get person")
	}
	return p, nil
}

// Create stores a new person and returns it with its assigned ID. Age is
// accepted without range checks; negative values are valid input.
func (s *Service) Create(ctx context.Context, name string, age int, email string) (*models.Person, error) {
	p := &models.Person{Name: name, Age: age, Email: email}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, wrapStoreErr(err, "failed to create person")
	}

	s.logger.InfoContext(ctx, "person created",
		"request_id", requestcontext.RequestID(ctx),
		"person_id", p.ID,
		"duration_ms", sinceRequestStart(ctx),
	)
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
	return p, nil
}

// Update applies the patch to the identified person. The store performs the
// email check before any write, so a conflict leaves every field unchanged.
func (s *Service) Update(ctx context.Context, id int64, patch models.Patch) (*models.Person, error) {
	p, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to update person")
	}

	s.logger.InfoContext(ctx, "person updated",
		"request_id", requestcontext.RequestID(ctx),
		"person_id", id,
		"duration_ms", sinceRequestStart(ctx),
	)
	if s.metrics != nil {
		s.metrics.IncrementUpdated()
	}
	return p, nil
}

// Delete removes the person entirely. Its ID is never reassigned.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return wrapStoreErr(err, "failed to delete person")
	}

	s.logger.InfoContext(ctx, "person deleted",
		"request_id", requestcontext.RequestID(ctx),
		"person_id", id,
		"duration_ms", sinceRequestStart(ctx),
	)
	if s.metrics != nil {
		s.metrics.IncrementDeleted()
	}
	return nil
}

// Health pings the backing store.
func (s *Service) Health(ctx context.Context) HealthStatus {
	if err := s.store.Ping(ctx); err != nil {
		s.logger.ErrorContext(ctx, "backing store unreachable",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return HealthStatus{Healthy: false, Database: "unreachable"}
	}
	return HealthStatus{Healthy: true, Database: "connected"}
}

// sinceRequestStart measures elapsed time from the request-scoped start
// captured by the requesttime middleware. Outside an HTTP request the
// context carries no start time and the duration reads as zero.
func sinceRequestStart(ctx context.Context) int64 {
	return time.Since(requestcontext.Now(ctx)).Milliseconds()
}

func wrapStoreErr(err error, internalMsg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "person not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "email already registered")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "backing store unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, internalMsg)
	}
}
