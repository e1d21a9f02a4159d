// Package store defines the persistence contract for person records and its
// in-memory, PostgreSQL, and Redis implementations.
//
// Stores are interface-driven to keep the domain logic testable and to allow
// swapping persistence backends without rewiring business code. Stores report
// factual states via pkg/platform/sentinel errors; the service layer
// translates them into domain errors.
package store

import (
	"context"

	"personreg/internal/person/models"
)

// Store persists person records.
//
// Every mutating call executes its read-check-write sequence atomically with
// respect to other mutations (mutex, SQL transaction with a row lock, or a
// Redis transaction, depending on the backend). Reads return copies; callers
// never hold references into stored state.
type Store interface {
	// List returns all persons ordered by ascending ID.
	List(ctx context.Context) ([]models.Person, error)

	// FindByID returns the person with the given ID, or sentinel.ErrNotFound.
	FindByID(ctx context.Context, id int64) (*models.Person, error)

	// Create assigns the next monotonic ID to p and stores it. Returns
	// sentinel.ErrConflict if the email is already taken; nothing is stored
	// and the ID sequence may or may not advance (never reusing values).
	Create(ctx context.Context, p *models.Person) error

	// Update atomically applies the patch to the identified person. Returns
	// sentinel.ErrNotFound for an absent ID and sentinel.ErrConflict if the
	// patched email belongs to another person, in which case no field is
	// changed. Returns the updated person.
	Update(ctx context.Context, id int64, patch models.Patch) (*models.Person, error)

	// Delete removes the person entirely. The ID is never reassigned.
	// Returns sentinel.ErrNotFound for an absent ID.
	Delete(ctx context.Context, id int64) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
