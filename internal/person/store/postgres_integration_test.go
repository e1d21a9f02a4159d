//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"personreg/internal/person/models"
	"personreg/internal/person/store"
	"personreg/pkg/platform/sentinel"
	"personreg/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "persons"))
}

func (s *PostgresStoreSuite) create(name string, age int, email string) *models.Person {
	p := &models.Person{Name: name, Age: age, Email: email}
	s.Require().NoError(s.store.Create(context.Background(), p))
	return p
}

func (s *PostgresStoreSuite) TestCreateAssignsSequentialIDs() {
	first := s.create("Alice", 25, "alice@example.com")
	second := s.create("Bob", 35, "bob@example.com")

	s.Equal(int64(1), first.ID)
	s.Equal(int64(2), second.ID)
}

func (s *PostgresStoreSuite) TestCreateRejectsDuplicateEmail() {
	s.create("John Doe", 30, "john@example.com")

	err := s.store.Create(context.Background(),
		&models.Person{Name: "Jane Doe", Age: 28, Email: "john@example.com"})
	s.ErrorIs(err, sentinel.ErrConflict)

	persons, listErr := s.store.List(context.Background())
	s.Require().NoError(listErr)
	s.Len(persons, 1)
}

func (s *PostgresStoreSuite) TestIDsNotReusedAfterDelete() {
	ctx := context.Background()
	p := s.create("John Doe", 30, "john@example.com")
	s.Require().NoError(s.store.Delete(ctx, p.ID))

	// BIGSERIAL keeps advancing past deleted rows.
	next := s.create("John Again", 31, "john2@example.com")
	s.Greater(next.ID, p.ID)
}

func (s *PostgresStoreSuite) TestUpdatePartialAndConflict() {
	ctx := context.Background()
	s.create("Alice", 25, "alice@example.com")
	bob := s.create("Bob", 35, "bob@example.com")

	age := 36
	updated, err := s.store.Update(ctx, bob.ID, models.Patch{Age: &age})
	s.Require().NoError(err)
	s.Equal(36, updated.Age)
	s.Equal("Bob", updated.Name)

	// Conflicting email rolls back the whole patch.
	name := "Robert"
	email := "alice@example.com"
	_, err = s.store.Update(ctx, bob.ID, models.Patch{Name: &name, Email: &email})
	s.ErrorIs(err, sentinel.ErrConflict)

	found, findErr := s.store.FindByID(ctx, bob.ID)
	s.Require().NoError(findErr)
	s.Equal("Bob", found.Name)
	s.Equal("bob@example.com", found.Email)
}

func (s *PostgresStoreSuite) TestUpdateToOwnEmailAllowed() {
	ctx := context.Background()
	bob := s.create("Bob", 35, "bob@example.com")

	email := "bob@example.com"
	updated, err := s.store.Update(ctx, bob.ID, models.Patch{Email: &email})
	s.Require().NoError(err)
	s.Equal("bob@example.com", updated.Email)
}

func (s *PostgresStoreSuite) TestNotFoundPaths() {
	ctx := context.Background()

	_, err := s.store.FindByID(ctx, 42)
	s.ErrorIs(err, sentinel.ErrNotFound)

	age := 31
	_, err = s.store.Update(ctx, 42, models.Patch{Age: &age})
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.Delete(ctx, 42), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestNegativeAgeAccepted() {
	p := s.create("Benjamin Button", -5, "ben@example.com")

	found, err := s.store.FindByID(context.Background(), p.ID)
	s.Require().NoError(err)
	s.Equal(-5, found.Age)
}

// TestConcurrentDuplicateEmail verifies that concurrent creation attempts
// with the same email result in exactly one success.
func (s *PostgresStoreSuite) TestConcurrentDuplicateEmail() {
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	var successCount atomic.Int32
	var conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			p := &models.Person{Name: "Racer", Age: 30, Email: "race@example.com"}
			err := s.store.Create(ctx, p)
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, sentinel.ErrConflict) {
				conflictCount.Add(1)
			}
		}()
	}

	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one create should succeed")
	s.Equal(int32(goroutines-1), conflictCount.Load())
}

func (s *PostgresStoreSuite) TestPing() {
	s.NoError(s.store.Ping(context.Background()))
}
