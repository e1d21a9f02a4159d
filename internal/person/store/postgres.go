package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"personreg/internal/person/models"
	"personreg/pkg/platform/sentinel"
)

// uniqueViolation is the PostgreSQL error code for unique constraint failures.
const uniqueViolation = "23505"

// Postgres persists person records in PostgreSQL. ID assignment rides on a
// BIGSERIAL sequence, which is monotonic and never reuses values after
// deletion. Email uniqueness is enforced by the persons_email_key constraint.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed person store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the persons table if it does not exist. Idempotent, so
// it can run unconditionally at startup.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS persons (
			id    BIGSERIAL PRIMARY KEY,
			name  TEXT   NOT NULL,
			age   BIGINT NOT NULL,
			email TEXT   NOT NULL UNIQUE
		)
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure persons schema: %w", err)
	}
	return nil
}

func (s *Postgres) List(ctx context.Context) ([]models.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, age, email FROM persons ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()

	persons := make([]models.Person, 0)
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Email); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate persons: %w", err)
	}
	return persons, nil
}

func (s *Postgres) FindByID(ctx context.Context, id int64) (*models.Person, error) {
	var p models.Person
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, age, email FROM persons WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Age, &p.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find person %d: %w", id, err)
	}
	return &p, nil
}

func (s *Postgres) Create(ctx context.Context, p *models.Person) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO persons (name, age, email) VALUES ($1, $2, $3) RETURNING id`,
		p.Name, p.Age, p.Email).Scan(&p.ID)
	if isUniqueViolation(err) {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("create person: %w", err)
	}
	return nil
}

func (s *Postgres) Update(ctx context.Context, id int64, patch models.Patch) (*models.Person, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update tx: %w", err)
	}
	defer tx.Rollback()

	// Row lock keeps the read-check-write sequence atomic against concurrent
	// mutations of the same person.
	var p models.Person
	err = tx.QueryRowContext(ctx,
		`SELECT id, name, age, email FROM persons WHERE id = $1 FOR UPDATE`, id).
		Scan(&p.ID, &p.Name, &p.Age, &p.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock person %d: %w", id, err)
	}

	patch.Apply(&p)

	_, err = tx.ExecContext(ctx,
		`UPDATE persons SET name = $1, age = $2, email = $3 WHERE id = $4`,
		p.Name, p.Age, p.Email, id)
	if isUniqueViolation(err) {
		// Rolled back: the conflicting patch leaves the row untouched.
		return nil, sentinel.ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("update person %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update tx: %w", err)
	}
	return &p, nil
}

func (s *Postgres) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM persons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete person %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete person %d: %w", id, err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return sentinel.ErrUnavailable
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
