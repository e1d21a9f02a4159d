package store

import (
	"context"
	"sort"
	"sync"

	"personreg/internal/person/models"
	"personreg/pkg/platform/sentinel"
)

// InMemory keeps person records in a mutex-guarded map. It favors clarity
// over performance and is the default backend for development and tests.
type InMemory struct {
	mu      sync.RWMutex
	persons map[int64]models.Person
	emails  map[string]int64
	nextID  int64
}

// NewInMemory returns an empty in-memory store with the ID counter at 1.
func NewInMemory() *InMemory {
	return &InMemory{
		persons: make(map[int64]models.Person),
		emails:  make(map[string]int64),
		nextID:  1,
	}
}

func (s *InMemory) List(_ context.Context) ([]models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Person, 0, len(s.persons))
	for _, p := range s.persons {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemory) FindByID(_ context.Context, id int64) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.persons[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &p, nil
}

func (s *InMemory) Create(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[p.Email]; taken {
		return sentinel.ErrConflict
	}

	p.ID = s.nextID
	s.nextID++
	s.persons[p.ID] = *p
	s.emails[p.Email] = p.ID
	return nil
}

func (s *InMemory) Update(_ context.Context, id int64, patch models.Patch) (*models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.persons[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}

	// Check the email claim before touching any field so a conflict leaves
	// the record fully unchanged.
	if patch.Email != nil && *patch.Email != p.Email {
		if _, taken := s.emails[*patch.Email]; taken {
			return nil, sentinel.ErrConflict
		}
	}

	oldEmail := p.Email
	patch.Apply(&p)
	if p.Email != oldEmail {
		delete(s.emails, oldEmail)
		s.emails[p.Email] = id
	}
	s.persons[id] = p
	return &p, nil
}

func (s *InMemory) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.persons[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.persons, id)
	delete(s.emails, p.Email)
	return nil
}

func (s *InMemory) Ping(_ context.Context) error { return nil }
