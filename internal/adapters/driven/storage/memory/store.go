// Package memory provides an in-memory catalog store, used in tests and
// for ephemeral index builds where persistence is not needed.
package memory

import (
	"context"
	"sync"

	"github.com/rudryyy/SHL/internal/core/domain"
	"github.com/rudryyy/SHL/internal/core/ports/driven"
)

var _ driven.CatalogStore = (*Store)(nil)

// Store is an in-memory catalog store.
type Store struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]domain.Assessment
}

// NewStore creates an empty in-memory catalog store.
func NewStore() *Store {
	return &Store{byID: make(map[string]domain.Assessment)}
}

// PutAll replaces the catalog contents, preserving slice order.
func (s *Store) PutAll(_ context.Context, assessments []domain.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = make([]string, 0, len(assessments))
	s.byID = make(map[string]domain.Assessment, len(assessments))
	for _, a := range assessments {
		s.order = append(s.order, a.ID)
		s.byID[a.ID] = a
	}
	return nil
}

// Get retrieves an assessment by ID.
func (s *Store) Get(_ context.Context, id string) (*domain.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

// List returns all assessments in insertion order.
func (s *Store) List(_ context.Context) ([]domain.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Assessment, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

// Count returns the number of stored assessments.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order), nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
