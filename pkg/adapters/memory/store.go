package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/labyrinth/pkg/domain"
)

// Store implements ports.RouteStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.RouteRecord
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.RouteRecord),
	}
}

// Save persists a copy of the record in memory.
func (s *Store) Save(ctx context.Context, record *domain.RouteRecord) error {
	copied := record.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[record.ID] = copied
	return nil
}

// Load retrieves a copy of the record so callers can't mutate the store by pointer.
func (s *Store) Load(ctx context.Context, id string) (*domain.RouteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[id]
	if !ok {
		return nil, domain.ErrRouteNotFound
	}
	return rec.Clone(), nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored record IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
