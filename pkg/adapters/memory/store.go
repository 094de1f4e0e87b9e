package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/p2lu/turingtoy/pkg/domain"
)

// Store implements ports.ResultStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Result
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Result),
	}
}

// Save persists the result in memory.
func (s *Store) Save(ctx context.Context, runID string, result *domain.Result) error {
	copied := result.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[runID] = copied
	return nil
}

// Load retrieves the result from memory.
func (s *Store) Load(ctx context.Context, runID string) (*domain.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.data[runID]
	if !ok {
		return nil, domain.ErrRunNotFound
	}

	// Copy on read so callers can't mutate the stored history
	return result.Snapshot(), nil
}

// Delete removes the result.
func (s *Store) Delete(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, runID)
	return nil
}

// List returns the stored run IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]string, 0, len(s.data))
	for id := range s.data {
		runs = append(runs, id)
	}
	sort.Strings(runs)
	return runs, nil
}
