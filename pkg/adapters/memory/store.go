// Package memory provides an in-process PageStore, suitable for tests and
// single-instance deployments.
package memory

import (
	"context"
	"sync"

	"github.com/pagelift/pagelift/pkg/ports"
)

// Store implements ports.PageStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*ports.PageState
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*ports.PageState),
	}
}

// Save persists the page state in memory.
func (s *Store) Save(ctx context.Context, location string, page *ports.PageState) error {
	// Copy on write so callers can't mutate stored state by pointer.
	copied := *page

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[location] = &copied
	return nil
}

// Load retrieves the page state from memory.
func (s *Store) Load(ctx context.Context, location string) (*ports.PageState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	page, ok := s.data[location]
	if !ok {
		return nil, ports.ErrPageNotFound
	}

	ret := *page
	return &ret, nil
}

// Delete removes the page state.
func (s *Store) Delete(ctx context.Context, location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, location)
	return nil
}

// List returns the locations with saved state.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	locations := make([]string, 0, len(s.data))
	for loc := range s.data {
		locations = append(locations, loc)
	}
	return locations, nil
}
