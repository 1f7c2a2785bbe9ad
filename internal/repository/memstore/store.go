// Package memstore holds analysis records in process memory.
//
// The store lives for the whole process run: no persistence, no eviction.
// It is a set keyed by content address, not a log. Listing is stable in
// insertion order.
package memstore

import (
	"context"
	"sync"

	"github.com/kailas-cloud/strindex/internal/domain"
	"github.com/kailas-cloud/strindex/internal/domain/record"
)

// Store is an in-memory, mutex-guarded record store.
// Mutations are mutually exclusive; listings observe a consistent snapshot.
type Store struct {
	mu    sync.RWMutex
	byID  map[string]record.Record
	order []string
}

// New creates an empty Store.
func New() *Store {
	return &Store{byID: make(map[string]record.Record)}
}

// Insert stores a record. If the content address is already taken, the first
// writer wins permanently and a domain.ConflictError carrying the existing id
// is returned.
func (s *Store) Insert(_ context.Context, rec record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byID[rec.ID()]; ok {
		return domain.NewConflict(existing.ID())
	}

	s.byID[rec.ID()] = rec
	s.order = append(s.order, rec.ID())
	return nil
}

// Get returns the record at the given content address.
func (s *Store) Get(_ context.Context, id string) (record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return record.Record{}, domain.ErrNotFound
	}
	return rec, nil
}

// Delete removes the record at the given content address.
// Absent addresses yield domain.ErrNotFound, which makes deletion
// idempotent-by-content for callers that recompute the address.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return domain.ErrNotFound
	}

	delete(s.byID, id)
	for i, stored := range s.order {
		if stored == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns a snapshot of every stored record in insertion order.
// The returned slice is owned by the caller.
func (s *Store) List(_ context.Context) ([]record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]record.Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

// Count returns the number of stored records.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID), nil
}
