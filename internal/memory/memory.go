// Package memory provides an in-memory ClientStore. It backs the throwaway
// "memory" data backend and serves as the test double for everything that
// takes a store.
package memory

import (
	"context"
	"sync"

	"clientes/internal/clients"
	"clientes/internal/core"
)

type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.ClientRecord
}

func New() *Store {
	return &Store{}
}

// List returns a copy of all records in insertion order.
func (s *Store) List(_ context.Context) ([]core.ClientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.ClientRecord(nil), s.items...), nil
}

func (s *Store) Get(_ context.Context, id int64) (core.ClientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.items {
		if rec.ID == id {
			return rec, nil
		}
	}
	return core.ClientRecord{}, clients.ErrNotFound
}

// Add assigns a fresh id and stores the record.
func (s *Store) Add(_ context.Context, rec core.ClientRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	rec.ID = s.nextID
	s.items = append(s.items, rec)
	return rec.ID, nil
}

// Update replaces the record with the matching id; a missing id is a no-op.
func (s *Store) Update(_ context.Context, id int64, rec core.ClientRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			rec.ID = id
			s.items[i] = rec
			return nil
		}
	}
	return nil
}

func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return nil
}

// BulkAdd inserts records in one pass. Records carrying an explicit id keep
// it; the rest receive fresh ones.
func (s *Store) BulkAdd(_ context.Context, recs []core.ClientRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range recs {
		if rec.ID > 0 {
			if rec.ID > s.nextID {
				s.nextID = rec.ID
			}
		} else {
			s.nextID++
			rec.ID = s.nextID
		}
		s.items = append(s.items, rec)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}
