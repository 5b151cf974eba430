package store

import (
	"context"
	"maps"
)

// MemoryStore keeps the document in memory. Used by tests and by dry runs
// that must not touch the data directory.
type MemoryStore struct {
	doc   Document
	saves int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{doc: Document{}}
}

// Load returns a copy of the current document.
func (s *MemoryStore) Load(ctx context.Context) (Document, error) {
	out := Document{}
	maps.Copy(out, s.doc)
	return out, nil
}

// Save replaces the current document.
func (s *MemoryStore) Save(ctx context.Context, doc Document) error {
	s.doc = Document{}
	maps.Copy(s.doc, doc)
	s.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (s *MemoryStore) Saves() int { return s.saves }

var _ Store = (*MemoryStore)(nil)
