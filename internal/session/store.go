package session

import (
	"iter"
	"maps"

	"github.com/bjulian5/ghprs/internal/model"
)

// Store is the in-memory map of tracked PRs for one session, keyed by PR id.
// It has no locking or refresh logic; Session serializes access to it.
type Store struct {
	prs map[string]model.TrackedPR
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{prs: make(map[string]model.TrackedPR)}
}

// newStoreFrom creates a store holding a copy of prs, rekeyed by PR id
func newStoreFrom(prs map[string]model.TrackedPR) *Store {
	s := NewStore()
	for _, tracked := range prs {
		s.Upsert(tracked)
	}
	return s
}

func (s *Store) Get(id string) (model.TrackedPR, bool) {
	tracked, ok := s.prs[id]
	return tracked, ok
}

// Upsert inserts or replaces the tracked PR under its own id
func (s *Store) Upsert(tracked model.TrackedPR) {
	s.prs[tracked.PR.ID] = tracked
}

func (s *Store) Remove(id string) {
	delete(s.prs, id)
}

// Keys returns the ids currently held by the store
func (s *Store) Keys() iter.Seq[string] {
	return maps.Keys(s.prs)
}

// Filtered yields every PR whose acknowledgement flag equals acknowledged.
// Iteration order is unspecified.
func (s *Store) Filtered(acknowledged bool) iter.Seq[model.PR] {
	return func(yield func(model.PR) bool) {
		for _, tracked := range s.prs {
			if tracked.Acknowledged != acknowledged {
				continue
			}
			if !yield(tracked.PR) {
				return
			}
		}
	}
}

func (s *Store) Len() int {
	return len(s.prs)
}

// Clear drops every tracked PR
func (s *Store) Clear() {
	clear(s.prs)
}

// Snapshot returns a copy of the underlying map, safe to hand to persistence
func (s *Store) Snapshot() map[string]model.TrackedPR {
	return maps.Clone(s.prs)
}
