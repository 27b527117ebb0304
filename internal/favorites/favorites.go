// Package favorites owns the user's set of favorited issue numbers and keeps
// it durable in a kv.Store.
package favorites

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/five82/issuedeck/internal/github"
	"github.com/five82/issuedeck/internal/kv"
	"github.com/five82/issuedeck/internal/logging"
)

// StorageKey is the kv key holding the serialized favorites list.
const StorageKey = "favorites"

// Set is an immutable view of favorited issue numbers.
type Set map[int64]struct{}

// Contains reports whether id is in the set. A nil Set contains nothing.
func (s Set) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of favorites.
func (s Set) Len() int {
	return len(s)
}

// Store is the favorites set plus its persistence boundary: loaded once at
// construction, written after every mutation.
type Store struct {
	mu      sync.RWMutex
	ids     []int64 // insertion order, mirrors the persisted list
	members Set
	kv      kv.Store
	log     *logging.Logger
}

// Load rehydrates the store from backing. Missing or unparsable data
// yields an empty set; the problem is only logged.
func Load(backing kv.Store, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Store{members: Set{}, kv: backing, log: logger}
	if backing == nil {
		return s
	}

	raw, ok, err := backing.Get(StorageKey)
	switch {
	case err != nil:
		logger.Debug("favorites unreadable, starting empty", "err", err)
		return s
	case !ok || raw == "":
		return s
	}

	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		logger.Debug("favorites corrupt, starting empty", "err", err)
		return s
	}
	for _, id := range ids {
		if s.members.Contains(id) {
			continue
		}
		s.members[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	logger.Debug("favorites loaded", "count", len(s.ids))
	return s
}

// Toggle adds id when absent and removes it when present, then persists the
// new list. A persistence error is returned but the in-memory change stands.
func (s *Store) Toggle(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.members.Contains(id) {
		delete(s.members, id)
		s.ids = slices.DeleteFunc(s.ids, func(v int64) bool { return v == id })
	} else {
		s.members[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	// Written under the lock so concurrent toggles reach storage in order.
	return s.persist(s.ids)
}

// IsFavorite reports whether id is favorited.
func (s *Store) IsFavorite(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.members.Contains(id)
}

// Snapshot returns a copy of the current set.
func (s *Store) Snapshot() Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dup := make(Set, len(s.members))
	for id := range s.members {
		dup[id] = struct{}{}
	}
	return dup
}

// IDs returns the favorites in the order they were added.
func (s *Store) IDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ids)
}

// Reconcile stamps every issue's Favorite flag from current membership.
func (s *Store) Reconcile(issues []github.Issue) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	Stamp(issues, s.members)
}

// Stamp sets issues[i].Favorite = set.Contains(issues[i].Number) in place.
func Stamp(issues []github.Issue, set Set) {
	for i := range issues {
		issues[i].Favorite = set.Contains(issues[i].Number)
	}
}

func (s *Store) persist(ids []int64) error {
	if s.kv == nil {
		return nil
	}
	if ids == nil {
		ids = []int64{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal favorites: %w", err)
	}
	if err := s.kv.Set(StorageKey, string(raw)); err != nil {
		return fmt.Errorf("persist favorites: %w", err)
	}
	return nil
}
