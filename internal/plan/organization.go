package plan

import (
	"sync"
	"sync/atomic"

	"github.com/jonathan/wbl-planner/internal/types"
)

// ProfileStore holds the single OrganizationData record of a session.
type ProfileStore struct {
	mu      sync.Mutex
	current atomic.Pointer[types.OrganizationData]
}

// NewProfileStore creates a store holding an empty profile.
func NewProfileStore() *ProfileStore {
	s := &ProfileStore{}
	s.current.Store(&types.OrganizationData{})
	return s
}

// Snapshot returns the current profile by value.
func (s *ProfileStore) Snapshot() types.OrganizationData {
	return *s.current.Load()
}

// UpdateField overwrites exactly one field. It reports false, and changes nothing,
// for an unknown field name.
func (s *ProfileStore) UpdateField(field types.OrgField, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.current.Load().With(field, value)
	if !ok {
		return false
	}
	s.current.Store(&next)
	return true
}

// IsComplete evaluates the required-field predicate against the current profile.
func (s *ProfileStore) IsComplete() bool {
	return s.current.Load().IsComplete()
}

// Replace swaps in a whole profile, as when a plan document is imported.
func (s *ProfileStore) Replace(org types.OrganizationData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Store(&org)
}
