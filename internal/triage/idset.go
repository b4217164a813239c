package triage

import (
	"slices"

	"github.com/samber/lo"
)

// IDSet is a set of message or sender identifiers. It backs the starred
// and trashed collections as well as toggle-based selections.
//
// The zero value is an empty set ready to use.
type IDSet struct {
	ids map[string]struct{}
}

// NewIDSet returns a set holding the given ids.
func NewIDSet(ids ...string) IDSet {
	s := IDSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is in the set.
func (s IDSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of ids in the set.
func (s IDSet) Len() int {
	return len(s.ids)
}

// Add inserts id into the set.
func (s *IDSet) Add(id string) {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	s.ids[id] = struct{}{}
}

// Remove deletes id from the set. Removing an absent id is a no-op.
func (s *IDSet) Remove(id string) {
	delete(s.ids, id)
}

// Toggle removes id when present and adds it otherwise. It returns true
// when id is selected after the call.
func (s *IDSet) Toggle(id string) bool {
	if s.Contains(id) {
		s.Remove(id)
		return false
	}
	s.Add(id)
	return true
}

// IDs returns the members in sorted order.
func (s IDSet) IDs() []string {
	ids := lo.Keys(s.ids)
	slices.Sort(ids)
	return ids
}

// Clone returns an independent copy of the set.
func (s IDSet) Clone() IDSet {
	return NewIDSet(lo.Keys(s.ids)...)
}

// Equal reports whether both sets hold the same ids.
func (s IDSet) Equal(other IDSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for id := range s.ids {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}
