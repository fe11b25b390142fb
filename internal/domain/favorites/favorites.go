// Package favorites models the shopper's wishlist as an ordered set of product ids.
package favorites

import "encoding/json"

// Set is an insertion-ordered set of product ids. Methods never mutate the receiver.
type Set struct {
	ids   []string
	index map[string]struct{}
}

// New builds a set, dropping duplicates and empty ids while keeping first-seen order
func New(ids ...string) Set {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return Set{ids: out, index: seen}
}

// Add inserts id; adding a member again is a no-op
func (s Set) Add(id string) (Set, bool) {
	if id == "" || s.Has(id) {
		return s, false
	}
	ids := make([]string, len(s.ids), len(s.ids)+1)
	copy(ids, s.ids)
	index := make(map[string]struct{}, len(s.ids)+1)
	for _, existing := range s.ids {
		index[existing] = struct{}{}
	}
	index[id] = struct{}{}
	return Set{ids: append(ids, id), index: index}, true
}

// Remove deletes id; removing a non-member is a no-op
func (s Set) Remove(id string) (Set, bool) {
	if !s.Has(id) {
		return s, false
	}
	ids := make([]string, 0, len(s.ids)-1)
	index := make(map[string]struct{}, len(s.ids)-1)
	for _, existing := range s.ids {
		if existing != id {
			ids = append(ids, existing)
			index[existing] = struct{}{}
		}
	}
	return Set{ids: ids, index: index}, true
}

// Toggle removes id when present and adds it otherwise.
// The returned bool is the membership after the toggle.
func (s Set) Toggle(id string) (Set, bool) {
	if s.Has(id) {
		next, _ := s.Remove(id)
		return next, false
	}
	next, _ := s.Add(id)
	return next, next.Has(id)
}

// Has reports membership
func (s Set) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Items returns the members in insertion order
func (s Set) Items() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Count returns the number of distinct members
func (s Set) Count() int {
	return len(s.ids)
}

// MarshalJSON encodes the set as an array of ids
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items())
}

// UnmarshalJSON decodes an id array, normalizing duplicates away
func (s *Set) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = New(ids...)
	return nil
}
