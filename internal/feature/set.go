package feature

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Set is a resolved feature set: closed under implication and free of
// conflicts. The resolver is the only producer of valid Sets; downstream
// consumers treat a Set as read-only.
type Set struct {
	members map[ID]struct{}
	order   []ID
}

// NewSet builds a Set from the given flags. Duplicates are collapsed and
// the iteration order is lexicographic, so two Sets with the same members
// are indistinguishable regardless of insertion order.
func NewSet(ids ...ID) *Set {
	s := &Set{members: make(map[ID]struct{}, len(ids))}
	for _, id := range ids {
		if _, ok := s.members[id]; ok {
			continue
		}
		s.members[id] = struct{}{}
		s.order = append(s.order, id)
	}
	sort.Slice(s.order, func(i, j int) bool { return s.order[i] < s.order[j] })
	return s
}

// Has reports whether the set contains the given flag.
func (s *Set) Has(id ID) bool {
	_, ok := s.members[id]
	return ok
}

// Len returns the number of flags in the set.
func (s *Set) Len() int {
	return len(s.order)
}

// IDs returns the members in lexicographic order.
func (s *Set) IDs() []ID {
	return append([]ID(nil), s.order...)
}

// Fingerprint returns a stable hash over the sorted set content. Two
// identical sets always fingerprint identically; downstream artifacts
// are keyed by this value.
func (s *Set) Fingerprint() string {
	var b strings.Builder
	for _, id := range s.order {
		b.WriteString(string(id))
		b.WriteByte('\n')
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(b.String()))
}

// String renders the set for logs and error messages.
func (s *Set) String() string {
	parts := make([]string, len(s.order))
	for i, id := range s.order {
		parts[i] = string(id)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
