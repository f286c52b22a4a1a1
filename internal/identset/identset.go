// Package identset holds the ordered, duplicate-free identifier sequence
// every extraction run accumulates into.
package identset

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// Set is an insertion-order-preserving set of non-empty strings.
// The zero value is not usable; call New.
type Set struct {
	seen  mapset.Set[string]
	items []string
}

// New returns an empty Set.
func New() *Set {
	return &Set{seen: mapset.NewThreadUnsafeSet[string]()}
}

// Add appends each item not already present. Empty strings are ignored.
func (s *Set) Add(items ...string) {
	for _, it := range items {
		if it == "" {
			continue
		}
		if s.seen.Add(it) {
			s.items = append(s.items, it)
		}
	}
}

// Contains reports whether item has been added.
func (s *Set) Contains(item string) bool { return s.seen.Contains(item) }

// Len returns the number of unique items.
func (s *Set) Len() int { return len(s.items) }

// Items returns the items in first-seen order.
func (s *Set) Items() []string {
	return append([]string(nil), s.items...)
}

// Sorted returns the items in ascending byte order.
func (s *Set) Sorted() []string {
	out := s.Items()
	sort.Strings(out)
	return out
}

// SortedUnique dedups items and sorts them.
func SortedUnique(items []string) []string {
	s := New()
	s.Add(items...)
	return s.Sorted()
}
