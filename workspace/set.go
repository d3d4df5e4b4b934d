// Package workspace tracks the items placed into the user's grid and how that
// grid is arranged on screen.
package workspace

import "github.com/grovetools/deck/catalog"

// Set is an ordered collection of catalog items, unique by id. Sets are
// immutable: Add, Remove and Clear return a new Set and leave the receiver
// untouched. Version increases on every change so observers can compare it
// instead of the contents.
type Set struct {
	items   []catalog.Item
	version uint64
}

// Add appends item unless a member already has its id.
func (s Set) Add(item catalog.Item) Set {
	if s.Contains(item.ID) {
		return s
	}
	items := make([]catalog.Item, len(s.items), len(s.items)+1)
	copy(items, s.items)
	return Set{items: append(items, item), version: s.version + 1}
}

// Remove drops the member with id. Removing a missing id is a no-op.
func (s Set) Remove(id string) Set {
	idx := s.indexOf(id)
	if idx < 0 {
		return s
	}
	items := make([]catalog.Item, 0, len(s.items)-1)
	items = append(items, s.items[:idx]...)
	items = append(items, s.items[idx+1:]...)
	return Set{items: items, version: s.version + 1}
}

// Clear empties the set.
func (s Set) Clear() Set {
	if len(s.items) == 0 {
		return s
	}
	return Set{version: s.version + 1}
}

// Contains reports whether a member has id.
func (s Set) Contains(id string) bool {
	return s.indexOf(id) >= 0
}

func (s Set) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Items returns the members in insertion order.
func (s Set) Items() []catalog.Item {
	out := make([]catalog.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len is the number of members.
func (s Set) Len() int {
	return len(s.items)
}

// Empty reports whether the set has no members.
func (s Set) Empty() bool {
	return len(s.items) == 0
}

// Version identifies this revision of the set.
func (s Set) Version() uint64 {
	return s.version
}
