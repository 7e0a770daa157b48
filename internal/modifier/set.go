package modifier

import (
	"sort"
	"strings"
)

// Set is the exclusion set attached to a scope of content: either every
// modifier is excluded, an explicit subset is, or none is.
// The zero value excludes nothing. Sets are values; Union never mutates
// its operands.
type Set struct {
	all bool
	ids map[ID]struct{}
}

// None returns the empty exclusion set.
func None() Set {
	return Set{}
}

// All returns the set that excludes every modifier.
func All() Set {
	return Set{all: true}
}

// Of returns a set excluding exactly the given identifiers.
func Of(ids ...ID) Set {
	if len(ids) == 0 {
		return Set{}
	}
	m := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return Set{ids: m}
}

// IsAll reports whether the set excludes every modifier.
func (s Set) IsAll() bool {
	return s.all
}

// IsNone reports whether the set excludes nothing.
func (s Set) IsNone() bool {
	return !s.all && len(s.ids) == 0
}

// Contains reports whether id is excluded by s.
func (s Set) Contains(id ID) bool {
	if s.all {
		return true
	}
	_, ok := s.ids[id]
	return ok
}

// Union returns the set excluding everything excluded by s or other.
// Once either side is All the result is All.
func (s Set) Union(other Set) Set {
	if s.all || other.all {
		return All()
	}
	if len(other.ids) == 0 {
		return s
	}
	if len(s.ids) == 0 {
		return other
	}
	m := make(map[ID]struct{}, len(s.ids)+len(other.ids))
	for id := range s.ids {
		m[id] = struct{}{}
	}
	for id := range other.ids {
		m[id] = struct{}{}
	}
	return Set{ids: m}
}

// String renders the set for logs and test failures.
func (s Set) String() string {
	switch {
	case s.all:
		return "{all}"
	case len(s.ids) == 0:
		return "{}"
	}
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	return "{" + strings.Join(ids, ", ") + "}"
}
