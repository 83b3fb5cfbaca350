package keys

import (
	"errors"
	"slices"
	"strings"
)

// ErrEmptySet is returned when a key set has no keys.
var ErrEmptySet = errors.New("key set is empty")

// Set is an immutable, sorted, de-duplicated collection of keys.
// Two sets built from the same keys in any order are equal and share an ID.
type Set struct {
	keys []Key
	id   string
}

// NewSet builds the canonical set for the given keys.
func NewSet(ks ...Key) Set {
	sorted := slices.Clone(ks)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	parts := make([]string, len(sorted))
	for i, k := range sorted {
		parts[i] = k.String()
	}
	return Set{keys: sorted, id: strings.Join(parts, "+")}
}

// ParseAll parses every name and returns their canonical set.
// It fails on the first unknown name or when names is empty.
func ParseAll(names []string) (Set, error) {
	if len(names) == 0 {
		return Set{}, ErrEmptySet
	}
	ks := make([]Key, 0, len(names))
	for _, name := range names {
		k, err := Parse(name)
		if err != nil {
			return Set{}, err
		}
		ks = append(ks, k)
	}
	return NewSet(ks...), nil
}

// ID returns the structural identity of the set, e.g. "KeyS+ControlLeft"
// ordered by key value.
func (s Set) ID() string { return s.id }

// Keys returns a copy of the keys in ascending order.
func (s Set) Keys() []Key { return slices.Clone(s.keys) }

// Len returns the number of distinct keys.
func (s Set) Len() int { return len(s.keys) }

// Contains reports whether k is in the set.
func (s Set) Contains(k Key) bool {
	_, found := slices.BinarySearch(s.keys, k)
	return found
}

// Equal reports whether both sets hold the same keys.
func (s Set) Equal(other Set) bool { return s.id == other.id }

// Names returns the canonical key names in set order.
func (s Set) Names() []string {
	out := make([]string, len(s.keys))
	for i, k := range s.keys {
		out[i] = k.String()
	}
	return out
}

func (s Set) String() string { return s.id }
