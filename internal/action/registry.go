package action

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/TanaroSch/hotkey-listener/internal/keys"
)

var (
	// ErrDuplicateAction is returned when the same name is registered twice
	// for the same key set.
	ErrDuplicateAction = errors.New("action already registered for this key set")
	// ErrActionNotFound is returned when no action matches a name and key set.
	ErrActionNotFound = errors.New("action not found")
	// ErrEmptyKeySet is returned when an action has no keys.
	ErrEmptyKeySet = errors.New("action has no keys")
	// ErrEmptyName is returned when an action has no name.
	ErrEmptyName = errors.New("action name is empty")
)

// bucket groups the actions sharing one key set.
type bucket struct {
	keys    keys.Set
	actions map[string]*Action
}

// Registry owns every registered action. It keeps a bucket per key set for
// duplicate detection and a reverse index from each key to the actions that
// reference it, in registration order.
//
// Registry is not safe for concurrent use.
type Registry struct {
	buckets map[string]*bucket
	reverse map[keys.Key][]*Action
	count   int
	now     func() time.Time
}

// NewRegistry creates an empty registry. now supplies the creation time used
// for initial key timestamps; nil means time.Now.
func NewRegistry(now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{
		buckets: make(map[string]*bucket),
		reverse: make(map[keys.Key][]*Action),
		now:     now,
	}
}

// Register creates and stores an action named name over set.
func (r *Registry) Register(name string, set keys.Set) (*Action, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if set.Len() == 0 {
		return nil, ErrEmptyKeySet
	}

	b, ok := r.buckets[set.ID()]
	if ok {
		if _, exists := b.actions[name]; exists {
			return nil, fmt.Errorf("%w: %q over %s", ErrDuplicateAction, name, set)
		}
	} else {
		b = &bucket{keys: set, actions: make(map[string]*Action)}
		r.buckets[set.ID()] = b
	}

	a := newAction(name, set, r.now())
	b.actions[name] = a
	for _, k := range set.Keys() {
		r.reverse[k] = append(r.reverse[k], a)
	}
	r.count++
	return a, nil
}

// KeysFirstSeen returns the keys of set that no registered action references
// yet. Only these need a new hook.
func (r *Registry) KeysFirstSeen(set keys.Set) []keys.Key {
	var fresh []keys.Key
	for _, k := range set.Keys() {
		if _, ok := r.reverse[k]; !ok {
			fresh = append(fresh, k)
		}
	}
	return fresh
}

// ActionsFor returns the actions referencing k. Unknown keys yield nil.
// The returned slice must not be modified.
func (r *Registry) ActionsFor(k keys.Key) []*Action {
	return r.reverse[k]
}

// Lookup returns the action named name over set.
func (r *Registry) Lookup(name string, set keys.Set) (*Action, bool) {
	b, ok := r.buckets[set.ID()]
	if !ok {
		return nil, false
	}
	a, ok := b.actions[name]
	return a, ok
}

// KeysReleasedBy returns the keys that would lose their last reference if the
// action were unregistered, without changing the registry.
func (r *Registry) KeysReleasedBy(name string, set keys.Set) ([]keys.Key, error) {
	if _, ok := r.Lookup(name, set); !ok {
		return nil, fmt.Errorf("%w: %q over %s", ErrActionNotFound, name, set)
	}
	var released []keys.Key
	for _, k := range set.Keys() {
		if len(r.reverse[k]) == 1 {
			released = append(released, k)
		}
	}
	return released, nil
}

// Unregister removes the action and returns the keys no longer referenced by
// any action. Their reverse index entries are gone when it returns.
func (r *Registry) Unregister(name string, set keys.Set) ([]keys.Key, error) {
	a, ok := r.Lookup(name, set)
	if !ok {
		return nil, fmt.Errorf("%w: %q over %s", ErrActionNotFound, name, set)
	}

	b := r.buckets[set.ID()]
	delete(b.actions, name)
	if len(b.actions) == 0 {
		delete(r.buckets, set.ID())
	}

	var released []keys.Key
	for _, k := range set.Keys() {
		remaining := slices.DeleteFunc(r.reverse[k], func(other *Action) bool {
			return other == a
		})
		if len(remaining) == 0 {
			delete(r.reverse, k)
			released = append(released, k)
			continue
		}
		r.reverse[k] = remaining
	}
	r.count--
	return released, nil
}

// Len returns the number of registered actions.
func (r *Registry) Len() int { return r.count }

// Keys returns every referenced key in ascending order.
func (r *Registry) Keys() []keys.Key {
	out := make([]keys.Key, 0, len(r.reverse))
	for k := range r.reverse {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Actions returns every action ordered by key set ID, then name.
func (r *Registry) Actions() []*Action {
	out := make([]*Action, 0, r.count)
	for _, b := range r.buckets {
		for _, a := range b.actions {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(x, y *Action) int {
		if c := cmp.Compare(x.keys.ID(), y.keys.ID()); c != 0 {
			return c
		}
		return cmp.Compare(x.name, y.name)
	})
	return out
}
