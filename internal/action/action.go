// Package action holds registered actions and the indices used to match
// key presses against them.
package action

import (
	"time"

	"github.com/TanaroSch/hotkey-listener/internal/keys"
)

// StaleMargin is how far in the past key timestamps start, so a fresh
// action cannot be pressed until real events arrive.
const StaleMargin = 60 * time.Second

// State is the pressed state of an action, derived from its key timestamps.
type State int

const (
	// Stale means no key of the action is inside the window.
	Stale State = iota
	// PartiallyPressed means some but not all keys are inside the window.
	PartiallyPressed
	// Pressed means every key is inside the window.
	Pressed
)

func (s State) String() string {
	switch s {
	case Stale:
		return "stale"
	case PartiallyPressed:
		return "partially-pressed"
	case Pressed:
		return "pressed"
	default:
		return "unknown"
	}
}

// Action is a named key set with the last press time of every key.
// It is not safe for concurrent use; the Registry owner serialises access.
type Action struct {
	name      string
	keys      keys.Set
	lastPress map[keys.Key]time.Time
}

func newAction(name string, set keys.Set, now time.Time) *Action {
	a := &Action{
		name:      name,
		keys:      set,
		lastPress: make(map[keys.Key]time.Time, set.Len()),
	}
	stale := now.Add(-StaleMargin)
	for _, k := range set.Keys() {
		a.lastPress[k] = stale
	}
	return a
}

// Name returns the action name.
func (a *Action) Name() string { return a.name }

// Keys returns the action's key set.
func (a *Action) Keys() keys.Set { return a.keys }

// LastPress returns the recorded press time for k.
func (a *Action) LastPress(k keys.Key) (time.Time, bool) {
	t, ok := a.lastPress[k]
	return t, ok
}

// Press records a press of k at now. Keys outside the set are ignored.
func (a *Action) Press(k keys.Key, now time.Time) {
	if _, ok := a.lastPress[k]; ok {
		a.lastPress[k] = now
	}
}

// IsPressed reports whether every key was pressed less than window before now.
func (a *Action) IsPressed(now time.Time, window time.Duration) bool {
	for _, t := range a.lastPress {
		if now.Sub(t) >= window {
			return false
		}
	}
	return true
}

// State classifies the action at now.
func (a *Action) State(now time.Time, window time.Duration) State {
	fresh := 0
	for _, t := range a.lastPress {
		if now.Sub(t) < window {
			fresh++
		}
	}
	switch fresh {
	case 0:
		return Stale
	case len(a.lastPress):
		return Pressed
	default:
		return PartiallyPressed
	}
}
