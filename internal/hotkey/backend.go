// Package hotkey installs global key hooks through interchangeable OS backends.
package hotkey

import (
	"errors"

	"github.com/TanaroSch/hotkey-listener/internal/keys"
)

//go:generate mockgen -source=backend.go -destination=mocks/mock_backend.go

var (
	// ErrBackendNotAvailable is returned when a backend cannot be used on the current system.
	ErrBackendNotAvailable = errors.New("backend not available on this system")
	// ErrUnsupportedKey is returned when a backend has no native code for a key.
	ErrUnsupportedKey = errors.New("key not supported by backend")
	// ErrAlreadyRegistered is returned when a key already has a live hook.
	ErrAlreadyRegistered = errors.New("key already registered")
)

// Backend abstracts the OS facility that watches single physical keys.
// One hook is installed per key; combinations are resolved by the caller.
type Backend interface {
	// Register installs a press hook for key. The returned handle delivers a
	// signal on Keydown for every press, including auto-repeat where the
	// platform reports it.
	Register(key keys.Key) (RegisteredHotkey, error)

	// Unregister removes the hook for key. Unknown keys are not an error.
	Unregister(key keys.Key) error

	// UnregisterAll removes every hook installed by this backend and releases
	// any global resources it holds.
	UnregisterAll() error

	// Name returns a human-readable name for this backend (for logging).
	Name() string

	// IsAvailable returns true if this backend can be used on the current system.
	IsAvailable() bool
}

// RegisteredHotkey is one installed key hook.
type RegisteredHotkey interface {
	// Key returns the key this hook watches.
	Key() keys.Key

	// Keydown returns a channel that receives a value for every press.
	// The channel is closed once the hook is closed.
	Keydown() <-chan struct{}

	// Close uninstalls the hook. Closing twice is a no-op.
	Close() error
}
