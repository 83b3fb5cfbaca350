//go:build !linux

package hotkey

import (
	"github.com/rs/zerolog"

	"github.com/TanaroSch/hotkey-listener/internal/keys"
)

// EvdevBackend is unavailable outside Linux.
type EvdevBackend struct{}

// NewEvdevBackend always fails outside Linux.
func NewEvdevBackend(zerolog.Logger) (*EvdevBackend, error) {
	return nil, ErrBackendNotAvailable
}

func (b *EvdevBackend) Name() string      { return "evdev (unsupported)" }
func (b *EvdevBackend) IsAvailable() bool { return false }

func (b *EvdevBackend) Register(keys.Key) (RegisteredHotkey, error) {
	return nil, ErrBackendNotAvailable
}

func (b *EvdevBackend) Unregister(keys.Key) error { return nil }
func (b *EvdevBackend) UnregisterAll() error      { return nil }

func evdevSupports(keys.Key) bool { return false }
