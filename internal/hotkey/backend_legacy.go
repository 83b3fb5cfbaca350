package hotkey

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.design/x/hotkey"

	"github.com/TanaroSch/hotkey-listener/internal/keys"
)

// LegacyBackend wraps the golang.design/x/hotkey library.
// This backend supports Windows, macOS, and X11 on Linux.
// It does NOT support Wayland, and it cannot watch bare modifier keys.
type LegacyBackend struct {
	mu             sync.RWMutex
	registeredKeys map[keys.Key]*legacyHotkey
	displayServer  DisplayServer
	logger         zerolog.Logger
}

// NewLegacyBackend creates a new legacy backend using golang.design/x/hotkey.
func NewLegacyBackend(logger zerolog.Logger) *LegacyBackend {
	logger = logger.With().Str("backend", "legacy").Logger()
	ds := DetectDisplayServer()
	logger.Debug().Stringer("display_server", ds).Msg("detected display server")

	return &LegacyBackend{
		registeredKeys: make(map[keys.Key]*legacyHotkey),
		displayServer:  ds,
		logger:         logger,
	}
}

// Name returns the name of this backend.
func (b *LegacyBackend) Name() string {
	return "Legacy (golang.design/x/hotkey)"
}

// IsAvailable checks if this backend can be used on the current system.
func (b *LegacyBackend) IsAvailable() bool {
	switch b.displayServer {
	case DisplayServerWindows, DisplayServerX11, DisplayServerDarwin:
		return true
	case DisplayServerWayland:
		b.logger.Debug().Msg("not available on Wayland")
		return false
	default:
		b.logger.Debug().Msg("unknown display server, assuming unavailable")
		return false
	}
}

// Register grabs key with every lock-modifier variant and merges their
// events into one hook.
func (b *LegacyBackend) Register(key keys.Key) (RegisteredHotkey, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.registeredKeys[key]; exists {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRegistered, key)
	}

	native, ok := legacyKeyMap[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKey, key)
	}

	wrapped := &legacyHotkey{
		key:       key,
		keydownCh: make(chan struct{}, keydownBuffer),
		stopCh:    make(chan struct{}),
		logger:    b.logger,
		owner:     b,
	}

	for _, mods := range expandModifiers(nil) {
		hk := hotkey.New(mods, native)
		if err := hk.Register(); err != nil {
			// Some variants are rejected when a lock key is not mapped;
			// the plain grab is the one that must succeed.
			if len(mods) == 0 {
				wrapped.unregisterVariants()
				return nil, fmt.Errorf("failed to register key %s: %w", key, err)
			}
			b.logger.Debug().Err(err).Stringer("key", key).Msg("lock variant not grabbed")
			continue
		}
		wrapped.variants = append(wrapped.variants, hk)
	}

	wrapped.startEventConverter()

	b.registeredKeys[key] = wrapped
	b.logger.Debug().Stringer("key", key).Int("variants", len(wrapped.variants)).Msg("registered key")

	return wrapped, nil
}

// Unregister removes a single key hook.
func (b *LegacyBackend) Unregister(key keys.Key) error {
	b.mu.RLock()
	hk, exists := b.registeredKeys[key]
	b.mu.RUnlock()
	if !exists {
		b.logger.Debug().Stringer("key", key).Msg("key not found for unregister")
		return nil
	}
	return hk.Close()
}

// UnregisterAll removes all registered hooks.
func (b *LegacyBackend) UnregisterAll() error {
	b.mu.Lock()
	hooks := make([]*legacyHotkey, 0, len(b.registeredKeys))
	for _, hk := range b.registeredKeys {
		hooks = append(hooks, hk)
	}
	b.mu.Unlock()

	b.logger.Debug().Int("count", len(hooks)).Msg("unregistering all keys")

	var errs []error
	for _, hk := range hooks {
		if err := hk.Close(); err != nil {
			b.logger.Warn().Err(err).Stringer("key", hk.key).Msg("error unregistering key")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *LegacyBackend) forget(lh *legacyHotkey) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.registeredKeys[lh.key] == lh {
		delete(b.registeredKeys, lh.key)
	}
}

// legacyHotkey merges the grabs of one key into a RegisteredHotkey.
type legacyHotkey struct {
	key       keys.Key
	variants  []*hotkey.Hotkey
	keydownCh chan struct{}
	stopCh    chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	logger    zerolog.Logger
	owner     *LegacyBackend
}

func (lh *legacyHotkey) Key() keys.Key { return lh.key }

// Keydown returns the channel that receives keydown events.
func (lh *legacyHotkey) Keydown() <-chan struct{} {
	return lh.keydownCh
}

// startEventConverter forwards every variant's hotkey.Event channel into
// keydownCh. keydownCh is closed once all converters have stopped.
func (lh *legacyHotkey) startEventConverter() {
	for _, hk := range lh.variants {
		lh.wg.Add(1)
		go func(events <-chan hotkey.Event) {
			defer lh.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					lh.logger.Error().Interface("panic", r).Stringer("key", lh.key).Msg("recovered from panic in key converter")
				}
			}()

			for {
				select {
				case <-lh.stopCh:
					return
				case <-events:
					select {
					case lh.keydownCh <- struct{}{}:
					case <-lh.stopCh:
						return
					default:
						lh.logger.Debug().Stringer("key", lh.key).Msg("keydown buffer full, press dropped")
					}
				}
			}
		}(hk.Keydown())
	}

	go func() {
		lh.wg.Wait()
		close(lh.keydownCh)
	}()
}

func (lh *legacyHotkey) unregisterVariants() error {
	var errs []error
	for _, hk := range lh.variants {
		if err := hk.Unregister(); err != nil {
			errs = append(errs, err)
		}
	}
	lh.variants = nil
	return errors.Join(errs...)
}

// Close unregisters every grab of the key and stops the converters.
func (lh *legacyHotkey) Close() error {
	var err error
	lh.closeOnce.Do(func() {
		close(lh.stopCh)
		if uerr := lh.unregisterVariants(); uerr != nil {
			err = fmt.Errorf("failed to unregister key %s: %w", lh.key, uerr)
		}
		lh.owner.forget(lh)
		lh.logger.Debug().Stringer("key", lh.key).Msg("unregistered key")
	})
	return err
}
