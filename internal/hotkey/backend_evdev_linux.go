//go:build linux

package hotkey

import (
	"errors"
	"fmt"
	"os"
	"sync"

	evdev "github.com/holoplot/go-evdev"
	"github.com/rs/zerolog"

	"github.com/TanaroSch/hotkey-listener/internal/keys"
)

// Values of an EV_KEY event.
const (
	evdevKeyRelease = 0
	evdevKeyPress   = 1
	evdevKeyRepeat  = 2
)

// EvdevBackend reads key events straight from /dev/input. It is the only
// backend that works under Wayland, and it needs read access to the input
// devices (usually membership of the "input" group).
type EvdevBackend struct {
	mu      sync.Mutex
	hooks   *hookTable
	devices []*evdev.InputDevice
	wg      sync.WaitGroup
	logger  zerolog.Logger
}

// NewEvdevBackend creates an evdev backend. Devices are opened with the first
// Register.
func NewEvdevBackend(logger zerolog.Logger) (*EvdevBackend, error) {
	return &EvdevBackend{
		hooks:  newHookTable(),
		logger: logger.With().Str("backend", "evdev").Logger(),
	}, nil
}

// Name returns the name of this backend.
func (b *EvdevBackend) Name() string {
	return "evdev (/dev/input)"
}

// IsAvailable reports whether at least one keyboard device can be opened.
func (b *EvdevBackend) IsAvailable() bool {
	kbds, err := FindKeyboards()
	if err != nil {
		b.logger.Debug().Err(err).Msg("cannot list input devices")
		return false
	}
	for _, dev := range kbds {
		dev.Close()
	}
	return len(kbds) > 0
}

// FindKeyboards returns every input device that reports both KEY_A and
// KEY_ENTER, which filters out mice, power buttons and similar devices.
func FindKeyboards() ([]*evdev.InputDevice, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("list input devices: %w", err)
	}

	var kbds []*evdev.InputDevice
	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}

		hasA, hasEnter := false, false
		for _, c := range dev.CapableEvents(evdev.EV_KEY) {
			switch c {
			case evdev.KEY_A:
				hasA = true
			case evdev.KEY_ENTER:
				hasEnter = true
			}
		}

		if hasA && hasEnter {
			kbds = append(kbds, dev)
		} else {
			dev.Close()
		}
	}
	return kbds, nil
}

// Register installs a press hook for key.
func (b *EvdevBackend) Register(key keys.Key) (RegisteredHotkey, error) {
	if _, ok := evdevKeyMap[key]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKey, key)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.openLocked(); err != nil {
		return nil, err
	}

	h, err := b.hooks.add(key, func(h *keyHook) error {
		b.logger.Debug().Stringer("key", h.key).Msg("unregistered key")
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, key)
	}
	b.logger.Debug().Stringer("key", key).Msg("registered key")
	return h, nil
}

// Unregister removes the hook for key.
func (b *EvdevBackend) Unregister(key keys.Key) error {
	h, ok := b.hooks.get(key)
	if !ok {
		return nil
	}
	return h.Close()
}

// UnregisterAll closes every hook and releases the input devices.
func (b *EvdevBackend) UnregisterAll() error {
	err := b.hooks.closeAll()

	b.mu.Lock()
	devices := b.devices
	b.devices = nil
	b.mu.Unlock()

	var errs []error
	for _, dev := range devices {
		if cerr := dev.Close(); cerr != nil {
			errs = append(errs, cerr)
		}
	}
	b.wg.Wait()
	return errors.Join(append(errs, err)...)
}

func (b *EvdevBackend) openLocked() error {
	if b.devices != nil {
		return nil
	}
	kbds, err := FindKeyboards()
	if err != nil {
		return err
	}
	if len(kbds) == 0 {
		return fmt.Errorf("%w: no readable keyboard under /dev/input", ErrBackendNotAvailable)
	}

	for _, dev := range kbds {
		name, _ := dev.Name()
		b.logger.Debug().Str("device", name).Msg("monitoring keyboard")
		b.wg.Add(1)
		go b.monitor(dev)
	}
	b.devices = kbds
	return nil
}

// monitor reads one device until it is closed or fails.
func (b *EvdevBackend) monitor(dev *evdev.InputDevice) {
	defer b.wg.Done()
	for {
		ev, err := dev.ReadOne()
		if err != nil {
			if !errors.Is(err, os.ErrClosed) {
				b.logger.Debug().Err(err).Msg("keyboard read stopped")
			}
			return
		}
		if ev.Type != evdev.EV_KEY {
			continue
		}
		if ev.Value != evdevKeyPress && ev.Value != evdevKeyRepeat {
			continue
		}
		if key, ok := evdevCodeMap[ev.Code]; ok {
			b.hooks.dispatch(key)
		}
	}
}
