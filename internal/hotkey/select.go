package hotkey

import (
	"fmt"

	hook "github.com/robotn/gohook"
	"github.com/rs/zerolog"

	"github.com/TanaroSch/hotkey-listener/internal/keys"
)

// Backend names accepted by SelectBackend.
const (
	BackendAuto   = "auto"
	BackendGohook = "gohook"
	BackendLegacy = "legacy"
	BackendEvdev  = "evdev"
	BackendScript = "script"
)

// SelectBackend creates the backend called name. "auto" picks one for the
// current display server: gohook on Windows, macOS and X11, evdev on Wayland.
// The script backend needs a source and is built with NewScriptBackend.
func SelectBackend(name string, logger zerolog.Logger) (Backend, error) {
	switch name {
	case BackendGohook:
		return NewGohookBackend(logger), nil
	case BackendLegacy:
		return NewLegacyBackend(logger), nil
	case BackendEvdev:
		return NewEvdevBackend(logger)
	case BackendAuto, "":
		return selectAuto(DetectDisplayServer(), logger)
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

func selectAuto(ds DisplayServer, logger zerolog.Logger) (Backend, error) {
	var backend Backend
	switch ds {
	case DisplayServerWindows, DisplayServerX11, DisplayServerDarwin:
		backend = NewGohookBackend(logger)
	case DisplayServerWayland:
		evdevBackend, err := NewEvdevBackend(logger)
		if err != nil {
			return nil, err
		}
		backend = evdevBackend
	default:
		return nil, fmt.Errorf("%w: display server %s", ErrBackendNotAvailable, ds)
	}

	if !backend.IsAvailable() {
		return nil, fmt.Errorf("%w: %s on %s", ErrBackendNotAvailable, backend.Name(), ds)
	}
	logger.Info().Str("backend", backend.Name()).Stringer("display_server", ds).Msg("selected key backend")
	return backend, nil
}

// SupportedKeys lists the keys the named backend can hook on this platform.
// "auto" resolves to the backend SelectBackend would pick.
func SupportedKeys(name string) ([]keys.Key, error) {
	var supports func(keys.Key) bool
	switch name {
	case BackendAuto, "":
		switch DetectDisplayServer() {
		case DisplayServerWayland:
			return SupportedKeys(BackendEvdev)
		default:
			return SupportedKeys(BackendGohook)
		}
	case BackendGohook:
		supports = func(k keys.Key) bool {
			name := gohookName(k)
			if name == "" {
				return false
			}
			_, ok := hook.Keycode[name]
			return ok
		}
	case BackendLegacy:
		supports = func(k keys.Key) bool {
			_, ok := legacyKeyMap[k]
			return ok
		}
	case BackendEvdev:
		supports = evdevSupports
	case BackendScript:
		return keys.All(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}

	var out []keys.Key
	for _, k := range keys.All() {
		if supports(k) {
			out = append(out, k)
		}
	}
	return out, nil
}
