package hotkey

import (
	"fmt"
	"strings"
	"sync"
	"time"

	hook "github.com/robotn/gohook"
	"github.com/rs/zerolog"

	"github.com/TanaroSch/hotkey-listener/internal/keys"
)

// gohookStopTimeout bounds how long UnregisterAll waits for the event loop.
const gohookStopTimeout = 2 * time.Second

// gohookSpecialNames maps keys to gohook key names where the name cannot be
// derived from the key itself.
var gohookSpecialNames = map[keys.Key]string{
	keys.ControlLeft:  "ctrl",
	keys.ControlRight: "rctrl",
	keys.ShiftLeft:    "shift",
	keys.ShiftRight:   "rshift",
	keys.AltLeft:      "alt",
	keys.AltRight:     "ralt",
	keys.MetaLeft:     "cmd",
	keys.MetaRight:    "rcmd",
	keys.Space:        "space",
	keys.Enter:        "enter",
	keys.Tab:          "tab",
	keys.Escape:       "esc",
	keys.Backspace:    "backspace",
	keys.Delete:       "delete",
	keys.Insert:       "insert",
	keys.Home:         "home",
	keys.End:          "end",
	keys.PageUp:       "pageup",
	keys.PageDown:     "pagedown",
	keys.ArrowUp:      "up",
	keys.ArrowDown:    "down",
	keys.ArrowLeft:    "left",
	keys.ArrowRight:   "right",
	keys.CapsLock:     "capslock",
	keys.Minus:        "-",
	keys.Equal:        "=",
	keys.BracketLeft:  "[",
	keys.BracketRight: "]",
	keys.Backslash:    "\\",
	keys.Semicolon:    ";",
	keys.Quote:        "'",
	keys.Backquote:    "`",
	keys.Comma:        ",",
	keys.Period:       ".",
	keys.Slash:        "/",
}

// gohookName returns the gohook key name for k, or "" if there is none.
func gohookName(k keys.Key) string {
	if name, ok := gohookSpecialNames[k]; ok {
		return name
	}
	name := k.String()
	switch {
	case k >= keys.KeyA && k <= keys.KeyZ:
		return strings.ToLower(strings.TrimPrefix(name, "Key"))
	case k >= keys.Digit0 && k <= keys.Digit9:
		return strings.TrimPrefix(name, "Digit")
	case k >= keys.F1 && k <= keys.F24:
		return strings.ToLower(name)
	}
	return ""
}

// GohookBackend watches raw key presses through libuiohook via
// github.com/robotn/gohook. It works on Windows, macOS and X11.
//
// gohook keeps a single process-wide event hook, so only one GohookBackend
// should be active at a time.
type GohookBackend struct {
	mu      sync.Mutex
	hooks   *hookTable
	codes   map[uint16]keys.Key
	running bool
	done    chan struct{}
	ds      DisplayServer
	logger  zerolog.Logger
}

// NewGohookBackend creates a gohook backend. The global hook starts with the
// first Register.
func NewGohookBackend(logger zerolog.Logger) *GohookBackend {
	return &GohookBackend{
		hooks:  newHookTable(),
		codes:  make(map[uint16]keys.Key),
		ds:     DetectDisplayServer(),
		logger: logger.With().Str("backend", "gohook").Logger(),
	}
}

// Name returns the name of this backend.
func (b *GohookBackend) Name() string {
	return "gohook (libuiohook)"
}

// IsAvailable reports whether gohook can see global key events here.
func (b *GohookBackend) IsAvailable() bool {
	switch b.ds {
	case DisplayServerWindows, DisplayServerX11, DisplayServerDarwin:
		return true
	default:
		return false
	}
}

// Register installs a press hook for key.
func (b *GohookBackend) Register(key keys.Key) (RegisteredHotkey, error) {
	name := gohookName(key)
	code, ok := hook.Keycode[name]
	if name == "" || !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKey, key)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	h, err := b.hooks.add(key, func(h *keyHook) error {
		b.mu.Lock()
		delete(b.codes, code)
		b.mu.Unlock()
		b.logger.Debug().Stringer("key", h.key).Msg("unregistered key")
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, key)
	}
	b.codes[code] = key
	b.startLocked()

	b.logger.Debug().Stringer("key", key).Str("gohook_name", name).Msg("registered key")
	return h, nil
}

// Unregister removes the hook for key.
func (b *GohookBackend) Unregister(key keys.Key) error {
	h, ok := b.hooks.get(key)
	if !ok {
		return nil
	}
	return h.Close()
}

// UnregisterAll closes every hook and stops the global event hook.
func (b *GohookBackend) UnregisterAll() error {
	err := b.hooks.closeAll()

	b.mu.Lock()
	running, done := b.running, b.done
	b.running = false
	b.mu.Unlock()

	if !running {
		return err
	}

	hook.End()
	select {
	case <-done:
		b.logger.Debug().Msg("event loop finished")
	case <-time.After(gohookStopTimeout):
		b.logger.Warn().Msg("timeout waiting for gohook event loop to finish")
	}
	return err
}

func (b *GohookBackend) startLocked() {
	if b.running {
		return
	}
	events := hook.Start()
	b.done = make(chan struct{})
	b.running = true

	go b.process(events, b.done)
	b.logger.Debug().Msg("event loop started")
}

// process dispatches raw presses until the event channel closes.
func (b *GohookBackend) process(events chan hook.Event, done chan struct{}) {
	defer close(done)
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().Interface("panic", r).Msg("recovered from panic in gohook event loop")
		}
	}()

	for ev := range events {
		// KeyHold is libuiohook's raw key-pressed event, repeats included.
		// KeyDown is the typed-character event and is not used.
		if ev.Kind != hook.KeyHold {
			continue
		}
		b.mu.Lock()
		key, ok := b.codes[ev.Keycode]
		b.mu.Unlock()
		if ok {
			b.hooks.dispatch(key)
		}
	}
}
