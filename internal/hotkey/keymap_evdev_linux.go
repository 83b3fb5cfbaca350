//go:build linux

package hotkey

import (
	evdev "github.com/holoplot/go-evdev"

	"github.com/TanaroSch/hotkey-listener/internal/keys"
)

// evdevKeyMap maps keys to Linux input event codes.
var evdevKeyMap = map[keys.Key]evdev.EvCode{
	keys.KeyA: evdev.KEY_A, keys.KeyB: evdev.KEY_B, keys.KeyC: evdev.KEY_C,
	keys.KeyD: evdev.KEY_D, keys.KeyE: evdev.KEY_E, keys.KeyF: evdev.KEY_F,
	keys.KeyG: evdev.KEY_G, keys.KeyH: evdev.KEY_H, keys.KeyI: evdev.KEY_I,
	keys.KeyJ: evdev.KEY_J, keys.KeyK: evdev.KEY_K, keys.KeyL: evdev.KEY_L,
	keys.KeyM: evdev.KEY_M, keys.KeyN: evdev.KEY_N, keys.KeyO: evdev.KEY_O,
	keys.KeyP: evdev.KEY_P, keys.KeyQ: evdev.KEY_Q, keys.KeyR: evdev.KEY_R,
	keys.KeyS: evdev.KEY_S, keys.KeyT: evdev.KEY_T, keys.KeyU: evdev.KEY_U,
	keys.KeyV: evdev.KEY_V, keys.KeyW: evdev.KEY_W, keys.KeyX: evdev.KEY_X,
	keys.KeyY: evdev.KEY_Y, keys.KeyZ: evdev.KEY_Z,

	keys.Digit0: evdev.KEY_0, keys.Digit1: evdev.KEY_1, keys.Digit2: evdev.KEY_2,
	keys.Digit3: evdev.KEY_3, keys.Digit4: evdev.KEY_4, keys.Digit5: evdev.KEY_5,
	keys.Digit6: evdev.KEY_6, keys.Digit7: evdev.KEY_7, keys.Digit8: evdev.KEY_8,
	keys.Digit9: evdev.KEY_9,

	keys.F1: evdev.KEY_F1, keys.F2: evdev.KEY_F2, keys.F3: evdev.KEY_F3,
	keys.F4: evdev.KEY_F4, keys.F5: evdev.KEY_F5, keys.F6: evdev.KEY_F6,
	keys.F7: evdev.KEY_F7, keys.F8: evdev.KEY_F8, keys.F9: evdev.KEY_F9,
	keys.F10: evdev.KEY_F10, keys.F11: evdev.KEY_F11, keys.F12: evdev.KEY_F12,
	keys.F13: evdev.KEY_F13, keys.F14: evdev.KEY_F14, keys.F15: evdev.KEY_F15,
	keys.F16: evdev.KEY_F16, keys.F17: evdev.KEY_F17, keys.F18: evdev.KEY_F18,
	keys.F19: evdev.KEY_F19, keys.F20: evdev.KEY_F20, keys.F21: evdev.KEY_F21,
	keys.F22: evdev.KEY_F22, keys.F23: evdev.KEY_F23, keys.F24: evdev.KEY_F24,

	keys.ControlLeft: evdev.KEY_LEFTCTRL, keys.ControlRight: evdev.KEY_RIGHTCTRL,
	keys.ShiftLeft: evdev.KEY_LEFTSHIFT, keys.ShiftRight: evdev.KEY_RIGHTSHIFT,
	keys.AltLeft: evdev.KEY_LEFTALT, keys.AltRight: evdev.KEY_RIGHTALT,
	keys.MetaLeft: evdev.KEY_LEFTMETA, keys.MetaRight: evdev.KEY_RIGHTMETA,

	keys.Space: evdev.KEY_SPACE, keys.Enter: evdev.KEY_ENTER,
	keys.Tab: evdev.KEY_TAB, keys.Escape: evdev.KEY_ESC,
	keys.Backspace: evdev.KEY_BACKSPACE, keys.Delete: evdev.KEY_DELETE,
	keys.Insert: evdev.KEY_INSERT, keys.Home: evdev.KEY_HOME,
	keys.End: evdev.KEY_END, keys.PageUp: evdev.KEY_PAGEUP,
	keys.PageDown: evdev.KEY_PAGEDOWN, keys.ArrowUp: evdev.KEY_UP,
	keys.ArrowDown: evdev.KEY_DOWN, keys.ArrowLeft: evdev.KEY_LEFT,
	keys.ArrowRight: evdev.KEY_RIGHT,

	keys.CapsLock: evdev.KEY_CAPSLOCK, keys.NumLock: evdev.KEY_NUMLOCK,
	keys.ScrollLock: evdev.KEY_SCROLLLOCK, keys.PrintScreen: evdev.KEY_SYSRQ,
	keys.Pause: evdev.KEY_PAUSE, keys.ContextMenu: evdev.KEY_COMPOSE,

	keys.Minus: evdev.KEY_MINUS, keys.Equal: evdev.KEY_EQUAL,
	keys.BracketLeft: evdev.KEY_LEFTBRACE, keys.BracketRight: evdev.KEY_RIGHTBRACE,
	keys.Backslash: evdev.KEY_BACKSLASH, keys.Semicolon: evdev.KEY_SEMICOLON,
	keys.Quote: evdev.KEY_APOSTROPHE, keys.Backquote: evdev.KEY_GRAVE,
	keys.Comma: evdev.KEY_COMMA, keys.Period: evdev.KEY_DOT,
	keys.Slash: evdev.KEY_SLASH,

	keys.Numpad0: evdev.KEY_KP0, keys.Numpad1: evdev.KEY_KP1,
	keys.Numpad2: evdev.KEY_KP2, keys.Numpad3: evdev.KEY_KP3,
	keys.Numpad4: evdev.KEY_KP4, keys.Numpad5: evdev.KEY_KP5,
	keys.Numpad6: evdev.KEY_KP6, keys.Numpad7: evdev.KEY_KP7,
	keys.Numpad8: evdev.KEY_KP8, keys.Numpad9: evdev.KEY_KP9,
	keys.NumpadAdd: evdev.KEY_KPPLUS, keys.NumpadSubtract: evdev.KEY_KPMINUS,
	keys.NumpadMultiply: evdev.KEY_KPASTERISK, keys.NumpadDivide: evdev.KEY_KPSLASH,
	keys.NumpadDecimal: evdev.KEY_KPDOT, keys.NumpadEnter: evdev.KEY_KPENTER,
}

// evdevCodeMap is the inverse of evdevKeyMap.
var evdevCodeMap = func() map[evdev.EvCode]keys.Key {
	m := make(map[evdev.EvCode]keys.Key, len(evdevKeyMap))
	for k, c := range evdevKeyMap {
		m[c] = k
	}
	return m
}()

func evdevSupports(k keys.Key) bool {
	_, ok := evdevKeyMap[k]
	return ok
}
