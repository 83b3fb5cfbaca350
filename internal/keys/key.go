// Package keys defines the logical identifiers for physical keyboard keys.
//
// Key names follow the W3C UI Events "code" values ("KeyA", "ControlLeft",
// "Digit1", "F5", "ArrowUp"). Parsing is exact: left and right variants are
// distinct keys and no case folding is applied. Mapping a Key to a platform
// scan code is the job of the hotkey backends.
package keys

import (
	"errors"
	"fmt"
)

// ErrUnknownKey is returned when a key name is not in the name table.
var ErrUnknownKey = errors.New("unknown key name")

// Key identifies one physical key. Keys are totally ordered by value.
type Key uint16

const (
	Unknown Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Digit0
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9

	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	F13
	F14
	F15
	F16
	F17
	F18
	F19
	F20
	F21
	F22
	F23
	F24

	ControlLeft
	ControlRight
	ShiftLeft
	ShiftRight
	AltLeft
	AltRight
	MetaLeft
	MetaRight

	Space
	Enter
	Tab
	Escape
	Backspace
	Delete
	Insert
	Home
	End
	PageUp
	PageDown
	ArrowUp
	ArrowDown
	ArrowLeft
	ArrowRight

	CapsLock
	NumLock
	ScrollLock
	PrintScreen
	Pause
	ContextMenu

	Minus
	Equal
	BracketLeft
	BracketRight
	Backslash
	Semicolon
	Quote
	Backquote
	Comma
	Period
	Slash

	Numpad0
	Numpad1
	Numpad2
	Numpad3
	Numpad4
	Numpad5
	Numpad6
	Numpad7
	Numpad8
	Numpad9
	NumpadAdd
	NumpadSubtract
	NumpadMultiply
	NumpadDivide
	NumpadDecimal
	NumpadEnter

	numKeys
)

// names is indexed by Key.
var names = [numKeys]string{
	Unknown: "Unknown",

	KeyA: "KeyA", KeyB: "KeyB", KeyC: "KeyC", KeyD: "KeyD", KeyE: "KeyE",
	KeyF: "KeyF", KeyG: "KeyG", KeyH: "KeyH", KeyI: "KeyI", KeyJ: "KeyJ",
	KeyK: "KeyK", KeyL: "KeyL", KeyM: "KeyM", KeyN: "KeyN", KeyO: "KeyO",
	KeyP: "KeyP", KeyQ: "KeyQ", KeyR: "KeyR", KeyS: "KeyS", KeyT: "KeyT",
	KeyU: "KeyU", KeyV: "KeyV", KeyW: "KeyW", KeyX: "KeyX", KeyY: "KeyY",
	KeyZ: "KeyZ",

	Digit0: "Digit0", Digit1: "Digit1", Digit2: "Digit2", Digit3: "Digit3",
	Digit4: "Digit4", Digit5: "Digit5", Digit6: "Digit6", Digit7: "Digit7",
	Digit8: "Digit8", Digit9: "Digit9",

	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6",
	F7: "F7", F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12",
	F13: "F13", F14: "F14", F15: "F15", F16: "F16", F17: "F17", F18: "F18",
	F19: "F19", F20: "F20", F21: "F21", F22: "F22", F23: "F23", F24: "F24",

	ControlLeft: "ControlLeft", ControlRight: "ControlRight",
	ShiftLeft: "ShiftLeft", ShiftRight: "ShiftRight",
	AltLeft: "AltLeft", AltRight: "AltRight",
	MetaLeft: "MetaLeft", MetaRight: "MetaRight",

	Space: "Space", Enter: "Enter", Tab: "Tab", Escape: "Escape",
	Backspace: "Backspace", Delete: "Delete", Insert: "Insert",
	Home: "Home", End: "End", PageUp: "PageUp", PageDown: "PageDown",
	ArrowUp: "ArrowUp", ArrowDown: "ArrowDown",
	ArrowLeft: "ArrowLeft", ArrowRight: "ArrowRight",

	CapsLock: "CapsLock", NumLock: "NumLock", ScrollLock: "ScrollLock",
	PrintScreen: "PrintScreen", Pause: "Pause", ContextMenu: "ContextMenu",

	Minus: "Minus", Equal: "Equal", BracketLeft: "BracketLeft",
	BracketRight: "BracketRight", Backslash: "Backslash",
	Semicolon: "Semicolon", Quote: "Quote", Backquote: "Backquote",
	Comma: "Comma", Period: "Period", Slash: "Slash",

	Numpad0: "Numpad0", Numpad1: "Numpad1", Numpad2: "Numpad2",
	Numpad3: "Numpad3", Numpad4: "Numpad4", Numpad5: "Numpad5",
	Numpad6: "Numpad6", Numpad7: "Numpad7", Numpad8: "Numpad8",
	Numpad9: "Numpad9", NumpadAdd: "NumpadAdd",
	NumpadSubtract: "NumpadSubtract", NumpadMultiply: "NumpadMultiply",
	NumpadDivide: "NumpadDivide", NumpadDecimal: "NumpadDecimal",
	NumpadEnter: "NumpadEnter",
}

var byName = func() map[string]Key {
	m := make(map[string]Key, numKeys)
	for k := Unknown + 1; k < numKeys; k++ {
		m[names[k]] = k
	}
	return m
}()

// String returns the canonical name of the key.
func (k Key) String() string {
	if k < numKeys {
		return names[k]
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

// Valid reports whether k is a known, non-Unknown key.
func (k Key) Valid() bool {
	return k > Unknown && k < numKeys
}

// Parse converts a canonical key name into a Key.
func Parse(name string) (Key, error) {
	if k, ok := byName[name]; ok {
		return k, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// All returns every known key in ascending order.
func All() []Key {
	out := make([]Key, 0, numKeys-1)
	for k := Unknown + 1; k < numKeys; k++ {
		out = append(out, k)
	}
	return out
}
