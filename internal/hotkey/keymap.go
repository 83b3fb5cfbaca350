package hotkey

import (
	"golang.design/x/hotkey"

	"github.com/TanaroSch/hotkey-listener/internal/keys"
)

// legacyKeyMap maps keys to golang.design/x/hotkey codes. Modifier keys are
// absent: the library can only grab them as modifiers of another key.
var legacyKeyMap = map[keys.Key]hotkey.Key{
	// Letters
	keys.KeyA: hotkey.KeyA,
	keys.KeyB: hotkey.KeyB,
	keys.KeyC: hotkey.KeyC,
	keys.KeyD: hotkey.KeyD,
	keys.KeyE: hotkey.KeyE,
	keys.KeyF: hotkey.KeyF,
	keys.KeyG: hotkey.KeyG,
	keys.KeyH: hotkey.KeyH,
	keys.KeyI: hotkey.KeyI,
	keys.KeyJ: hotkey.KeyJ,
	keys.KeyK: hotkey.KeyK,
	keys.KeyL: hotkey.KeyL,
	keys.KeyM: hotkey.KeyM,
	keys.KeyN: hotkey.KeyN,
	keys.KeyO: hotkey.KeyO,
	keys.KeyP: hotkey.KeyP,
	keys.KeyQ: hotkey.KeyQ,
	keys.KeyR: hotkey.KeyR,
	keys.KeyS: hotkey.KeyS,
	keys.KeyT: hotkey.KeyT,
	keys.KeyU: hotkey.KeyU,
	keys.KeyV: hotkey.KeyV,
	keys.KeyW: hotkey.KeyW,
	keys.KeyX: hotkey.KeyX,
	keys.KeyY: hotkey.KeyY,
	keys.KeyZ: hotkey.KeyZ,

	// Numbers
	keys.Digit0: hotkey.Key0,
	keys.Digit1: hotkey.Key1,
	keys.Digit2: hotkey.Key2,
	keys.Digit3: hotkey.Key3,
	keys.Digit4: hotkey.Key4,
	keys.Digit5: hotkey.Key5,
	keys.Digit6: hotkey.Key6,
	keys.Digit7: hotkey.Key7,
	keys.Digit8: hotkey.Key8,
	keys.Digit9: hotkey.Key9,

	// Function keys
	keys.F1:  hotkey.KeyF1,
	keys.F2:  hotkey.KeyF2,
	keys.F3:  hotkey.KeyF3,
	keys.F4:  hotkey.KeyF4,
	keys.F5:  hotkey.KeyF5,
	keys.F6:  hotkey.KeyF6,
	keys.F7:  hotkey.KeyF7,
	keys.F8:  hotkey.KeyF8,
	keys.F9:  hotkey.KeyF9,
	keys.F10: hotkey.KeyF10,
	keys.F11: hotkey.KeyF11,
	keys.F12: hotkey.KeyF12,

	// Special keys
	keys.Space:  hotkey.KeySpace,
	keys.Tab:    hotkey.KeyTab,
	keys.Enter:  hotkey.KeyReturn,
	keys.Escape: hotkey.KeyEscape,
}
