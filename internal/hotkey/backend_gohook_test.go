package hotkey

import (
	"testing"
	"time"

	hook "github.com/robotn/gohook"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TanaroSch/hotkey-listener/internal/keys"
)

func TestGohookName(t *testing.T) {
	tests := map[keys.Key]string{
		keys.KeyA:        "a",
		keys.KeyZ:        "z",
		keys.Digit7:      "7",
		keys.F5:          "f5",
		keys.ControlLeft: "ctrl",
		keys.MetaRight:   "rcmd",
		keys.Escape:      "esc",
		keys.Numpad5:     "",
	}
	for k, want := range tests {
		assert.Equal(t, want, gohookName(k), k.String())
	}
}

func TestGohookProcessDispatchesRawPresses(t *testing.T) {
	b := NewGohookBackend(zerolog.Nop())
	const codeS, codeQ = 31, 16

	h, err := b.hooks.add(keys.KeyS, nil)
	require.NoError(t, err)
	b.codes[codeS] = keys.KeyS

	events := make(chan hook.Event, 8)
	done := make(chan struct{})
	go b.process(events, done)

	events <- hook.Event{Kind: hook.KeyDown, Keycode: codeS}
	events <- hook.Event{Kind: hook.KeyUp, Keycode: codeS}
	events <- hook.Event{Kind: hook.KeyHold, Keycode: codeQ}
	events <- hook.Event{Kind: hook.KeyHold, Keycode: codeS}
	events <- hook.Event{Kind: hook.KeyHold, Keycode: codeS}
	close(events)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("process did not stop after the event channel closed")
	}

	assert.Len(t, h.Keydown(), 2, "only KeyHold events of mapped codes count")
}
