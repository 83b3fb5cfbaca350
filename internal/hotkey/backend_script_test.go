package hotkey

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TanaroSch/hotkey-listener/internal/keys"
)

func newTestScript(t *testing.T, script string) (*ScriptBackend, *[]time.Duration) {
	t.Helper()
	b := NewScriptBackend(strings.NewReader(script), zerolog.Nop())
	var waits []time.Duration
	b.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	return b, &waits
}

func TestScriptBackendRun(t *testing.T) {
	b, waits := newTestScript(t, `
# save, then a lone S after the window
ControlLeft KeyS
wait 500ms
KeyS   KeyB
NotAKey
`)

	ctrl, err := b.Register(keys.ControlLeft)
	require.NoError(t, err)
	s, err := b.Register(keys.KeyS)
	require.NoError(t, err)

	require.NoError(t, b.Run(context.Background()))

	assert.Len(t, ctrl.Keydown(), 1)
	assert.Len(t, s.Keydown(), 2)
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, *waits)
}

func TestScriptBackendBadWait(t *testing.T) {
	b, _ := newTestScript(t, "wait soon\n")
	err := b.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")

	b, _ = newTestScript(t, "wait\n")
	require.Error(t, b.Run(context.Background()))
}

func TestScriptBackendStopsOnCancel(t *testing.T) {
	b := NewScriptBackend(strings.NewReader("wait 1h\nKeyA\n"), zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, b.Run(ctx), context.Canceled)
}

func TestScriptBackendUnregister(t *testing.T) {
	b, _ := newTestScript(t, "KeyA\n")
	h, err := b.Register(keys.KeyA)
	require.NoError(t, err)

	require.NoError(t, b.Unregister(keys.KeyA))
	require.NoError(t, b.Unregister(keys.KeyA))
	require.NoError(t, b.Run(context.Background()))

	_, open := <-h.Keydown()
	assert.False(t, open)
}

func TestScriptBackendRejectsUnknownKey(t *testing.T) {
	b, _ := newTestScript(t, "")
	_, err := b.Register(keys.Unknown)
	assert.ErrorIs(t, err, ErrUnsupportedKey)
}
