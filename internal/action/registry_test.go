package action

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TanaroSch/hotkey-listener/internal/keys"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() func() time.Time {
	return func() time.Time { return epoch }
}

func TestRegisterRejectsDuplicateInAnyOrder(t *testing.T) {
	r := NewRegistry(fixedClock())

	_, err := r.Register("Test", keys.NewSet(keys.KeyA, keys.ControlLeft))
	require.NoError(t, err)

	_, err = r.Register("Test", keys.NewSet(keys.ControlLeft, keys.KeyA))
	require.ErrorIs(t, err, ErrDuplicateAction)
	assert.Equal(t, 1, r.Len())
}

func TestRegisterSameKeySetDifferentNames(t *testing.T) {
	r := NewRegistry(fixedClock())
	set := keys.NewSet(keys.KeyA, keys.ControlLeft)

	_, err := r.Register("First", set)
	require.NoError(t, err)
	_, err = r.Register("Second", set)
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len())
	assert.Len(t, r.ActionsFor(keys.KeyA), 2)
}

func TestRegisterSameNameDifferentKeySets(t *testing.T) {
	r := NewRegistry(fixedClock())

	_, err := r.Register("Test", keys.NewSet(keys.KeyA, keys.ControlLeft))
	require.NoError(t, err)
	_, err = r.Register("Test", keys.NewSet(keys.KeyB, keys.ControlLeft))
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len())
	assert.Len(t, r.ActionsFor(keys.ControlLeft), 2)
}

func TestRegisterValidation(t *testing.T) {
	r := NewRegistry(fixedClock())

	_, err := r.Register("", keys.NewSet(keys.KeyA))
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = r.Register("Nothing", keys.NewSet())
	require.ErrorIs(t, err, ErrEmptyKeySet)

	assert.Zero(t, r.Len())
	assert.Empty(t, r.Keys())
}

func TestRegisterInitialisesStaleTimestamps(t *testing.T) {
	r := NewRegistry(fixedClock())
	a, err := r.Register("Save", keys.NewSet(keys.ControlLeft, keys.KeyS))
	require.NoError(t, err)

	for _, k := range a.Keys().Keys() {
		ts, ok := a.LastPress(k)
		require.True(t, ok)
		assert.Equal(t, epoch.Add(-StaleMargin), ts)
	}
	assert.False(t, a.IsPressed(epoch, 200*time.Millisecond))
	assert.Equal(t, Stale, a.State(epoch, 200*time.Millisecond))
}

func TestKeysFirstSeen(t *testing.T) {
	r := NewRegistry(fixedClock())

	assert.Equal(t, []keys.Key{keys.KeyA, keys.ControlLeft},
		r.KeysFirstSeen(keys.NewSet(keys.ControlLeft, keys.KeyA)))

	_, err := r.Register("X", keys.NewSet(keys.KeyA, keys.ControlLeft))
	require.NoError(t, err)

	assert.Equal(t, []keys.Key{keys.ShiftLeft},
		r.KeysFirstSeen(keys.NewSet(keys.KeyA, keys.ShiftLeft)))
	assert.Empty(t, r.KeysFirstSeen(keys.NewSet(keys.ControlLeft)))
}

func TestActionsForUnknownKey(t *testing.T) {
	r := NewRegistry(fixedClock())
	_, err := r.Register("X", keys.NewSet(keys.KeyA))
	require.NoError(t, err)

	assert.Empty(t, r.ActionsFor(keys.KeyZ))
}

func TestActionsForKeepsRegistrationOrder(t *testing.T) {
	r := NewRegistry(fixedClock())
	for _, name := range []string{"one", "two", "three"} {
		_, err := r.Register(name, keys.NewSet(keys.KeyA, keys.ControlLeft))
		require.NoError(t, err)
	}

	var got []string
	for _, a := range r.ActionsFor(keys.KeyA) {
		got = append(got, a.Name())
	}
	assert.Equal(t, []string{"one", "two", "three"}, got)
}

func TestUnregisterReleasesOnlyUnreferencedKeys(t *testing.T) {
	r := NewRegistry(fixedClock())
	x := keys.NewSet(keys.KeyA, keys.ControlLeft)
	y := keys.NewSet(keys.KeyA, keys.ShiftLeft)

	_, err := r.Register("X", x)
	require.NoError(t, err)
	_, err = r.Register("Y", y)
	require.NoError(t, err)

	preview, err := r.KeysReleasedBy("X", x)
	require.NoError(t, err)
	assert.Equal(t, []keys.Key{keys.ControlLeft}, preview)
	assert.Equal(t, 2, r.Len(), "preview must not mutate")

	released, err := r.Unregister("X", x)
	require.NoError(t, err)
	assert.Equal(t, preview, released)

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, []keys.Key{keys.KeyA, keys.ShiftLeft}, r.Keys())
	require.Len(t, r.ActionsFor(keys.KeyA), 1)
	assert.Equal(t, "Y", r.ActionsFor(keys.KeyA)[0].Name())

	released, err = r.Unregister("Y", y)
	require.NoError(t, err)
	assert.Equal(t, []keys.Key{keys.KeyA, keys.ShiftLeft}, released)
	assert.Empty(t, r.Keys())
	assert.Zero(t, r.Len())
}

func TestUnregisterKeepsOtherActionsInBucket(t *testing.T) {
	r := NewRegistry(fixedClock())
	set := keys.NewSet(keys.KeyA, keys.ControlLeft)
	_, err := r.Register("First", set)
	require.NoError(t, err)
	_, err = r.Register("Second", set)
	require.NoError(t, err)

	released, err := r.Unregister("First", set)
	require.NoError(t, err)
	assert.Empty(t, released)

	_, ok := r.Lookup("Second", set)
	assert.True(t, ok)

	_, err = r.Register("First", set)
	require.NoError(t, err, "name is free again after unregister")
}

func TestUnregisterNotFound(t *testing.T) {
	r := NewRegistry(fixedClock())
	_, err := r.Register("X", keys.NewSet(keys.KeyA))
	require.NoError(t, err)

	_, err = r.Unregister("X", keys.NewSet(keys.KeyB))
	require.ErrorIs(t, err, ErrActionNotFound)
	_, err = r.Unregister("Y", keys.NewSet(keys.KeyA))
	require.ErrorIs(t, err, ErrActionNotFound)
	_, err = r.KeysReleasedBy("Y", keys.NewSet(keys.KeyA))
	require.ErrorIs(t, err, ErrActionNotFound)

	assert.Equal(t, 1, r.Len())
}

func TestActionsSnapshotOrder(t *testing.T) {
	r := NewRegistry(fixedClock())
	_, err := r.Register("b", keys.NewSet(keys.KeyB))
	require.NoError(t, err)
	_, err = r.Register("z", keys.NewSet(keys.KeyA))
	require.NoError(t, err)
	_, err = r.Register("a", keys.NewSet(keys.KeyA))
	require.NoError(t, err)

	var got []string
	for _, a := range r.Actions() {
		got = append(got, a.Keys().ID()+":"+a.Name())
	}
	assert.Equal(t, []string{"KeyA:a", "KeyA:z", "KeyB:b"}, got)
}
