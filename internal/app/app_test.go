package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/TanaroSch/hotkey-listener/internal/config"
	"github.com/TanaroSch/hotkey-listener/internal/hotkey"
	mock_hotkey "github.com/TanaroSch/hotkey-listener/internal/hotkey/mocks"
	"github.com/TanaroSch/hotkey-listener/internal/keys"
	"github.com/TanaroSch/hotkey-listener/internal/listener"
	"github.com/TanaroSch/hotkey-listener/internal/notify"
)

type recordingSink struct {
	mu  sync.Mutex
	got []string
}

func (r *recordingSink) Name() string { return "recording" }

func (r *recordingSink) Deliver(_ context.Context, ev notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, ev.Action)
	return nil
}

func (r *recordingSink) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.got...)
}

func testConfig(actions ...config.ActionConfig) *config.Config {
	cfg := config.DefaultConfig()
	cfg.PollInterval = time.Millisecond
	cfg.Actions = actions
	return cfg
}

var (
	saveAction = config.ActionConfig{Name: "Save", Keys: []string{"ControlLeft", "KeyS"}}
	quitAction = config.ActionConfig{Name: "Quit", Keys: []string{"ControlLeft", "KeyQ"}}
	openAction = config.ActionConfig{Name: "Open", Keys: []string{"KeyO", "ControlLeft"}}
)

func TestRunPlaysScriptAndDeliversAction(t *testing.T) {
	cfg := testConfig(saveAction, quitAction)
	script := "# press Save once\nControlLeft KeyS\n"
	backend := hotkey.NewScriptBackend(strings.NewReader(script), zerolog.Nop())
	sink := &recordingSink{}

	a, err := New(cfg, backend, sink, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, a.Run(ctx))
	assert.Equal(t, []string{"Save"}, sink.actions())

	st := a.Status()
	assert.Equal(t, "script", st.Backend)
	assert.Equal(t, uint64(1), st.Fired)
	assert.Zero(t, st.Dropped)
	assert.Len(t, st.Actions, 2)

	assert.ErrorIs(t, a.Run(ctx), ErrAlreadyRunning)
}

func TestRunReportsScriptError(t *testing.T) {
	cfg := testConfig(saveAction)
	backend := hotkey.NewScriptBackend(strings.NewReader("wait soon\n"), zerolog.Nop())

	a, err := New(cfg, backend, &recordingSink{}, zerolog.Nop())
	require.NoError(t, err)

	err = a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script line 1")
}

func TestRunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock_hotkey.NewMockBackend(ctrl)
	backend.EXPECT().IsAvailable().Return(true)
	backend.EXPECT().Name().Return("mock").AnyTimes()
	backend.EXPECT().UnregisterAll().Return(nil)

	a, err := New(testConfig(), backend, &recordingSink{}, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestReloadAfterRunIsIgnored(t *testing.T) {
	hs := newHookSet(t)
	hs.expect(keys.ControlLeft, keys.KeyS)
	hs.backend.EXPECT().UnregisterAll().Return(nil)

	a, err := New(testConfig(saveAction), hs.backend, &recordingSink{}, zerolog.Nop())
	require.NoError(t, err)
	hs.hooks[keys.ControlLeft].EXPECT().Close().Return(nil)
	hs.hooks[keys.KeyS].EXPECT().Close().Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, a.Run(ctx))

	// No Register call is expected for KeyQ.
	err = a.Reload(testConfig(saveAction, quitAction))
	require.ErrorIs(t, err, ErrStopped)
}

func TestNewValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock_hotkey.NewMockBackend(ctrl)

	_, err := New(nil, backend, &recordingSink{}, zerolog.Nop())
	assert.Error(t, err)

	_, err = New(testConfig(), backend, nil, zerolog.Nop())
	assert.Error(t, err)

	backend.EXPECT().IsAvailable().Return(false)
	backend.EXPECT().Name().Return("gohook")
	_, err = New(testConfig(), backend, &recordingSink{}, zerolog.Nop())
	require.ErrorIs(t, err, listener.ErrHookCreate)
	assert.Contains(t, err.Error(), "engine unavailable")
}

// hookSet hands out mock hooks and remembers their press channels.
type hookSet struct {
	ctrl    *gomock.Controller
	backend *mock_hotkey.MockBackend
	presses map[keys.Key]chan struct{}
	hooks   map[keys.Key]*mock_hotkey.MockRegisteredHotkey
}

func newHookSet(t *testing.T) *hookSet {
	ctrl := gomock.NewController(t)
	backend := mock_hotkey.NewMockBackend(ctrl)
	backend.EXPECT().IsAvailable().Return(true)
	backend.EXPECT().Name().Return("mock").AnyTimes()
	return &hookSet{
		ctrl:    ctrl,
		backend: backend,
		presses: make(map[keys.Key]chan struct{}),
		hooks:   make(map[keys.Key]*mock_hotkey.MockRegisteredHotkey),
	}
}

func (s *hookSet) expect(ks ...keys.Key) {
	for _, k := range ks {
		ch := make(chan struct{}, 8)
		h := mock_hotkey.NewMockRegisteredHotkey(s.ctrl)
		h.EXPECT().Keydown().Return((<-chan struct{})(ch)).AnyTimes()
		s.presses[k] = ch
		s.hooks[k] = h
		s.backend.EXPECT().Register(k).Return(h, nil)
	}
}

func actionNames(st Status) []string {
	names := make([]string, 0, len(st.Actions))
	for _, as := range st.Actions {
		names = append(names, as.Name)
	}
	return names
}

func TestReloadReconcilesActions(t *testing.T) {
	hs := newHookSet(t)
	hs.expect(keys.ControlLeft, keys.KeyS, keys.KeyQ)

	a, err := New(testConfig(saveAction, quitAction), hs.backend, &recordingSink{}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, a.RegisterAll())
	assert.ElementsMatch(t, []string{"Save", "Quit"}, actionNames(a.Status()))

	hs.hooks[keys.KeyQ].EXPECT().Close().Return(nil)
	hs.expect(keys.KeyO)

	next := testConfig(saveAction, openAction)
	next.MinElapsedTime = 0.5
	require.NoError(t, a.Reload(next))

	st := a.Status()
	assert.ElementsMatch(t, []string{"Save", "Open"}, actionNames(st))
	assert.InDelta(t, 0.5, st.MinElapsedTime, 1e-6)
}

func TestReloadUnchangedConfigIsNoop(t *testing.T) {
	hs := newHookSet(t)
	hs.expect(keys.ControlLeft, keys.KeyS)

	cfg := testConfig(saveAction)
	a, err := New(cfg, hs.backend, &recordingSink{}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, a.RegisterAll())

	require.NoError(t, a.Reload(cfg))
	assert.Equal(t, []string{"Save"}, actionNames(a.Status()))
}

func TestReloadKeepsGoingPastBadAction(t *testing.T) {
	hs := newHookSet(t)
	hs.expect(keys.ControlLeft, keys.KeyS)

	a, err := New(testConfig(saveAction), hs.backend, &recordingSink{}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, a.RegisterAll())

	hs.expect(keys.KeyO)
	bad := config.ActionConfig{Name: "Bad", Keys: []string{"Hyper"}}
	err = a.Reload(testConfig(saveAction, bad, openAction))
	require.ErrorIs(t, err, keys.ErrUnknownKey)
	assert.ElementsMatch(t, []string{"Save", "Open"}, actionNames(a.Status()))

	assert.ErrorContains(t, a.Reload(nil), "nil config")
}

func TestPollBatchHonoursLimit(t *testing.T) {
	hs := newHookSet(t)
	hs.expect(keys.ControlLeft, keys.KeyS)

	a, err := New(testConfig(saveAction), hs.backend, &recordingSink{}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, a.RegisterAll())

	for i := 0; i < 3; i++ {
		hs.presses[keys.KeyS] <- struct{}{}
	}
	require.Eventually(t, func() bool { return a.Status().Pending == 3 }, time.Second, time.Millisecond)

	assert.Equal(t, 2, a.pollBatch(2))
	assert.Equal(t, 1, a.pollBatch(0))
	assert.Zero(t, a.pollBatch(0))
}

func TestBindingLines(t *testing.T) {
	lines := BindingLines([]config.ActionConfig{
		openAction,
		{Name: "Bad", Keys: []string{"Hyper"}},
	})
	assert.Equal(t, []string{"Open: KeyO+ControlLeft"}, lines)
}
