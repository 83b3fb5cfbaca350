// Package listener turns raw key presses into fired action names.
//
// A Listener owns an action registry and a hook backend. Each installed hook
// forwards presses into a bounded inbound queue; Poll takes one press off the
// queue, stamps every action that uses the key and sends the names of the
// actions whose keys were all pressed within the recency window to the
// outbound channel.
package listener

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/TanaroSch/hotkey-listener/internal/action"
	"github.com/TanaroSch/hotkey-listener/internal/hotkey"
	"github.com/TanaroSch/hotkey-listener/internal/keys"
	"github.com/TanaroSch/hotkey-listener/internal/logging"
)

// installedHook is a live hook and the stop signal of its forwarder.
type installedHook struct {
	hook hotkey.RegisteredHotkey
	stop chan struct{}
}

// Listener matches key presses against registered actions.
//
// RegisterAction, UnregisterAction, Poll, SetMinElapsedTime and Close are
// serialised, so they may be called from different goroutines.
type Listener struct {
	mu        sync.Mutex
	backend   hotkey.Backend
	registry  *action.Registry
	hooks     map[keys.Key]*installedHook
	events    chan keys.Key
	out       chan<- string
	window    time.Duration
	queueSize int
	now       func() time.Time
	logger    zerolog.Logger
	closed    bool

	dropped     atomic.Uint64
	undelivered atomic.Uint64
}

// ActionStatus is a point-in-time view of one registered action.
type ActionStatus struct {
	Name  string
	Keys  []string
	State action.State
}

// New creates a listener that installs hooks through backend and sends fired
// action names to out.
func New(backend hotkey.Backend, out chan<- string, opts ...Option) (*Listener, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: no backend", ErrHookCreate)
	}
	if !backend.IsAvailable() {
		return nil, fmt.Errorf("%w: %s", ErrHookCreate, backend.Name())
	}
	if out == nil {
		return nil, errors.New("listener: nil outbound channel")
	}

	l := &Listener{
		backend:   backend,
		hooks:     make(map[keys.Key]*installedHook),
		out:       out,
		window:    secondsToDuration(DefaultMinElapsedTime),
		queueSize: DefaultQueueSize,
		now:       time.Now,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.registry = action.NewRegistry(l.now)
	l.events = make(chan keys.Key, l.queueSize)
	l.logger = logging.WithComponent(l.logger, "listener")
	return l, nil
}

// RegisterAction binds name to the keys called keyNames. Either the action is
// registered with a hook on every key, or nothing changes.
func (l *Listener) RegisterAction(name string, keyNames []string) error {
	fail := func(err error) error {
		return &ActionError{Op: "register", Name: name, Keys: keyNames, Err: err}
	}

	if len(keyNames) == 0 {
		return fail(action.ErrEmptyKeySet)
	}
	set, err := keys.ParseAll(keyNames)
	if err != nil {
		return fail(err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return fail(ErrClosed)
	}

	fresh := l.registry.KeysFirstSeen(set)
	if _, err := l.registry.Register(name, set); err != nil {
		return fail(err)
	}

	installed := make([]keys.Key, 0, len(fresh))
	for _, k := range fresh {
		if err := l.install(k); err != nil {
			for _, done := range installed {
				if uerr := l.uninstall(done); uerr != nil {
					l.logger.Error().Err(uerr).Stringer("key", done).Msg("rollback left a hook installed")
				}
			}
			if _, uerr := l.registry.Unregister(name, set); uerr != nil {
				l.logger.Error().Err(uerr).Str("action", name).Msg("rollback could not remove action")
			}
			return fail(fmt.Errorf("%w %s: %w", ErrHookInstall, k, err))
		}
		installed = append(installed, k)
	}

	l.logger.Debug().
		Str("action", name).
		Str("keys", set.String()).
		Int("new_hooks", len(installed)).
		Msg("action registered")
	return nil
}

// UnregisterAction removes the action bound to name over keyNames and
// uninstalls the hooks of keys no other action uses.
func (l *Listener) UnregisterAction(name string, keyNames []string) error {
	fail := func(err error) error {
		return &ActionError{Op: "unregister", Name: name, Keys: keyNames, Err: err}
	}

	if len(keyNames) == 0 {
		return fail(action.ErrEmptyKeySet)
	}
	set, err := keys.ParseAll(keyNames)
	if err != nil {
		return fail(err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return fail(ErrClosed)
	}

	released, err := l.registry.KeysReleasedBy(name, set)
	if err != nil {
		return fail(err)
	}

	removed := make([]keys.Key, 0, len(released))
	for _, k := range released {
		if err := l.uninstall(k); err != nil {
			errs := []error{fmt.Errorf("%w %s: %w", ErrHookUninstall, k, err)}
			for _, done := range removed {
				if ierr := l.install(done); ierr != nil {
					l.logger.Error().Err(ierr).Stringer("key", done).Msg("could not restore hook")
					errs = append(errs, fmt.Errorf("restore hook %s: %w", done, ierr))
				}
			}
			return fail(errors.Join(errs...))
		}
		removed = append(removed, k)
	}

	if _, err := l.registry.Unregister(name, set); err != nil {
		return fail(err)
	}

	l.logger.Debug().
		Str("action", name).
		Str("keys", set.String()).
		Int("released_hooks", len(removed)).
		Msg("action unregistered")
	return nil
}

// Poll processes at most one pending key press and never blocks. It reports
// whether a press was taken off the queue, so a host can drain the queue
// with a loop.
func (l *Listener) Poll() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return false
	}

	var key keys.Key
	select {
	case key = <-l.events:
	default:
		return false
	}

	actions := l.registry.ActionsFor(key)
	if len(actions) == 0 {
		l.logger.Trace().Stringer("key", key).Msg("press for unmapped key")
		return true
	}

	now := l.now()
	for _, a := range actions {
		a.Press(key, now)
		if !a.IsPressed(now, l.window) {
			continue
		}
		if err := l.deliver(a.Name()); err != nil {
			l.undelivered.Add(1)
			l.logger.Warn().Err(err).Str("action", a.Name()).Msg("fired action dropped")
			continue
		}
		l.logger.Debug().Str("action", a.Name()).Stringer("key", key).Msg("action fired")
	}
	return true
}

// SetMinElapsedTime sets the recency window in seconds. Negative and NaN
// values are treated as zero, which disables firing.
func (l *Listener) SetMinElapsedTime(seconds float32) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if seconds < 0 || math.IsNaN(float64(seconds)) {
		l.logger.Warn().Float32("seconds", seconds).Msg("invalid min elapsed time, using 0")
	}
	l.window = secondsToDuration(seconds)
}

// MinElapsedTime returns the recency window in seconds.
func (l *Listener) MinElapsedTime() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return float32(l.window.Seconds())
}

// Actions returns every registered action with its current state.
func (l *Listener) Actions() []ActionStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	all := l.registry.Actions()
	out := make([]ActionStatus, 0, len(all))
	for _, a := range all {
		out = append(out, ActionStatus{
			Name:  a.Name(),
			Keys:  a.Keys().Names(),
			State: a.State(now, l.window),
		})
	}
	return out
}

// Dropped returns how many presses were lost because the inbound queue was full.
func (l *Listener) Dropped() uint64 { return l.dropped.Load() }

// Undelivered returns how many fired actions could not be sent to the
// outbound channel.
func (l *Listener) Undelivered() uint64 { return l.undelivered.Load() }

// Pending returns the number of queued presses.
func (l *Listener) Pending() int { return len(l.events) }

// Close uninstalls every hook and releases the backend. Later registrations
// fail with ErrClosed and Poll does nothing.
func (l *Listener) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	var errs []error
	for k := range l.hooks {
		if err := l.uninstall(k); err != nil {
			errs = append(errs, err)
		}
	}
	if err := l.backend.UnregisterAll(); err != nil {
		errs = append(errs, err)
	}
	l.logger.Debug().Msg("listener closed")
	return errors.Join(errs...)
}

// install hooks k and starts its forwarder. Callers hold l.mu.
func (l *Listener) install(k keys.Key) error {
	h, err := l.backend.Register(k)
	if err != nil {
		return err
	}
	ih := &installedHook{hook: h, stop: make(chan struct{})}
	l.hooks[k] = ih
	go l.forward(k, h.Keydown(), ih.stop)
	return nil
}

// uninstall closes the hook of k. On failure the hook stays recorded as
// installed. Callers hold l.mu.
func (l *Listener) uninstall(k keys.Key) error {
	ih, ok := l.hooks[k]
	if !ok {
		return nil
	}
	if err := ih.hook.Close(); err != nil {
		return err
	}
	close(ih.stop)
	delete(l.hooks, k)
	return nil
}

// forward moves presses of one hook onto the inbound queue until the hook
// is closed.
func (l *Listener) forward(k keys.Key, keydown <-chan struct{}, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case _, ok := <-keydown:
			if !ok {
				return
			}
			l.enqueue(k)
		}
	}
}

// enqueue never blocks; a full queue drops the press.
func (l *Listener) enqueue(k keys.Key) {
	select {
	case l.events <- k:
	default:
		n := l.dropped.Add(1)
		l.logger.Warn().Stringer("key", k).Uint64("dropped", n).Msg("key queue full, press dropped")
	}
}

// deliver sends name without blocking. A consumer that closed the channel
// is reported as a send failure.
func (l *Listener) deliver(name string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrChannelSend, r)
		}
	}()
	select {
	case l.out <- name:
		return nil
	default:
		return fmt.Errorf("%w: outbound channel full", ErrChannelSend)
	}
}

func secondsToDuration(seconds float32) time.Duration {
	if seconds < 0 || math.IsNaN(float64(seconds)) {
		return 0
	}
	return time.Duration(float64(seconds) * float64(time.Second))
}
