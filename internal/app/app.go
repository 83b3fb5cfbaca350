// Package app wires the key backend, the listener and the sinks together and
// drives them until shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/TanaroSch/hotkey-listener/internal/config"
	"github.com/TanaroSch/hotkey-listener/internal/hotkey"
	"github.com/TanaroSch/hotkey-listener/internal/listener"
	"github.com/TanaroSch/hotkey-listener/internal/logging"
	"github.com/TanaroSch/hotkey-listener/internal/notify"
)

// ScriptSettle is how long the application keeps polling after a scripted
// source ends, so the last presses can still fire.
const ScriptSettle = 250 * time.Millisecond

// ErrAlreadyRunning is returned by a second call to Run.
var ErrAlreadyRunning = errors.New("application already running")

// ErrStopped is returned by Reload once Run has shut the listener down.
var ErrStopped = errors.New("application stopped")

// errSourceDone ends the run group once a finite key source is exhausted.
var errSourceDone = errors.New("key source finished")

// Runner is a backend that produces presses itself and must be driven.
type Runner interface {
	Run(ctx context.Context) error
}

// Application represents the running daemon.
type Application struct {
	mu       sync.Mutex
	cfg      *config.Config
	bound    map[string]binding
	backend  hotkey.Backend
	listener *listener.Listener
	sink     notify.Sink
	manager  *config.Manager
	fired    chan string
	logger   zerolog.Logger
	now      func() time.Time
	running  bool
	stopped  bool

	firedCount atomic.Uint64
}

// Option configures an Application.
type Option func(*appOptions)

type appOptions struct {
	manager  *config.Manager
	now      func() time.Time
	listener []listener.Option
}

// WithConfigManager makes Run watch the config file and reload on change.
func WithConfigManager(m *config.Manager) Option {
	return func(o *appOptions) { o.manager = m }
}

// WithClock replaces time.Now for the listener and event timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *appOptions) { o.now = now }
}

// WithListenerOptions passes extra options to the listener.
func WithListenerOptions(opts ...listener.Option) Option {
	return func(o *appOptions) { o.listener = append(o.listener, opts...) }
}

// New creates a new application instance. Actions are registered by Run.
func New(cfg *config.Config, backend hotkey.Backend, sink notify.Sink, logger zerolog.Logger, opts ...Option) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	if sink == nil {
		return nil, errors.New("app: nil sink")
	}

	o := appOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.now == nil {
		o.now = time.Now
	}

	a := &Application{
		cfg:     cfg.Clone(),
		bound:   make(map[string]binding),
		backend: backend,
		sink:    sink,
		manager: o.manager,
		fired:   make(chan string, cfg.QueueSize),
		logger:  logging.WithComponent(logger, "app"),
		now:     o.now,
	}

	lopts := []listener.Option{
		listener.WithLogger(logger),
		listener.WithMinElapsedTime(cfg.MinElapsedTime),
		listener.WithQueueSize(cfg.QueueSize),
		listener.WithClock(o.now),
	}
	l, err := listener.New(backend, a.fired, append(lopts, o.listener...)...)
	if err != nil {
		return nil, fmt.Errorf("engine unavailable: %w", err)
	}
	a.listener = l
	return a, nil
}

// RegisterAll registers every configured action. Failures are collected;
// the actions that succeeded stay registered.
func (a *Application) RegisterAll() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error
	for _, ac := range a.cfg.Actions {
		if err := a.bindLocked(ac); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Run starts the application and blocks until ctx is cancelled or a scripted
// source has been played. All hooks are released before it returns.
func (a *Application) Run(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}
	a.running = true
	a.mu.Unlock()

	if err := a.RegisterAll(); err != nil {
		a.logger.Warn().Err(err).Msg("some actions could not be registered")
	}
	a.logger.Info().
		Str("backend", a.backend.Name()).
		Int("actions", len(a.listener.Actions())).
		Msg("listening for hotkeys")

	if a.manager != nil {
		a.manager.OnConfigChange(func(cfg *config.Config) {
			err := a.Reload(cfg)
			switch {
			case errors.Is(err, ErrStopped):
				a.logger.Debug().Msg("config changed after shutdown, ignored")
			case err != nil:
				a.logger.Warn().Err(err).Msg("config reload incomplete")
			}
		})
		if err := a.manager.Watch(); err != nil {
			a.logger.Warn().Err(err).Msg("failed to watch config file")
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(a.fired)
		return a.pollLoop(gctx)
	})
	g.Go(func() error {
		a.dispatch(context.WithoutCancel(gctx))
		return nil
	})
	if r, ok := a.backend.(Runner); ok {
		g.Go(func() error {
			return a.runSource(gctx, r)
		})
	}

	err := g.Wait()
	if errors.Is(err, errSourceDone) || errors.Is(err, context.Canceled) {
		err = nil
	}

	st := a.Status()
	a.logger.Info().
		Uint64("fired", st.Fired).
		Uint64("dropped", st.Dropped).
		Uint64("undelivered", st.Undelivered).
		Msg("listener stopped")
	return err
}

// pollLoop polls the listener every tick. On shutdown it drains what is
// queued and closes the listener.
func (a *Application) pollLoop(ctx context.Context) error {
	a.mu.Lock()
	interval := a.cfg.PollInterval
	a.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.pollBatch(0)
			a.mu.Lock()
			a.stopped = true
			a.mu.Unlock()
			if err := a.listener.Close(); err != nil {
				a.logger.Error().Err(err).Msg("failed to release hooks")
				return err
			}
			return nil
		case <-ticker.C:
			a.pollBatch(a.maxEventsPerTick())
		}
	}
}

// pollBatch processes up to limit presses, or every queued press if limit is 0.
func (a *Application) pollBatch(limit int) int {
	n := 0
	for limit == 0 || n < limit {
		if !a.listener.Poll() {
			break
		}
		n++
	}
	return n
}

func (a *Application) maxEventsPerTick() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg.MaxEventsPerTick
}

// dispatch hands fired actions to the sink until the channel is closed.
func (a *Application) dispatch(ctx context.Context) {
	for name := range a.fired {
		a.firedCount.Add(1)
		if err := a.sink.Deliver(ctx, notify.Event{Action: name, At: a.now()}); err != nil {
			a.logger.Warn().Err(err).Str("action", name).Msg("failed to deliver action")
		}
	}
}

// runSource drives a backend that generates its own presses.
func (a *Application) runSource(ctx context.Context, r Runner) error {
	if err := r.Run(ctx); err != nil {
		return fmt.Errorf("%s source: %w", a.backend.Name(), err)
	}
	a.logger.Info().Str("backend", a.backend.Name()).Msg("key source finished")

	t := time.NewTimer(ScriptSettle)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return errSourceDone
	}
}

// Status is a point-in-time view of the application.
type Status struct {
	Backend        string
	MinElapsedTime float32
	Actions        []listener.ActionStatus
	Pending        int
	Fired          uint64
	Dropped        uint64
	Undelivered    uint64
}

// Status returns the current status.
func (a *Application) Status() Status {
	return Status{
		Backend:        a.backend.Name(),
		MinElapsedTime: a.listener.MinElapsedTime(),
		Actions:        a.listener.Actions(),
		Pending:        a.listener.Pending(),
		Fired:          a.firedCount.Load(),
		Dropped:        a.listener.Dropped(),
		Undelivered:    a.listener.Undelivered(),
	}
}
