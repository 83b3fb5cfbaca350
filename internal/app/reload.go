package app

import (
	"errors"
	"fmt"
	"slices"

	"github.com/TanaroSch/hotkey-listener/internal/config"
	"github.com/TanaroSch/hotkey-listener/internal/diffutil"
	"github.com/TanaroSch/hotkey-listener/internal/keys"
)

// binding is a registered action as the application tracks it.
type binding struct {
	name string
	keys []string
	set  keys.Set
}

// line is the canonical text of a binding, used as map key and diff line.
func (b binding) line() string {
	return fmt.Sprintf("%s: %s", b.name, b.set.ID())
}

func newBinding(ac config.ActionConfig) (binding, error) {
	set, err := keys.ParseAll(ac.Keys)
	if err != nil {
		return binding{}, fmt.Errorf("action %q: %w", ac.Name, err)
	}
	return binding{name: ac.Name, keys: slices.Clone(ac.Keys), set: set}, nil
}

// bindLocked registers ac with the listener. Callers hold a.mu.
func (a *Application) bindLocked(ac config.ActionConfig) error {
	b, err := newBinding(ac)
	if err != nil {
		return err
	}
	if _, ok := a.bound[b.line()]; ok {
		return nil
	}
	if err := a.listener.RegisterAction(b.name, b.keys); err != nil {
		return err
	}
	a.bound[b.line()] = b
	a.logger.Debug().Str("action", b.name).Stringer("keys", b.set).Msg("action registered")
	return nil
}

// unbindLocked unregisters b. Callers hold a.mu.
func (a *Application) unbindLocked(b binding) error {
	if err := a.listener.UnregisterAction(b.name, b.keys); err != nil {
		return err
	}
	delete(a.bound, b.line())
	a.logger.Debug().Str("action", b.name).Stringer("keys", b.set).Msg("action unregistered")
	return nil
}

// BindingLines returns the canonical "name: key set" line of every action in cfg.
// Actions with unknown key names are skipped.
func BindingLines(actions []config.ActionConfig) []string {
	lines := make([]string, 0, len(actions))
	for _, ac := range actions {
		b, err := newBinding(ac)
		if err != nil {
			continue
		}
		lines = append(lines, b.line())
	}
	return lines
}

// Reload reconciles the registered actions with cfg: removed actions are
// unregistered first, then new ones registered, then the window updated.
// Settings that need a new backend or queue only take effect on restart.
func (a *Application) Reload(cfg *config.Config) error {
	if cfg == nil {
		return errors.New("app: nil config")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return ErrStopped
	}
	a.logger.Info().Msg("reloading configuration")

	before := a.boundLinesLocked()

	wanted := make(map[string]bool, len(cfg.Actions))
	valid := make([]config.ActionConfig, 0, len(cfg.Actions))
	var errs []error
	for _, ac := range cfg.Actions {
		b, err := newBinding(ac)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		wanted[b.line()] = true
		valid = append(valid, ac)
	}

	for _, line := range before {
		if wanted[line] {
			continue
		}
		if err := a.unbindLocked(a.bound[line]); err != nil {
			errs = append(errs, err)
		}
	}
	for _, ac := range valid {
		if err := a.bindLocked(ac); err != nil {
			errs = append(errs, err)
		}
	}

	a.listener.SetMinElapsedTime(cfg.MinElapsedTime)
	a.warnRestartOnly(cfg)

	old := a.cfg
	a.cfg = cfg.Clone()
	a.cfg.Backend, a.cfg.ScriptPath, a.cfg.QueueSize = old.Backend, old.ScriptPath, old.QueueSize
	a.cfg.PollInterval = old.PollInterval
	a.cfg.Sinks = old.Sinks
	a.cfg.Logging = old.Logging

	lines, summary := diffutil.BindingDiff(before, a.boundLinesLocked())
	ev := a.logger.Info().Stringer("bindings", summary).Float32("min_elapsed_time", cfg.MinElapsedTime)
	if summary.Changed() {
		a.logger.Debug().Str("diff", diffutil.Render(lines, false)).Msg("binding changes")
	}
	if err := errors.Join(errs...); err != nil {
		ev.Int("errors", len(errs)).Msg("configuration reloaded with errors")
		return err
	}
	ev.Msg("configuration reloaded")
	return nil
}

// warnRestartOnly logs settings that changed but cannot be applied live.
func (a *Application) warnRestartOnly(cfg *config.Config) {
	warn := func(field string) {
		a.logger.Warn().Str("setting", field).Msg("setting changed, restart to apply")
	}
	if cfg.Backend != a.cfg.Backend || cfg.ScriptPath != a.cfg.ScriptPath {
		warn("backend")
	}
	if cfg.QueueSize != a.cfg.QueueSize {
		warn("queue_size")
	}
	if cfg.PollInterval != a.cfg.PollInterval {
		warn("poll_interval")
	}
	if !slices.Equal(cfg.Sinks, a.cfg.Sinks) {
		warn("sinks")
	}
	if cfg.Logging != a.cfg.Logging {
		warn("logging")
	}
}

func (a *Application) boundLinesLocked() []string {
	lines := make([]string, 0, len(a.bound))
	for line := range a.bound {
		lines = append(lines, line)
	}
	slices.Sort(lines)
	return lines
}
