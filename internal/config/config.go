// Package config loads, validates and watches the daemon configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/TanaroSch/hotkey-listener/internal/keys"
	"github.com/TanaroSch/hotkey-listener/internal/logging"
)

// AppName names the config directory.
const AppName = "hotkey-listener"

// Supported sink names.
const (
	SinkLog       = "log"
	SinkNotify    = "notify"
	SinkClipboard = "clipboard"
)

var (
	validBackends = []string{"auto", "gohook", "legacy", "evdev", "script"}
	validSinks    = []string{SinkLog, SinkNotify, SinkClipboard}
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// ActionConfig binds an action name to key names.
type ActionConfig struct {
	Name string   `mapstructure:"name"`
	Keys []string `mapstructure:"keys"`
}

// LoggingConfig holds the logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config holds the daemon configuration
type Config struct {
	Backend          string         `mapstructure:"backend"`
	ScriptPath       string         `mapstructure:"script_path"`
	MinElapsedTime   float32        `mapstructure:"min_elapsed_time"`
	PollInterval     time.Duration  `mapstructure:"poll_interval"`
	MaxEventsPerTick int            `mapstructure:"max_events_per_tick"`
	QueueSize        int            `mapstructure:"queue_size"`
	Sinks            []string       `mapstructure:"sinks"`
	Logging          LoggingConfig  `mapstructure:"logging"`
	Actions          []ActionConfig `mapstructure:"actions"`
}

// DefaultConfig returns the built-in defaults, without actions.
func DefaultConfig() *Config {
	return &Config{
		Backend:          "auto",
		MinElapsedTime:   0.2,
		PollInterval:     5 * time.Millisecond,
		MaxEventsPerTick: 64,
		QueueSize:        256,
		Sinks:            []string{SinkLog},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// exampleActions seed a freshly created config file.
var exampleActions = []ActionConfig{
	{Name: "Save", Keys: []string{"ControlLeft", "KeyS"}},
	{Name: "Screenshot", Keys: []string{"ShiftLeft", "PrintScreen"}},
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(dir, AppName, "config.yaml"), nil
}

// Validate checks every field and every action. Key names must parse and no
// (name, key set) pair may repeat.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if !slices.Contains(validBackends, c.Backend) {
		add("backend %q is not one of %v", c.Backend, validBackends)
	}
	if c.Backend == "script" && c.ScriptPath == "" {
		add("backend \"script\" needs script_path")
	}
	if c.MinElapsedTime < 0 {
		add("min_elapsed_time must not be negative, got %v", c.MinElapsedTime)
	}
	if c.PollInterval <= 0 {
		add("poll_interval must be positive, got %s", c.PollInterval)
	}
	if c.MaxEventsPerTick < 0 {
		add("max_events_per_tick must not be negative, got %d", c.MaxEventsPerTick)
	}
	if c.QueueSize <= 0 {
		add("queue_size must be positive, got %d", c.QueueSize)
	}
	for _, s := range c.Sinks {
		if !slices.Contains(validSinks, s) {
			add("sink %q is not one of %v", s, validSinks)
		}
	}
	if _, err := logging.FromStrings(c.Logging.Level, c.Logging.Format); err != nil {
		add("logging: %w", err)
	}

	seen := make(map[string]bool, len(c.Actions))
	for i, a := range c.Actions {
		if a.Name == "" {
			add("actions[%d]: name is empty", i)
		}
		if len(a.Keys) == 0 {
			add("actions[%d] %q: no keys", i, a.Name)
			continue
		}
		set, err := keys.ParseAll(a.Keys)
		if err != nil {
			add("actions[%d] %q: %w", i, a.Name, err)
			continue
		}
		id := a.Name + "@" + set.ID()
		if seen[id] {
			add("actions[%d] %q: duplicate of an earlier action over %s", i, a.Name, set)
		}
		seen[id] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Sinks = slices.Clone(c.Sinks)
	out.Actions = make([]ActionConfig, len(c.Actions))
	for i, a := range c.Actions {
		out.Actions[i] = ActionConfig{Name: a.Name, Keys: slices.Clone(a.Keys)}
	}
	return &out
}
