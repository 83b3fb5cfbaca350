package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/TanaroSch/hotkey-listener/internal/logging"
)

// EnvPrefix is the prefix of environment overrides, e.g. HOTKEYS_BACKEND.
const EnvPrefix = "HOTKEYS"

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	path      string
	logger    zerolog.Logger
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a manager for the file at path. An empty path means
// DefaultConfigPath.
func NewManager(path string, logger zerolog.Logger) (*Manager, error) {
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", EnvPrefix+"_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind %s_LOG_LEVEL: %w", EnvPrefix, err)
	}
	if err := v.BindEnv("logging.format", EnvPrefix+"_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind %s_LOG_FORMAT: %w", EnvPrefix, err)
	}

	return &Manager{
		viper:  v,
		path:   path,
		logger: logging.WithComponent(logger, "config"),
	}, nil
}

// Load reads, validates and stores the configuration. A missing file is
// created with defaults and example actions first.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	setDefaults(m.viper)

	if err := m.viper.ReadInConfig(); err != nil {
		if !isNotFound(err) {
			return fmt.Errorf("failed to read config file at %s: %w", m.path, err)
		}
		if createErr := CreateDefaultConfig(m.path); createErr != nil {
			return fmt.Errorf("config file not found and failed to create default %s: %w", m.path, createErr)
		}
		m.logger.Info().Str("path", m.path).Msg("created default configuration file")
		if err := m.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read newly created config file %s: %w", m.path, err)
		}
	}

	cfg, err := m.decode()
	if err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return DefaultConfig()
	}
	return m.config.Clone()
}

// Path returns the config file path.
func (m *Manager) Path() string {
	return m.path
}

// OnConfigChange registers a callback function to be called when config changes.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, callback)
}

// Watch starts watching the config file for changes and reloads automatically.
// Invalid edits are logged and ignored; the last good configuration stays.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}

	m.viper.OnConfigChange(func(e fsnotify.Event) {
		m.logger.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config change detected")
		m.handleChange()
	})
	m.viper.WatchConfig()

	m.watching = true
	return nil
}

// handleChange reloads and notifies callbacks outside the lock.
func (m *Manager) handleChange() {
	m.mu.Lock()
	if err := m.reload(); err != nil {
		m.mu.Unlock()
		m.logger.Warn().Err(err).Msg("failed to reload config, keeping previous")
		return
	}
	cfg := m.config.Clone()
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, callback := range callbacks {
		callback(cfg)
	}
}

// reload must be called with m.mu held.
func (m *Manager) reload() error {
	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}
	cfg, err := m.decode()
	if err != nil {
		return err
	}
	m.config = cfg
	return nil
}

func (m *Manager) decode() (*Config, error) {
	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file at %s: %w", m.path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("backend", d.Backend)
	v.SetDefault("script_path", d.ScriptPath)
	v.SetDefault("min_elapsed_time", d.MinElapsedTime)
	v.SetDefault("poll_interval", d.PollInterval)
	v.SetDefault("max_events_per_tick", d.MaxEventsPerTick)
	v.SetDefault("queue_size", d.QueueSize)
	v.SetDefault("sinks", d.Sinks)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// CreateDefaultConfig creates a default configuration file if none exists
func CreateDefaultConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return nil // File exists, don't overwrite
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("error checking config path '%s': %w", configPath, err)
	}

	if filepath.Ext(configPath) == "" {
		return fmt.Errorf("cannot create '%s': config file needs an extension such as .yaml", configPath)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	// viper writes durations as integers; keep the file readable.
	v.Set("poll_interval", DefaultConfig().PollInterval.String())
	actions := make([]map[string]any, 0, len(exampleActions))
	for _, a := range exampleActions {
		actions = append(actions, map[string]any{"name": a.Name, "keys": a.Keys})
	}
	v.Set("actions", actions)

	if err := v.SafeWriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write default config file '%s': %w", configPath, err)
	}
	return os.Chmod(configPath, 0o600)
}
