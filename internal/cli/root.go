// Package cli provides the cobra commands of hotkeyd.
package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/TanaroSch/hotkey-listener/internal/config"
	"github.com/TanaroSch/hotkey-listener/internal/logging"
)

// options holds the persistent flags.
type options struct {
	configPath string
	logLevel   string
	logFormat  string
	version    string
}

// NewRootCommand builds the command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &options{version: version}

	root := &cobra.Command{
		Use:   "hotkeyd",
		Short: "Listen for global key combinations and report matching actions",
		Long: `hotkeyd watches the keyboard for configured key combinations.

An action fires when every key of its combination was pressed within
min_elapsed_time seconds of the others. Fired actions go to the configured
sinks: the log, a desktop notification or the clipboard.

The configuration file is created with examples on first start and reloaded
whenever it changes.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/hotkey-listener/config.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: console or json")

	root.AddCommand(newRunCommand(opts))
	root.AddCommand(newCheckCommand(opts))
	root.AddCommand(newKeysCommand())

	return root
}

// loadConfig reads the configuration through a manager.
func (o *options) loadConfig(logger zerolog.Logger) (*config.Manager, *config.Config, error) {
	m, err := config.NewManager(o.configPath, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := m.Load(); err != nil {
		return nil, nil, err
	}
	return m, m.Get(), nil
}

// logger builds the logger from flags, falling back to cfg, then defaults.
// A nil cfg gives the bootstrap logger used while the config loads.
func (o *options) logger(w io.Writer, cfg *config.Config) (zerolog.Logger, error) {
	level, format := o.logLevel, o.logFormat
	if cfg != nil {
		if level == "" {
			level = cfg.Logging.Level
		}
		if format == "" {
			format = cfg.Logging.Format
		}
	}
	lc, err := logging.FromStrings(level, format)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid logging flags: %w", err)
	}
	lc.Output = w
	return logging.New(lc), nil
}
