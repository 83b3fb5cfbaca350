package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/TanaroSch/hotkey-listener/internal/app"
	"github.com/TanaroSch/hotkey-listener/internal/config"
	"github.com/TanaroSch/hotkey-listener/internal/hotkey"
	"github.com/TanaroSch/hotkey-listener/internal/logging"
	"github.com/TanaroSch/hotkey-listener/internal/notify"
)

type runOptions struct {
	*options
	script  string
	noWatch bool
}

func newRunCommand(opts *options) *cobra.Command {
	ro := &runOptions{options: opts}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Listen for hotkeys until interrupted",
		Long: `Register every configured action and report them as they fire.

Runs until SIGINT or SIGTERM. With --script, key presses are read from a file
instead of the keyboard and the command exits when the script ends:

  # comment
  ControlLeft KeyS
  wait 300ms
  ShiftLeft PrintScreen`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return ro.run(ctx, cmd)
		},
	}
	cmd.Flags().StringVar(&ro.script, "script", "", "play key presses from this file instead of the keyboard")
	cmd.Flags().BoolVar(&ro.noWatch, "no-watch", false, "do not reload the config file on change")
	return cmd
}

func (ro *runOptions) run(ctx context.Context, cmd *cobra.Command) error {
	boot, err := ro.logger(cmd.ErrOrStderr(), nil)
	if err != nil {
		return err
	}
	m, cfg, err := ro.loadConfig(boot)
	if err != nil {
		return err
	}
	logger, err := ro.logger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}
	logger.Info().Str("version", ro.version).Str("config", m.Path()).Msg("hotkeyd starting")

	if ro.script != "" {
		cfg.Backend = hotkey.BackendScript
		cfg.ScriptPath = ro.script
	}

	backend, closeBackend, err := openBackend(cfg, logger)
	if err != nil {
		return fmt.Errorf("engine unavailable: %w", err)
	}
	defer closeBackend()

	sink, err := notify.FromNames(cfg.Sinks, config.AppName, logging.WithComponent(logger, "notify"))
	if err != nil {
		return err
	}

	var appOpts []app.Option
	if !ro.noWatch && ro.script == "" {
		appOpts = append(appOpts, app.WithConfigManager(m))
	}
	application, err := app.New(cfg, backend, sink, logger, appOpts...)
	if err != nil {
		return err
	}
	return application.Run(ctx)
}

// openBackend creates the configured backend. The returned func releases
// resources the backend does not own, such as an opened script file.
func openBackend(cfg *config.Config, logger zerolog.Logger) (hotkey.Backend, func(), error) {
	blog := logging.WithComponent(logger, "backend")
	if cfg.Backend != hotkey.BackendScript {
		b, err := hotkey.SelectBackend(cfg.Backend, blog)
		if err != nil {
			return nil, nil, err
		}
		return b, func() {}, nil
	}

	f, err := os.Open(cfg.ScriptPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open script: %w", err)
	}
	return hotkey.NewScriptBackend(f, blog), func() { _ = f.Close() }, nil
}
