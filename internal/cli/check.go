package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/TanaroSch/hotkey-listener/internal/app"
	"github.com/TanaroSch/hotkey-listener/internal/config"
	"github.com/TanaroSch/hotkey-listener/internal/diffutil"
)

func newCheckCommand(opts *options) *cobra.Command {
	var against string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the config file and print its bindings",
		Long: `Validate the config file and print every action with its canonical key set.

With --against, print how the bindings of another config file differ from
this one, as a reload would apply them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := opts.logger(cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}
			m, cfg, err := opts.loadConfig(logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printConfig(out, m.Path(), cfg)
			if against == "" {
				return nil
			}

			if _, err := os.Stat(against); err != nil {
				return fmt.Errorf("cannot compare: %w", err)
			}
			other, err := config.NewManager(against, logger)
			if err != nil {
				return err
			}
			if err := other.Load(); err != nil {
				return err
			}
			lines, summary := diffutil.BindingDiff(app.BindingLines(cfg.Actions), app.BindingLines(other.Get().Actions))
			fmt.Fprintf(out, "\nchanges against %s (%s):\n", against, summary)
			fmt.Fprint(out, diffutil.Render(lines, false))
			return nil
		},
	}
	cmd.Flags().StringVar(&against, "against", "", "config file to compare bindings with")
	return cmd
}

func printConfig(w io.Writer, path string, cfg *config.Config) {
	fmt.Fprintf(w, "config:           %s\n", path)
	fmt.Fprintf(w, "backend:          %s\n", cfg.Backend)
	fmt.Fprintf(w, "min_elapsed_time: %gs\n", cfg.MinElapsedTime)
	fmt.Fprintf(w, "sinks:            %v\n", cfg.Sinks)
	fmt.Fprintf(w, "actions:          %d\n", len(cfg.Actions))
	for _, line := range app.BindingLines(cfg.Actions) {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
