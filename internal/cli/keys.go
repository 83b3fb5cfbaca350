package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TanaroSch/hotkey-listener/internal/hotkey"
	"github.com/TanaroSch/hotkey-listener/internal/keys"
)

func newKeysCommand() *cobra.Command {
	var backend string
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the key names usable in actions",
		Long: `List every key name accepted in the actions section of the config file.

With --backend, only the keys that backend can hook on this machine are listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := keys.All()
			if backend != "" {
				var err error
				list, err = hotkey.SupportedKeys(backend)
				if err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			for _, k := range list {
				fmt.Fprintln(out, k)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&backend, "backend", "", "only list keys supported by this backend")
	return cmd
}
