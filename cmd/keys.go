package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/deck/cli"
	"github.com/grovetools/deck/tui/components/table"
	"github.com/grovetools/deck/tui/deckui"
	"github.com/spf13/cobra"
)

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the composer's keybindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bindings := deckui.DefaultKeyMap.Bindings()
			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(bindings)
			}
			rows := make([][]string, len(bindings))
			for i, b := range bindings {
				rows[i] = []string{b.Key, b.Action}
			}
			fmt.Fprintln(out, table.SimpleTable([]string{"KEY", "ACTION"}, rows))
			return nil
		},
	}
}
