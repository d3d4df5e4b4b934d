// Package cmd holds the deck subcommands.
package cmd

import (
	"github.com/grovetools/deck/cli"
	"github.com/grovetools/deck/version"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the deck command tree. Without a subcommand deck starts
// the terminal composer.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"deck",
		"Compose a workspace of LLM web apps and open them side by side",
	)
	root.Long = `Compose a workspace of LLM web apps and open them side by side.

Pick platforms from the catalog, arrange them in a grid, then open the
whole workspace as browser tabs or as tiled popup windows.

Examples:
  # Start the composer
  deck

  # Open three platforms as tiled windows without asking
  deck open chatgpt claude gemini --popups --yes

  # Serve the composer over a websocket
  deck serve --addr 127.0.0.1:7777`
	root.Args = cobra.NoArgs
	root.RunE = runTUI

	info := version.GetInfo()
	cli.SetVersionTemplate(root, info)

	root.AddCommand(newTUICmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newLayoutCmd())
	root.AddCommand(newOpenCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newLogsCmd())
	root.AddCommand(newPathsCmd())
	root.AddCommand(newKeysCmd())
	root.AddCommand(cli.NewVersionCommand("deck", info))

	cli.ApplyStyledHelpRecursive(root)
	return root
}
