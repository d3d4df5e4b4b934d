package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/grovetools/deck/cli"
	"github.com/grovetools/deck/config"
	"github.com/grovetools/deck/logging"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect deck configuration",
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSchemaCmd())
	cmd.AddCommand(newConfigValidateCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the layered configuration for the current directory",
		Long: `Shows how the final configuration is built by merging layers:
1. Global config (~/.config/deck/deck.yml)
2. Project config (deck.yml, found from the current directory upward)
3. Override files (deck.override.yml)
This is useful for debugging configuration issues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if path := cli.GetOptions(cmd).ConfigFile; path != "" {
				cfg, err := config.Load(path)
				if err != nil {
					return err
				}
				return printLayer(out, "CONFIG", path, cfg)
			}

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			layered, err := config.LoadLayered(cwd)
			if err != nil {
				return err
			}

			layers := []configLayer{
				{"GLOBAL CONFIG", layered.FilePaths[config.SourceGlobal], layered.Global},
				{"PROJECT CONFIG", layered.FilePaths[config.SourceProject], layered.Project},
			}
			for _, o := range layered.Overrides {
				layers = append(layers, configLayer{"OVERRIDE CONFIG", o.Path, o.Config})
			}
			for _, l := range layers {
				if err := printLayer(out, l.title, l.path, l.cfg); err != nil {
					return err
				}
			}
			return printLayer(out, "FINAL MERGED CONFIG", "", layered.Final)
		},
	}
}

type configLayer struct {
	title string
	path  string
	cfg   *config.Config
}

func printLayer(out io.Writer, title, path string, cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	fmt.Fprintf(out, "--- # %s\n", title)
	if path != "" {
		fmt.Fprintf(out, "# Source: %s\n", path)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of deck.yml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and report problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			if _, err := loadCatalog(cfg); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				return json.NewEncoder(out).Encode(map[string]bool{"valid": true})
			}
			logging.NewPrettyLogger().WithWriter(out).Success("Configuration is valid")
			return nil
		},
	}
}
