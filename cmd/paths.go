package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grovetools/deck/cli"
	"github.com/grovetools/deck/config"
	"github.com/grovetools/deck/logging"
	"github.com/grovetools/deck/tui/components/table"
	"github.com/spf13/cobra"
)

// PathsOutput lists the files and directories deck reads and writes.
type PathsOutput struct {
	GlobalConfig  string `json:"global_config"`
	ProjectConfig string `json:"project_config,omitempty"`
	LogDir        string `json:"log_dir"`
	CatalogFile   string `json:"catalog_file,omitempty"`
}

func newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the paths used by deck",
		Long: `Print the paths used by deck:
- global_config: user-wide deck.yml (XDG_CONFIG_HOME)
- project_config: deck.yml found from the current directory upward
- log_dir: where component logs are written (XDG_STATE_HOME)
- catalog_file: external catalog from catalog.file, when set`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := PathsOutput{
				GlobalConfig: config.GlobalConfigPath(),
				LogDir:       logging.LogDir(),
			}
			if path := cli.GetOptions(cmd).ConfigFile; path != "" {
				output.ProjectConfig = path
			} else if cwd, err := os.Getwd(); err == nil {
				if found, err := config.FindConfigFile(cwd); err == nil {
					output.ProjectConfig = found
				}
			}
			if cfg, err := cli.LoadConfig(cmd); err == nil && cfg.Catalog.File != "" {
				output.CatalogFile, _ = filepath.Abs(cfg.Catalog.File)
			}

			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				data, err := json.MarshalIndent(output, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal paths to JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			fmt.Fprintln(out, table.StatusTable([][]string{
				{"global config", output.GlobalConfig},
				{"project config", orNone(output.ProjectConfig)},
				{"log dir", output.LogDir},
				{"catalog file", orNone(output.CatalogFile)},
			}))
			return nil
		},
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
