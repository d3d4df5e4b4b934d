package cli

import (
	"github.com/grovetools/deck/config"
	"github.com/grovetools/deck/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommandOptions holds the flags shared by every deck command.
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	JSONOutput bool
}

// NewStandardCommand creates a command carrying the standard deck flags.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to deck.yml config file")

	SetStyledHelp(cmd)

	return cmd
}

// GetLogger returns the component logger adjusted for --verbose and --json.
func GetLogger(cmd *cobra.Command, component string) *logrus.Entry {
	entry := logging.NewLogger(component)
	opts := GetOptions(cmd)
	if opts.Verbose {
		entry.Logger.SetLevel(logrus.DebugLevel)
	}
	if opts.JSONOutput {
		entry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return entry
}

// GetOptions extracts common options from a command.
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
	}
}

// LoadConfig loads the file named by --config, or the layered default
// configuration when the flag is empty.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path := GetOptions(cmd).ConfigFile; path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}
