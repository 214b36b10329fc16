package cmd

import (
	logger "github.com/PolarWolf314/tokn/internal/logging"
	"github.com/spf13/cobra"
)

var (
	configVerbose bool
	configDebug   bool
	ConfigLogger  logger.Logger

	// ConfigCmd is the top-level config command.
	ConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage tokn configuration",
		Long: `Provides commands for the optional config.toml file.

Examples:
  # Write a config.toml with the defaults
  tokn config init

  # Show file locations and settings
  tokn config show

  # Use "svc" when a command omits the profile name
  tokn config set-default svc`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ConfigLogger = logger.Logger{
				Verbose: configVerbose,
				Debug:   configDebug,
			}
			ConfigLogger.Debugf("Initializing config command with verbose=%t, debug=%t", configVerbose, configDebug)
		},
	}
)

func init() {
	ConfigCmd.PersistentFlags().BoolVarP(&configVerbose, "verbose", "v", false, "enable verbose output")
	ConfigCmd.PersistentFlags().BoolVarP(&configDebug, "debug", "d", false, "enable debug output")

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configSetDefaultCmd)
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}

// ResetConfigState resets all config command globals for testing.
func ResetConfigState() {
	configVerbose = false
	configDebug = false
	resetConfigInitState()
	configShowJSON = false
	resetCobraFlagState(ConfigCmd)
}
