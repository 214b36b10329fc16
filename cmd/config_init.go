package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/tokn/internal/configs"
	"github.com/PolarWolf314/tokn/internal/ui"
	"github.com/spf13/cobra"
)

var (
	initForce          bool
	initServiceName    string
	initIncludeSecrets bool
)

func init() {
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config.toml")
	configInitCmd.Flags().StringVar(&initServiceName, "service-name", configs.DefaultServiceName, "keychain service name and secret key prefix")
	configInitCmd.Flags().BoolVar(&initIncludeSecrets, "include-secrets", false, "export secrets by default")
}

func resetConfigInitState() {
	initForce = false
	initServiceName = configs.DefaultServiceName
	initIncludeSecrets = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create config.toml and the tokn directories",
	Long: `Writes config.toml with default settings and creates the tokn config
and data directories with user-only permissions.

Changing the service name later hides secrets stored under the old name.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := configs.ToknSettings
		ConfigLogger.Infof("Initializing configuration at %s", settings.ConfigPath)

		if _, err := os.Stat(settings.ConfigPath); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use %s to overwrite)", settings.ConfigPath, ui.Flag.Sprint("--force"))
		}

		if err := settings.EnsureDirectories(); err != nil {
			return ConfigLogger.ErrorfAndReturn("creating directories: %v", err)
		}

		config := configs.Defaults()
		config.Vault.ServiceName = initServiceName
		config.Export.IncludeSecrets = initIncludeSecrets
		if err := configs.SaveUserConfig(settings, config); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", ui.Success.Sprint("✓"), ui.Path.Sprint(settings.ConfigPath))
		return nil
	},
}
