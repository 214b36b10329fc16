package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/tokn/internal/configs"
	"github.com/PolarWolf314/tokn/internal/ui"
	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "print as JSON")
}

type configView struct {
	ConfigPath   string             `json:"config_path"`
	ProfilesPath string             `json:"profiles_path"`
	SecretsPath  string             `json:"secrets_path"`
	AuditPath    string             `json:"audit_path"`
	Config       *configs.UserConfig `json:"config"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show file locations and effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := configs.ToknSettings
		config, err := configs.LoadUserConfig(settings)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if configShowJSON {
			data, err := json.MarshalIndent(configView{
				ConfigPath:   settings.ConfigPath,
				ProfilesPath: settings.ProfilesPath,
				SecretsPath:  settings.SecretsPath,
				AuditPath:    settings.AuditPath,
				Config:       config,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		const width = 16
		fmt.Fprintln(out, "Locations")
		fmt.Fprintln(out, ui.Field("config", width, ui.Path.Sprint(settings.ConfigPath)))
		fmt.Fprintln(out, ui.Field("profiles", width, ui.Path.Sprint(settings.ProfilesPath)))
		fmt.Fprintln(out, ui.Field("secret files", width, ui.Path.Sprint(settings.SecretsPath)))
		fmt.Fprintln(out, ui.Field("audit log", width, ui.Path.Sprint(settings.AuditPath)))
		fmt.Fprintln(out, "Settings")
		fmt.Fprintln(out, ui.Field("service name", width, config.Vault.ServiceName))
		fmt.Fprintln(out, ui.Field("keychain command", width, config.Vault.KeychainCommand))
		fmt.Fprintln(out, ui.Field("export secrets", width, fmt.Sprint(config.Export.IncludeSecrets)))
		fmt.Fprintln(out, ui.Field("default profile", width, config.Profiles.Default))
		return nil
	},
}
