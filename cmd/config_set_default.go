package cmd

import (
	"fmt"

	"github.com/PolarWolf314/tokn/internal/configs"
	kerrors "github.com/PolarWolf314/tokn/internal/errors"
	"github.com/PolarWolf314/tokn/internal/ui"
	"github.com/spf13/cobra"
)

var configSetDefaultCmd = &cobra.Command{
	Use:   "set-default <name>",
	Short: "Set the profile used when a command omits the name",
	Long: `Stores the default profile in config.toml. The profile must exist.
Pass an empty string to clear the default.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(ConfigLogger)
		if err != nil {
			return err
		}

		name := args[0]
		if name != "" {
			profile, ok, err := env.Repo.Get(cmd.Context(), name)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", kerrors.ErrProfileNotFound, name)
			}
			name = profile.Name
		}

		env.Config.Profiles.Default = name
		if err := configs.SaveUserConfig(env.Settings, env.Config); err != nil {
			return err
		}

		if name == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s Default profile cleared\n", ui.Success.Sprint("✓"))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Default profile set to %s\n", ui.Success.Sprint("✓"), ui.Highlight.Sprint(name))
		return nil
	},
}
