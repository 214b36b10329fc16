package cmd

import (
	"fmt"

	"github.com/PolarWolf314/tokn/internal/configs"
	logger "github.com/PolarWolf314/tokn/internal/logging"
	"github.com/PolarWolf314/tokn/internal/workflows"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// ProfileCmd is the top-level profile command.
	ProfileCmd = &cobra.Command{
		Use:   "profile",
		Short: "Manage authentication profiles and their secrets",
		Long: `Creates, edits, validates, exports and imports authentication profiles.

Profile metadata lives in profiles.json in the tokn data directory. Client
secrets and certificate passwords are kept in the platform secret store
(DPAPI on Windows, the keychain on macOS, obfuscated files elsewhere) and
never appear in profiles.json.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing profile command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

// openEnv builds the workflow environment. Tests replace it to avoid the
// real secret store.
var openEnv = func(log logger.Logger) (*workflows.Env, error) {
	return workflows.OpenEnv(configs.ToknSettings, log)
}

func init() {
	ProfileCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	ProfileCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	ProfileCmd.AddCommand(profileCreateCmd)
	ProfileCmd.AddCommand(profileEditCmd)
	ProfileCmd.AddCommand(profileListCmd)
	ProfileCmd.AddCommand(profileShowCmd)
	ProfileCmd.AddCommand(profileRemoveCmd)
	ProfileCmd.AddCommand(profileValidateCmd)
	ProfileCmd.AddCommand(profileExportCmd)
	ProfileCmd.AddCommand(profileImportCmd)
	ProfileCmd.AddCommand(profileSecretCmd)
}

// profileNameArg returns the profile named on the command line, falling
// back to the configured default profile.
func profileNameArg(env *workflows.Env, args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if env.Config.Profiles.Default != "" {
		Logger.Infof("Using default profile %s", env.Config.Profiles.Default)
		return env.Config.Profiles.Default, nil
	}
	return "", fmt.Errorf("no profile given and no default profile configured (see 'tokn config set-default')")
}

// GetProfileCmd returns the ProfileCmd for testing.
func GetProfileCmd() *cobra.Command {
	return ProfileCmd
}

// ResetGlobalState resets all profile command globals for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetProfileFlagState()
	resetCobraFlagState(ProfileCmd)
}

// resetProfileFlagState resets the flag variables of every profile command.
func resetProfileFlagState() {
	createFields.reset()
	editFields.reset()
	listJSON = false
	showJSON = false
	validateJSON = false
	exportOutputPath = ""
	exportIncludeSecrets = false
	exportPassphraseEnv = ""
	exportSecrets = nil
	importName = ""
	importPassphraseEnv = ""
	secretCertPassword = false
	secretStdin = false
}

// resetCobraFlagState clears the Changed marks of every flag below root so
// edit-style commands do not see flags from a previous run.
func resetCobraFlagState(root *cobra.Command) {
	root.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, sub := range root.Commands() {
		resetCobraFlagState(sub)
	}
}
