package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/tokn/internal/secrets"
	"github.com/PolarWolf314/tokn/internal/ui"
	"github.com/PolarWolf314/tokn/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	exportOutputPath     string
	exportIncludeSecrets bool
	exportPassphraseEnv  string
	exportSecrets        []string
)

func init() {
	profileExportCmd.Flags().StringVarP(&exportOutputPath, "output", "o", "", "write the artifact to a file instead of stdout")
	profileExportCmd.Flags().BoolVar(&exportIncludeSecrets, "include-secrets", false, "include stored secrets (default from config.toml)")
	profileExportCmd.Flags().StringSliceVar(&exportSecrets, "secret", nil, "include only this stored secret and fail if it is missing: secret or cert-password (repeatable)")
	profileExportCmd.Flags().StringVar(&exportPassphraseEnv, "passphrase-env", "", "read the passphrase from this environment variable")
}

var profileExportCmd = &cobra.Command{
	Use:   "export [name]",
	Short: "Export a profile as a passphrase-protected artifact",
	Long: `Encrypts a profile (and, with --include-secrets, its stored secrets)
under a passphrase. The artifact is a single base64 line that can be
imported on another machine with 'tokn profile import'.

Examples:
  # Print the artifact
  tokn profile export svc

  # Write it to a file together with the client secret
  tokn profile export svc --include-secrets -o svc.tokn

  # Require the cached certificate password to travel along
  tokn profile export worker --secret cert-password -o worker.tokn`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting export command")

		env, err := openEnv(Logger)
		if err != nil {
			return err
		}
		name, err := profileNameArg(env, args)
		if err != nil {
			return err
		}

		includeSecrets := env.Config.Export.IncludeSecrets
		if cmd.Flags().Changed("include-secrets") {
			includeSecrets = exportIncludeSecrets
		}

		var secretTypes []secrets.SecretType
		for _, name := range exportSecrets {
			secretType, err := secrets.ParseSecretType(name)
			if err != nil {
				return err
			}
			secretTypes = append(secretTypes, secretType)
		}

		passphrase, err := passphraseFromEnvOr(exportPassphraseEnv, func() (string, error) {
			return readNewPassphrase(false)
		})
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner(cmd, "Encrypting profile...", verbose, debug)
		defer cleanup()

		result, err := workflows.Export(cmd.Context(), env, workflows.ExportOptions{
			Name:           name,
			Passphrase:     passphrase,
			IncludeSecrets: includeSecrets,
			Secrets:        secretTypes,
			OutputPath:     exportOutputPath,
		})
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Export failed"
			return err
		}

		if result.OutputPath == "" {
			// Stop the spinner before the artifact goes to stdout.
			cleanup()
			fmt.Fprintln(cmd.OutOrStdout(), result.Artifact)
			fmt.Fprintf(cmd.ErrOrStderr(), "%s Exported %s (%d secret(s) included)\n", ui.Success.Sprint("✓"), ui.Highlight.Sprint(result.Name), len(result.IncludedSecrets))
			return nil
		}

		spinner.FinalMSG = fmt.Sprintf("%s Exported %s to %s (%d secret(s) included)",
			ui.Success.Sprint("✓"), ui.Highlight.Sprint(result.Name), ui.Path.Sprint(result.OutputPath), len(result.IncludedSecrets))
		return nil
	},
}

// passphraseFromEnvOr reads the passphrase from the named variable, or calls
// prompt when no variable is named.
func passphraseFromEnvOr(envName string, prompt func() (string, error)) (string, error) {
	if envName == "" {
		return prompt()
	}
	value, ok := os.LookupEnv(envName)
	if !ok || value == "" {
		return "", fmt.Errorf("environment variable %s is not set", envName)
	}
	return value, nil
}
