package cmd

import (
	"fmt"

	"github.com/PolarWolf314/tokn/internal/secrets"
	"github.com/PolarWolf314/tokn/internal/ui"
	"github.com/PolarWolf314/tokn/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	secretCertPassword bool
	secretStdin        bool
)

func init() {
	for _, c := range []*cobra.Command{profileSecretSetCmd, profileSecretClearCmd} {
		c.Flags().BoolVar(&secretCertPassword, "cert-password", false, "act on the certificate password instead of the client secret")
	}
	profileSecretSetCmd.Flags().BoolVar(&secretStdin, "stdin", false, "read the value from stdin instead of prompting")

	profileSecretCmd.AddCommand(profileSecretSetCmd)
	profileSecretCmd.AddCommand(profileSecretClearCmd)
}

func selectedSecretType() secrets.SecretType {
	if secretCertPassword {
		return secrets.SecretTypeCertPassword
	}
	return secrets.SecretTypeClientSecret
}

var profileSecretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Set or clear a profile's stored secret",
}

var profileSecretSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Store the client secret or certificate password of a profile",
	Long: `Stores a secret for an existing profile, replacing any previous value.
The value is read from a hidden prompt, or from stdin with --stdin.

Examples:
  tokn profile secret set svc
  vault read -field=secret kv/svc | tokn profile secret set svc --stdin
  tokn profile secret set worker --cert-password`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secretType := selectedSecretType()
		value, err := readSecret(secretLabel(secretType)+": ", secretStdin)
		if err != nil {
			return err
		}

		env, err := openEnv(Logger)
		if err != nil {
			return err
		}

		result, err := workflows.SetSecret(cmd.Context(), env, workflows.SecretOptions{
			Name:  args[0],
			Type:  secretType,
			Value: value,
		})
		if err != nil {
			return err
		}

		verb := "stored"
		if result.Existed {
			verb = "replaced"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s of %s %s\n", ui.Success.Sprint("✓"), secretLabel(secretType), ui.Highlight.Sprint(result.Name), verb)
		printProblems(cmd, result.Problems)
		return nil
	},
}

var profileSecretClearCmd = &cobra.Command{
	Use:   "clear <name>",
	Short: "Delete the client secret or certificate password of a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(Logger)
		if err != nil {
			return err
		}

		secretType := selectedSecretType()
		result, err := workflows.ClearSecret(cmd.Context(), env, workflows.SecretOptions{Name: args[0], Type: secretType})
		if err != nil {
			return err
		}

		if !result.Existed {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s had no %s stored\n", ui.Info.Sprint("→"), ui.Highlight.Sprint(result.Name), secretLabel(secretType))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s of %s deleted\n", ui.Success.Sprint("✓"), secretLabel(secretType), ui.Highlight.Sprint(result.Name))
		return nil
	},
}
