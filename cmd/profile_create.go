package cmd

import (
	"errors"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/tokn/internal/errors"
	"github.com/PolarWolf314/tokn/internal/profiles"
	"github.com/PolarWolf314/tokn/internal/secrets"
	"github.com/PolarWolf314/tokn/internal/ui"
	"github.com/PolarWolf314/tokn/internal/workflows"
	"github.com/spf13/cobra"
)

var createFields profileFields

func init() {
	createFields.register(profileCreateCmd)
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new authentication profile",
	Long: `Creates a profile and optionally stores its secret.

Secrets are never accepted as arguments. Use --with-secret to be prompted,
or --secret-stdin to pipe the value in.

Examples:
  # Confidential client with a shared secret
  tokn profile create svc --tenant contoso.onmicrosoft.com \
    --client-id 04b07795-8ddb-461a-bbee-02f9e1bf7b46 \
    --scope https://graph.microsoft.com/.default --with-secret

  # Certificate-based client
  tokn profile create worker --tenant 72f988bf-86f1-41af-91ab-2d7cd011db47 \
    --client-id 04b07795-8ddb-461a-bbee-02f9e1bf7b46 --scope api://backend/.default \
    --method certificate --certificate ./worker.pfx --with-cert-password`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting create command")

		certificate, err := createFields.absCertificate()
		if err != nil {
			return Logger.ErrorfAndReturn("resolving certificate path: %v", err)
		}

		profile := profiles.AuthProfile{
			Name:                     args[0],
			TenantID:                 createFields.tenant,
			ClientID:                 createFields.clientID,
			Scopes:                   createFields.scopes,
			Resource:                 createFields.resource,
			AuthMethod:               createFields.method,
			RedirectURI:              createFields.redirectURI,
			CertificatePath:          certificate,
			CacheCertificatePassword: createFields.cacheCertPassword,
		}
		if cmd.Flags().Changed("flow") {
			flow := createFields.flow
			profile.DefaultFlow = &flow
		}

		clientSecret, certPassword, err := createFields.secrets(profile.AuthMethod)
		if err != nil {
			return err
		}

		env, err := openEnv(Logger)
		if err != nil {
			return err
		}

		result, err := workflows.Create(cmd.Context(), env, workflows.CreateOptions{
			Profile:      profile,
			ClientSecret: clientSecret,
			CertPassword: certPassword,
		})
		if err != nil {
			if errors.Is(err, kerrors.ErrProfileExists) {
				return fmt.Errorf("profile %s already exists; use %s to change it", ui.Highlight.Sprint(args[0]), ui.Code.Sprint("tokn profile edit"))
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s Profile %s created\n", ui.Success.Sprint("✓"), ui.Highlight.Sprint(result.Profile.Name))
		printStoredSecrets(cmd, result.StoredSecrets, env.Backend.Kind())
		printProblems(cmd, result.Problems)
		return nil
	},
}

func printStoredSecrets(cmd *cobra.Command, stored []secrets.SecretType, kind secrets.Kind) {
	for _, secretType := range stored {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s stored in %s\n", secretLabel(secretType), kind.Description())
	}
}

func printProblems(cmd *cobra.Command, problems []string) {
	if len(problems) == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s The profile is not usable yet:\n", ui.Warning.Sprint("⚠"))
	for _, problem := range problems {
		fmt.Fprintf(out, "    - %s\n", problem)
	}
}

func secretLabel(secretType secrets.SecretType) string {
	switch secretType {
	case secrets.SecretTypeClientSecret:
		return "Client secret"
	case secrets.SecretTypeCertPassword:
		return "Certificate password"
	default:
		return strings.ToUpper(string(secretType[:1])) + string(secretType[1:])
	}
}
