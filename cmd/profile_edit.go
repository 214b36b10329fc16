package cmd

import (
	"fmt"

	"github.com/PolarWolf314/tokn/internal/ui"
	"github.com/PolarWolf314/tokn/internal/workflows"
	"github.com/spf13/cobra"
)

var editFields profileFields

func init() {
	editFields.register(profileEditCmd)
	profileEditCmd.Flags().BoolVar(&editFields.noFlow, "no-flow", false, "clear the default flow")
}

var profileEditCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Change fields or secrets of a profile",
	Long: `Updates the given fields of an existing profile. Fields without a flag
keep their value.

Switching to a certificate method removes the stored client secret;
switching away from certificates removes the cached certificate password.

Examples:
  # Replace the scopes
  tokn profile edit svc --scope api://backend/.default

  # Rotate the client secret
  tokn profile edit svc --with-secret`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting edit command")

		env, err := openEnv(Logger)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		opts := workflows.EditOptions{Name: args[0], ClearDefaultFlow: editFields.noFlow}
		if flags.Changed("tenant") {
			opts.TenantID = &editFields.tenant
		}
		if flags.Changed("client-id") {
			opts.ClientID = &editFields.clientID
		}
		if flags.Changed("scope") {
			opts.Scopes = append([]string{}, editFields.scopes...)
		}
		if flags.Changed("resource") {
			opts.Resource = &editFields.resource
		}
		if flags.Changed("method") {
			opts.AuthMethod = &editFields.method
		}
		if flags.Changed("redirect-uri") {
			opts.RedirectURI = &editFields.redirectURI
		}
		if flags.Changed("certificate") {
			certificate, err := editFields.absCertificate()
			if err != nil {
				return Logger.ErrorfAndReturn("resolving certificate path: %v", err)
			}
			opts.CertificatePath = &certificate
		}
		if flags.Changed("cache-cert-password") {
			opts.CacheCertificatePassword = &editFields.cacheCertPassword
		}
		if flags.Changed("flow") {
			opts.DefaultFlow = &editFields.flow
		}

		method := editFields.method
		if opts.AuthMethod == nil {
			current, ok, err := env.Repo.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if ok {
				method = current.AuthMethod
			}
		}
		if opts.ClientSecret, opts.CertPassword, err = editFields.secrets(method); err != nil {
			return err
		}

		result, err := workflows.Edit(cmd.Context(), env, opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s Profile %s updated\n", ui.Success.Sprint("✓"), ui.Highlight.Sprint(result.Profile.Name))
		printStoredSecrets(cmd, result.StoredSecrets, env.Backend.Kind())
		for _, removed := range result.RemovedSecrets {
			fmt.Fprintf(out, "  %s removed (no longer used)\n", secretLabel(removed))
		}
		printProblems(cmd, result.Problems)
		return nil
	},
}
