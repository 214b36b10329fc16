package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/tokn/internal/errors"
	"github.com/PolarWolf314/tokn/internal/profiles"
	"github.com/PolarWolf314/tokn/internal/secrets"
	"github.com/PolarWolf314/tokn/internal/ui"
	"github.com/spf13/cobra"
)

var showJSON bool

func init() {
	profileShowCmd.Flags().BoolVar(&showJSON, "json", false, "print the profile as JSON")
}

// profileView is the JSON shape of `profile show --json`. Secret presence
// is reported, never secret values.
type profileView struct {
	profiles.AuthProfile
	Secrets map[secrets.SecretType]bool `json:"secrets"`
}

func (v profileView) MarshalJSON() ([]byte, error) {
	profile, err := json.Marshal(v.AuthProfile)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(profile, &fields); err != nil {
		return nil, err
	}
	present, err := json.Marshal(v.Secrets)
	if err != nil {
		return nil, err
	}
	fields["secrets"] = present
	return json.Marshal(fields)
}

var profileShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a profile and which secrets it has",
	Long: `Prints a profile's fields and whether its secrets are stored. Secret
values are never printed. Without a name, the default profile is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(Logger)
		if err != nil {
			return err
		}
		name, err := profileNameArg(env, args)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		profile, ok, err := env.Repo.Get(ctx, name)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", kerrors.ErrProfileNotFound, name)
		}

		view := profileView{AuthProfile: profile, Secrets: map[secrets.SecretType]bool{}}
		for _, secretType := range secrets.SecretTypes {
			has, err := env.Repo.HasSecret(ctx, profile.Name, secretType)
			if err != nil {
				return err
			}
			view.Secrets[secretType] = has
		}

		out := cmd.OutOrStdout()
		if showJSON {
			data, err := json.MarshalIndent(view, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		const width = 20
		flow := ""
		if profile.DefaultFlow != nil {
			flow = profile.DefaultFlow.String()
		}
		fmt.Fprintf(out, "Profile %s\n", ui.Highlight.Sprint(profile.Name))
		fmt.Fprintln(out, ui.Field("tenant", width, profile.TenantID))
		fmt.Fprintln(out, ui.Field("client id", width, profile.ClientID))
		fmt.Fprintln(out, ui.Field("scopes", width, strings.Join(profile.Scopes, " ")))
		if profile.Resource != "" {
			fmt.Fprintln(out, ui.Field("resource", width, profile.Resource))
		}
		fmt.Fprintln(out, ui.Field("auth method", width, profile.AuthMethod.String()))
		fmt.Fprintln(out, ui.Field("redirect uri", width, profile.RedirectURI))
		fmt.Fprintln(out, ui.Field("certificate", width, profile.CertificatePath))
		fmt.Fprintln(out, ui.Field("cache cert password", width, fmt.Sprint(profile.CacheCertificatePassword)))
		fmt.Fprintln(out, ui.Field("default flow", width, flow))
		fmt.Fprintln(out, ui.Field("client secret", width, presence(view.Secrets[secrets.SecretTypeClientSecret])))
		fmt.Fprintln(out, ui.Field("cert password", width, presence(view.Secrets[secrets.SecretTypeCertPassword])))
		fmt.Fprintln(out, ui.Field("created", width, formatTime(profile.CreatedAt())))
		fmt.Fprintln(out, ui.Field("updated", width, formatTime(profile.UpdatedAt())))
		return nil
	},
}

func presence(stored bool) string {
	if stored {
		return ui.Success.Sprint("stored")
	}
	return ""
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(time.RFC3339)
}
