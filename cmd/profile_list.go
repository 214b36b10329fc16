package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PolarWolf314/tokn/internal/profiles"
	"github.com/PolarWolf314/tokn/internal/ui"
	"github.com/spf13/cobra"
)

var listJSON bool

func init() {
	profileListCmd.Flags().BoolVar(&listJSON, "json", false, "print profiles as JSON")
}

var profileListCmd = &cobra.Command{
	Use:   "list [pattern]",
	Short: "List profiles, optionally filtered by a glob pattern",
	Long: `Lists stored profiles sorted by name. The optional pattern is matched
case-insensitively and supports *, ?, [...] and {a,b}.

Examples:
  tokn profile list
  tokn profile list 'prod-*'
  tokn profile list --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(Logger)
		if err != nil {
			return err
		}

		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}

		list, err := env.Repo.List(cmd.Context(), pattern)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if listJSON {
			if list == nil {
				list = []profiles.AuthProfile{}
			}
			data, err := json.MarshalIndent(list, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if len(list) == 0 {
			fmt.Fprintf(out, "No profiles found. Create one with %s\n", ui.Code.Sprint("tokn profile create <name>"))
			return nil
		}

		for _, p := range list {
			marker := " "
			if profiles.SameName(p.Name, env.Config.Profiles.Default) {
				marker = ui.Success.Sprint("*")
			}
			fmt.Fprintf(out, "%s %s  %s  %s\n", marker, ui.Highlight.Sprint(p.Name), p.AuthMethod, ui.Muted.Sprint(scopeSummary(p)))
		}
		return nil
	},
}

func scopeSummary(p profiles.AuthProfile) string {
	if len(p.Scopes) > 0 {
		return strings.Join(p.Scopes, " ")
	}
	if p.Resource != "" {
		return p.Resource + " (resource)"
	}
	return "no scopes"
}
