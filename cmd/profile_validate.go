package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/tokn/internal/ui"
	"github.com/PolarWolf314/tokn/internal/workflows"
	"github.com/spf13/cobra"
)

var validateJSON bool

func init() {
	profileValidateCmd.Flags().BoolVar(&validateJSON, "json", false, "print the report as JSON")
}

var profileValidateCmd = &cobra.Command{
	Use:   "validate [name]",
	Short: "Check profiles for missing or invalid settings",
	Long: `Validates one profile, or every profile when no name is given. The
command fails when any profile has violations.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(Logger)
		if err != nil {
			return err
		}

		opts := workflows.ValidateOptions{}
		if len(args) == 1 {
			opts.Name = args[0]
		}

		result, err := workflows.Validate(cmd.Context(), env, opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if validateJSON {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		} else {
			if len(result.Reports) == 0 {
				fmt.Fprintln(out, "No profiles to validate")
			}
			for _, report := range result.Reports {
				if report.Valid() {
					fmt.Fprintf(out, "%s %s\n", ui.Status("pass"), ui.Highlight.Sprint(report.Name))
					continue
				}
				fmt.Fprintf(out, "%s %s\n", ui.Status("error"), ui.Highlight.Sprint(report.Name))
				for _, violation := range report.Violations {
					fmt.Fprintf(out, "    - %s\n", violation)
				}
			}
		}

		if n := result.InvalidCount(); n > 0 {
			cmd.SilenceUsage = true
			return fmt.Errorf("%d profile(s) failed validation", n)
		}
		return nil
	},
}
