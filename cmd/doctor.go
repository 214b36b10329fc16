package cmd

import (
	"encoding/json"
	"fmt"

	logger "github.com/PolarWolf314/tokn/internal/logging"
	"github.com/PolarWolf314/tokn/internal/ui"
	"github.com/PolarWolf314/tokn/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	doctorJSON      bool
	doctorSkipAccessCheck bool
	doctorVerbose   bool
)

func init() {
	DoctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "print results as JSON")
	DoctorCmd.Flags().BoolVar(&doctorSkipAccessCheck, "skip-access-check", false, "do not write a throwaway value to the secret store")
	DoctorCmd.Flags().BoolVarP(&doctorVerbose, "verbose", "v", false, "enable verbose output")
}

// ResetDoctorState resets the doctor command globals for testing.
func ResetDoctorState() {
	doctorJSON = false
	doctorSkipAccessCheck = false
	doctorVerbose = false
	resetCobraFlagState(DoctorCmd)
}

// DoctorCmd checks the local vault.
var DoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, secret storage and profiles",
	Long: `Runs health checks on the local vault:
  - config.toml parses
  - profiles.json parses and is private to the user
  - which secret backend is in use
  - the secret backend accepts a write, read and delete
  - every profile passes validation

Exits with an error when any check fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Logger{Verbose: doctorVerbose}
		env, err := openEnv(log)
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner(cmd, "Running checks...", doctorVerbose || doctorJSON, false)
		result, err := workflows.Doctor(cmd.Context(), env, workflows.DoctorOptions{SkipAccessCheck: doctorSkipAccessCheck})
		spinner.FinalMSG = ""
		cleanup()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if doctorJSON {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		} else {
			for _, check := range result.Checks {
				fmt.Fprintf(out, "%s %s: %s\n", ui.Status(check.Status.String()), check.Name, check.Message)
			}
			fmt.Fprintf(out, "\n%d passed, %d warning(s), %d error(s)\n", result.Summary.Passed, result.Summary.Warnings, result.Summary.Errors)
			for _, suggestion := range result.Suggestions {
				fmt.Fprintf(out, "%s %s\n", ui.Info.Sprint("→"), suggestion)
			}
		}

		if result.Summary.Errors > 0 {
			cmd.SilenceUsage = true
			return fmt.Errorf("%d check(s) failed", result.Summary.Errors)
		}
		return nil
	},
}
