package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/tokn/internal/audit"
	logger "github.com/PolarWolf314/tokn/internal/logging"
	"github.com/PolarWolf314/tokn/internal/ui"
	"github.com/PolarWolf314/tokn/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logProfile   string
	logOperation []string
	logSince     string
	logUntil     string
	logJSON      bool
	logVerbose   bool
)

func init() {
	LogCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	LogCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	LogCmd.Flags().StringVar(&logProfile, "profile", "", "filter by profile name")
	LogCmd.Flags().StringSliceVar(&logOperation, "operation", nil, "filter by operation (comma-separated)")
	LogCmd.Flags().StringVar(&logSince, "since", "", "show entries on or after date (YYYY-MM-DD)")
	LogCmd.Flags().StringVar(&logUntil, "until", "", "show entries on or before date (YYYY-MM-DD)")
	LogCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
	LogCmd.Flags().BoolVarP(&logVerbose, "verbose", "v", false, "enable verbose output")
}

// ResetLogState resets the log command globals for testing.
func ResetLogState() {
	logLimit = 0
	logReverse = false
	logProfile = ""
	logOperation = nil
	logSince = ""
	logUntil = ""
	logJSON = false
	logVerbose = false
	resetCobraFlagState(LogCmd)
}

// LogCmd shows the audit trail of vault changes.
var LogCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log of vault changes",
	Long: `Displays who created, edited, removed, exported or imported profiles and
when. Secret values are never logged.

Examples:
  tokn log                          # View full log
  tokn log -n 10                    # Last 10 entries
  tokn log --reverse                # Most recent first
  tokn log --profile svc            # One profile
  tokn log --operation export,import
  tokn log --since 2026-01-01 --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Logger{Verbose: logVerbose}
		log.Infof("Reading %s", audit.LogPath())

		result, err := workflows.Log(cmd.Context(), workflows.LogOptions{
			Limit:      logLimit,
			Reverse:    logReverse,
			Profile:    logProfile,
			Operations: logOperation,
			Since:      logSince,
			Until:      logUntil,
		})
		if err != nil {
			return err
		}
		log.Infof("%d of %d entries match", len(result.Entries), result.TotalEntriesBeforeFilter)

		out := cmd.OutOrStdout()
		if logJSON {
			entries := result.Entries
			if entries == nil {
				entries = []audit.Entry{}
			}
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal entries to JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if len(result.Entries) == 0 {
			if result.TotalEntriesBeforeFilter == 0 {
				fmt.Fprintln(out, "No audit log entries found.")
			} else {
				fmt.Fprintln(out, "No audit log entries found matching the filters.")
			}
			return nil
		}

		for _, e := range result.Entries {
			fmt.Fprintf(out, "%-19s  %-16s  %-12s  %s\n", formatLogTime(e), e.User, e.Operation, logDetails(e))
		}
		return nil
	},
}

func formatLogTime(e audit.Entry) string {
	t, err := e.Time()
	if err != nil {
		return e.Timestamp
	}
	return t.Local().Format(time.DateTime)
}

func logDetails(e audit.Entry) string {
	parts := []string{ui.Highlight.Sprint(e.Profile)}
	if e.Target != "" {
		parts = append(parts, "→ "+e.Target)
	}
	if e.IncludeSecrets {
		parts = append(parts, ui.Warning.Sprint("with secrets"))
	}
	if e.Backend != "" {
		parts = append(parts, ui.Muted.Sprint("("+e.Backend+")"))
	}
	return strings.Join(parts, " ")
}
