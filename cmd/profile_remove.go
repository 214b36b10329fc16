package cmd

import (
	"fmt"

	"github.com/PolarWolf314/tokn/internal/ui"
	"github.com/PolarWolf314/tokn/internal/workflows"
	"github.com/spf13/cobra"
)

var profileRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a profile with its secrets and token caches",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting remove command")

		env, err := openEnv(Logger)
		if err != nil {
			return err
		}

		result, err := workflows.Remove(cmd.Context(), env, workflows.RemoveOptions{Name: args[0]})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s Profile %s removed\n", ui.Success.Sprint("✓"), ui.Highlight.Sprint(result.Name))
		if result.ClearedDefault {
			fmt.Fprintf(out, "  It was the default profile; set a new one with %s\n", ui.Code.Sprint("tokn config set-default <name>"))
		}
		return nil
	},
}
