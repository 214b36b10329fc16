package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/PolarWolf314/tokn/cmd"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tokn",
	Short: "tokn - issue OAuth2 tokens from named profiles",
	Long: `tokn keeps named authentication profiles and their secrets so tokens can
be requested without pasting credentials around.

Profiles hold tenant, client and scope settings. Client secrets and
certificate passwords live in the platform secret store.

Usage:
  tokn <command> [flags]

Available Commands:
  profile    Manage authentication profiles and their secrets
  config     Manage tokn configuration
  doctor     Check configuration, secret storage and profiles
  log        View the audit log of vault changes

Run 'tokn help <command>' for more details on a specific command.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewColorFigure("tokn", "small", "cyan", true)
		banner.Print()
		fmt.Println("\nRun 'tokn --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.ProfileCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
	rootCmd.AddCommand(cmd.DoctorCmd)
	rootCmd.AddCommand(cmd.LogCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
