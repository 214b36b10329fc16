package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/PolarWolf314/tokn/internal/ui"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

// startSpinner starts a spinner with the given message unless verbose or
// debug output is on. The returned cleanup stops it and prints FinalMSG to
// the command's stdout.
//
// FinalMSG values do not need trailing newlines; cleanup adds one.
func startSpinner(cmd *cobra.Command, message string, verbose, debug bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = " " + message

	// Continue without colour if the spinner rejects it.
	_ = s.Color("cyan")

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Fprint(cmd.OutOrStdout(), finalMsg)
		}
	}

	return s, cleanup
}
