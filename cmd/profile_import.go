package cmd

import (
	"errors"
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/tokn/internal/errors"
	"github.com/PolarWolf314/tokn/internal/ui"
	"github.com/PolarWolf314/tokn/internal/utils"
	"github.com/PolarWolf314/tokn/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	importName          string
	importPassphraseEnv string
)

func init() {
	profileImportCmd.Flags().StringVar(&importName, "name", "", "store the profile under a different name")
	profileImportCmd.Flags().StringVar(&importPassphraseEnv, "passphrase-env", "", "read the passphrase from this environment variable")
}

var profileImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a profile from an exported artifact",
	Long: `Decrypts an artifact made by 'tokn profile export' and stores the
profile and any secrets it carries. Without a file (or with "-") the
artifact is read from stdin.

An existing profile is never overwritten; use --name to import under a new
name.

Examples:
  tokn profile import svc.tokn
  tokn profile import svc.tokn --name svc-staging
  cat svc.tokn | tokn profile import`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting import command")

		fromStdin := len(args) == 0 || args[0] == "-"
		var artifact []byte
		var err error
		if fromStdin {
			artifact, err = utils.ReadStdin()
		} else {
			artifact, err = os.ReadFile(args[0])
		}
		if err != nil {
			return Logger.ErrorfAndReturn("reading artifact: %v", err)
		}

		passphrase, err := passphraseFromEnvOr(importPassphraseEnv, func() (string, error) {
			return readPassphrase(fromStdin)
		})
		if err != nil {
			return err
		}

		env, err := openEnv(Logger)
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner(cmd, "Decrypting profile...", verbose, debug)
		defer cleanup()

		result, err := workflows.Import(cmd.Context(), env, workflows.ImportOptions{
			Artifact:   string(artifact),
			Passphrase: passphrase,
			NewName:    importName,
		})
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Import failed"
			if errors.Is(err, kerrors.ErrProfileExists) {
				return fmt.Errorf("%w; choose another name with %s", err, ui.Flag.Sprint("--name"))
			}
			return err
		}

		msg := fmt.Sprintf("%s Imported %s", ui.Success.Sprint("✓"), ui.Highlight.Sprint(result.Profile.Name))
		if result.Profile.Name != result.OriginalName {
			msg += " " + ui.Muted.Sprintf("exported as %s", result.OriginalName)
		}
		for _, secretType := range result.ImportedSecrets {
			msg += fmt.Sprintf("\n  %s stored in %s", secretLabel(secretType), env.Backend.Kind().Description())
		}
		spinner.FinalMSG = msg

		cleanup()
		printProblems(cmd, result.Problems)
		return nil
	},
}
