package cmd

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/tokn/internal/configs"
	logger "github.com/PolarWolf314/tokn/internal/logging"
	"github.com/PolarWolf314/tokn/internal/secrets"
	"github.com/PolarWolf314/tokn/internal/workflows"
	"github.com/spf13/cobra"
)

// setupTestEnvironment points tokn at temp directories and an obfuscated
// file backend, whatever the host platform.
func setupTestEnvironment(t *testing.T) *configs.Settings {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	dir := t.TempDir()
	settings := configs.NewSettings(filepath.Join(dir, "config"), filepath.Join(dir, "data"))

	originalSettings := configs.ToknSettings
	originalOpenEnv := openEnv
	configs.ToknSettings = settings
	openEnv = func(log logger.Logger) (*workflows.Env, error) {
		config, err := configs.LoadUserConfig(settings)
		if err != nil {
			return nil, err
		}
		backend := secrets.NewCachedBackend(
			secrets.NewFileBackend(settings.SecretsPath, secrets.XORProtector{Mask: secrets.DefaultXORMask}, secrets.KindObfuscatedFile),
			log,
		)
		return workflows.NewEnv(settings, config, backend, log), nil
	}

	t.Cleanup(func() {
		configs.ToknSettings = originalSettings
		openEnv = originalOpenEnv
		ResetGlobalState()
		ResetConfigState()
		ResetDoctorState()
		ResetLogState()
	})
	return settings
}

// runCommand executes a tokn command line and returns its stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ResetGlobalState()
	ResetConfigState()
	ResetDoctorState()
	ResetLogState()

	root := &cobra.Command{Use: "tokn", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(ProfileCmd, ConfigCmd, DoctorCmd, LogCmd)

	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}
