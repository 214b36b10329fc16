package workflows

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/tokn/internal/secrets"
)

func findCheck(t *testing.T, result *DoctorResult, name string) CheckResult {
	t.Helper()
	for _, check := range result.Checks {
		if check.Name == name {
			return check
		}
	}
	t.Fatalf("check %q not found in %+v", name, result.Checks)
	return CheckResult{}
}

func TestDoctor_FreshInstall(t *testing.T) {
	env := newTestEnv(t, nil)

	result, err := Doctor(context.Background(), env, DoctorOptions{})
	require.NoError(t, err)

	assert.Equal(t, CheckPass, findCheck(t, result, "User configuration").Status)
	assert.Equal(t, CheckPass, findCheck(t, result, "Profile store").Status)
	assert.Equal(t, CheckWarning, findCheck(t, result, "Secret backend").Status)
	assert.Equal(t, CheckPass, findCheck(t, result, "Secret backend access").Status)
	assert.Equal(t, 0, result.Summary.Errors)
	assert.Equal(t, 1, result.Summary.Warnings)
	assert.Len(t, result.Suggestions, 1)
}

func TestDoctor_AccessCheckLeavesNoSecrets(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := Doctor(context.Background(), env, DoctorOptions{})
	require.NoError(t, err)

	entries, err := os.ReadDir(env.Settings.SecretsPath)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDoctor_ReportsBrokenFilesAndProfiles(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	_, err := Create(ctx, env, CreateOptions{Profile: sharedSecretProfile("svc")})
	require.NoError(t, err)

	result, err := Doctor(ctx, env, DoctorOptions{SkipAccessCheck: true})
	require.NoError(t, err)
	profileCheck := findCheck(t, result, "Profile svc")
	assert.Equal(t, CheckWarning, profileCheck.Status)
	assert.Contains(t, profileCheck.Message, "client secret")

	require.NoError(t, os.MkdirAll(filepath.Dir(env.Settings.ConfigPath), 0700))
	require.NoError(t, os.WriteFile(env.Settings.ConfigPath, []byte("[vault\n"), 0600))
	require.NoError(t, os.WriteFile(env.Settings.ProfilesPath, []byte("{oops"), 0600))
	require.NoError(t, os.Chmod(env.Settings.ProfilesPath, 0644))

	result, err = Doctor(ctx, env, DoctorOptions{SkipAccessCheck: true})
	require.NoError(t, err)
	assert.Equal(t, CheckError, findCheck(t, result, "User configuration").Status)
	assert.Equal(t, CheckError, findCheck(t, result, "Profile store").Status)
	if runtime.GOOS != "windows" {
		assert.Equal(t, CheckWarning, findCheck(t, result, "Profile store permissions").Status)
	}
	assert.Equal(t, 2, result.Summary.Errors)
}

func TestDoctor_AccessCheckFailure(t *testing.T) {
	env := newTestEnv(t, func(b secrets.Backend) secrets.Backend {
		return &failingBackend{Backend: b, failSuffix: ""}
	})

	result, err := Doctor(context.Background(), env, DoctorOptions{})
	require.NoError(t, err)
	assert.Equal(t, CheckError, findCheck(t, result, "Secret backend access").Status)
}
