package workflows

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/tokn/internal/errors"
	"github.com/PolarWolf314/tokn/internal/secrets"
)

func TestExportImport_MovesProfileWithSecret(t *testing.T) {
	ctx := context.Background()
	source := newTestEnv(t, nil)

	_, err := Create(ctx, source, CreateOptions{Profile: sharedSecretProfile("svc"), ClientSecret: ptr("s1")})
	require.NoError(t, err)

	exported, err := Export(ctx, source, ExportOptions{Name: "svc", Passphrase: "p@ss", IncludeSecrets: true})
	require.NoError(t, err)
	assert.Equal(t, []secrets.SecretType{secrets.SecretTypeClientSecret}, exported.IncludedSecrets)

	target := newTestEnv(t, nil)
	imported, err := Import(ctx, target, ImportOptions{Artifact: exported.Artifact, Passphrase: "p@ss", NewName: "svc2"})
	require.NoError(t, err)

	assert.Equal(t, "svc2", imported.Profile.Name)
	assert.Equal(t, "svc", imported.OriginalName)
	assert.Empty(t, imported.Problems)

	profile, ok, err := target.Repo.Get(ctx, "svc2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testClient, profile.ClientID)

	value, ok := secretOf(t, target, "svc2", secrets.SecretTypeClientSecret)
	assert.True(t, ok)
	assert.Equal(t, "s1", value)
}

func TestExport_WithoutSecrets(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	_, err := Create(ctx, env, CreateOptions{Profile: sharedSecretProfile("svc"), ClientSecret: ptr("s1")})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "svc.tokn")
	exported, err := Export(ctx, env, ExportOptions{Name: "svc", Passphrase: "p@ss", OutputPath: out})
	require.NoError(t, err)
	assert.Empty(t, exported.IncludedSecrets)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	target := newTestEnv(t, nil)
	imported, err := Import(ctx, target, ImportOptions{Artifact: string(data), Passphrase: "p@ss"})
	require.NoError(t, err)
	assert.Empty(t, imported.ImportedSecrets)
	require.Len(t, imported.Problems, 1)
	assert.Contains(t, imported.Problems[0], "client secret")
}

func TestImport_ExistingNameHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	_, err := Create(ctx, env, CreateOptions{Profile: sharedSecretProfile("svc"), ClientSecret: ptr("original")})
	require.NoError(t, err)

	other := sharedSecretProfile("SVC")
	other.Scopes = []string{"api://other/.default"}
	source := newTestEnv(t, nil)
	_, err = Create(ctx, source, CreateOptions{Profile: other, ClientSecret: ptr("imported")})
	require.NoError(t, err)
	exported, err := Export(ctx, source, ExportOptions{Name: "SVC", Passphrase: "p@ss", IncludeSecrets: true})
	require.NoError(t, err)

	before, err := os.ReadFile(env.Settings.ProfilesPath)
	require.NoError(t, err)

	_, err = Import(ctx, env, ImportOptions{Artifact: exported.Artifact, Passphrase: "p@ss"})
	require.ErrorIs(t, err, kerrors.ErrProfileExists)

	after, err := os.ReadFile(env.Settings.ProfilesPath)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))

	value, _ := secretOf(t, env, "svc", secrets.SecretTypeClientSecret)
	assert.Equal(t, "original", value)
}

func TestImport_WrongPassphraseWritesNothing(t *testing.T) {
	ctx := context.Background()
	source := newTestEnv(t, nil)

	_, err := Create(ctx, source, CreateOptions{Profile: sharedSecretProfile("svc"), ClientSecret: ptr("s1")})
	require.NoError(t, err)
	exported, err := Export(ctx, source, ExportOptions{Name: "svc", Passphrase: "right", IncludeSecrets: true})
	require.NoError(t, err)

	target := newTestEnv(t, nil)
	_, err = Import(ctx, target, ImportOptions{Artifact: exported.Artifact, Passphrase: "wrong"})
	require.ErrorIs(t, err, kerrors.ErrDecryptionFailed)

	_, statErr := os.Stat(target.Settings.ProfilesPath)
	assert.True(t, os.IsNotExist(statErr))
	_, ok := secretOf(t, target, "svc", secrets.SecretTypeClientSecret)
	assert.False(t, ok)
}

func TestImport_InvalidNewName(t *testing.T) {
	ctx := context.Background()
	source := newTestEnv(t, nil)

	_, err := Create(ctx, source, CreateOptions{Profile: sharedSecretProfile("svc")})
	require.NoError(t, err)
	exported, err := Export(ctx, source, ExportOptions{Name: "svc", Passphrase: "p@ss"})
	require.NoError(t, err)

	_, err = Import(ctx, newTestEnv(t, nil), ImportOptions{Artifact: exported.Artifact, Passphrase: "p@ss", NewName: "a:b"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidName)
}

func TestImport_InterruptedRollsBackSecrets(t *testing.T) {
	ctx := context.Background()
	source := newTestEnv(t, nil)

	_, err := Create(ctx, source, CreateOptions{Profile: sharedSecretProfile("svc"), ClientSecret: ptr("s1")})
	require.NoError(t, err)
	exported, err := Export(ctx, source, ExportOptions{Name: "svc", Passphrase: "p@ss", IncludeSecrets: true})
	require.NoError(t, err)

	importCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	target := newTestEnv(t, func(b secrets.Backend) secrets.Backend {
		return &cancellingBackend{Backend: b, cancel: cancel}
	})

	_, err = Import(importCtx, target, ImportOptions{Artifact: exported.Artifact, Passphrase: "p@ss"})
	require.ErrorIs(t, err, context.Canceled)

	_, ok := secretOf(t, target, "svc", secrets.SecretTypeClientSecret)
	assert.False(t, ok)
	all, err := target.Repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestExportImport_RenamedCopyWithoutSecretsHasNoSecretKeys(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	_, err := Create(ctx, env, CreateOptions{Profile: sharedSecretProfile("svc"), ClientSecret: ptr("s1")})
	require.NoError(t, err)

	exported, err := Export(ctx, env, ExportOptions{Name: "svc", Passphrase: "p@ss"})
	require.NoError(t, err)

	imported, err := Import(ctx, env, ImportOptions{Artifact: exported.Artifact, Passphrase: "p@ss", NewName: "svc2"})
	require.NoError(t, err)
	assert.Equal(t, "svc2", imported.Profile.Name)
	assert.Empty(t, imported.ImportedSecrets)

	for _, secretType := range secrets.SecretTypes {
		_, ok := secretOf(t, env, "svc2", secretType)
		assert.False(t, ok, "svc2 should have no %s", secretType)
	}

	value, ok := secretOf(t, env, "svc", secrets.SecretTypeClientSecret)
	assert.True(t, ok)
	assert.Equal(t, "s1", value)
}

func TestExport_NamedSecrets(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	_, err := Create(ctx, env, CreateOptions{Profile: sharedSecretProfile("svc"), ClientSecret: ptr("s1")})
	require.NoError(t, err)

	exported, err := Export(ctx, env, ExportOptions{
		Name:       "svc",
		Passphrase: "p@ss",
		Secrets:    []secrets.SecretType{secrets.SecretTypeClientSecret},
	})
	require.NoError(t, err)
	assert.Equal(t, []secrets.SecretType{secrets.SecretTypeClientSecret}, exported.IncludedSecrets)

	_, err = Export(ctx, env, ExportOptions{
		Name:       "svc",
		Passphrase: "p@ss",
		Secrets:    []secrets.SecretType{secrets.SecretTypeCertPassword},
	})
	require.ErrorIs(t, err, kerrors.ErrSecretNotFound)

	_, err = Export(ctx, env, ExportOptions{
		Name:       "svc",
		Passphrase: "p@ss",
		Secrets:    []secrets.SecretType{"api-key"},
	})
	assert.Error(t, err)
}
