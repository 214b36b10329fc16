package workflows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/tokn/internal/errors"
	"github.com/PolarWolf314/tokn/internal/profiles"
	"github.com/PolarWolf314/tokn/internal/secrets"
)

func TestSetSecret_ReplacesAndReports(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	_, err := Create(ctx, env, CreateOptions{Profile: sharedSecretProfile("svc"), ClientSecret: ptr("s1")})
	require.NoError(t, err)

	result, err := SetSecret(ctx, env, SecretOptions{Name: "svc", Type: secrets.SecretTypeClientSecret, Value: "s2"})
	require.NoError(t, err)
	assert.True(t, result.Existed)
	assert.Empty(t, result.Problems)

	value, _ := secretOf(t, env, "svc", secrets.SecretTypeClientSecret)
	assert.Equal(t, "s2", value)
}

func TestSetSecret_CertPasswordEnablesCaching(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	cert := sharedSecretProfile("cert")
	cert.AuthMethod = profiles.Certificate
	cert.CertificatePath = "/does/not/matter.pfx"
	_, err := Create(ctx, env, CreateOptions{Profile: cert})
	require.NoError(t, err)

	_, err = SetSecret(ctx, env, SecretOptions{Name: "cert", Type: secrets.SecretTypeClientSecret, Value: "s1"})
	assert.Error(t, err)

	_, err = SetSecret(ctx, env, SecretOptions{Name: "cert", Type: secrets.SecretTypeCertPassword, Value: "p1"})
	require.NoError(t, err)

	stored, ok, err := env.Repo.Get(ctx, "cert")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, stored.CacheCertificatePassword)
}

func TestClearSecret(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	_, err := Create(ctx, env, CreateOptions{Profile: sharedSecretProfile("svc"), ClientSecret: ptr("s1")})
	require.NoError(t, err)

	result, err := ClearSecret(ctx, env, SecretOptions{Name: "svc", Type: secrets.SecretTypeClientSecret})
	require.NoError(t, err)
	assert.True(t, result.Existed)

	result, err = ClearSecret(ctx, env, SecretOptions{Name: "svc", Type: secrets.SecretTypeClientSecret})
	require.NoError(t, err)
	assert.False(t, result.Existed)

	_, err = ClearSecret(ctx, env, SecretOptions{Name: "ghost", Type: secrets.SecretTypeClientSecret})
	assert.ErrorIs(t, err, kerrors.ErrProfileNotFound)
}

func TestValidate_AllProfiles(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	_, err := Create(ctx, env, CreateOptions{Profile: sharedSecretProfile("b-ready"), ClientSecret: ptr("s1")})
	require.NoError(t, err)
	_, err = Create(ctx, env, CreateOptions{Profile: sharedSecretProfile("a-missing")})
	require.NoError(t, err)

	result, err := Validate(ctx, env, ValidateOptions{})
	require.NoError(t, err)
	require.Len(t, result.Reports, 2)
	assert.Equal(t, "a-missing", result.Reports[0].Name)
	assert.False(t, result.Reports[0].Valid())
	assert.True(t, result.Reports[1].Valid())
	assert.Equal(t, 1, result.InvalidCount())

	_, err = Validate(ctx, env, ValidateOptions{Name: "ghost"})
	assert.ErrorIs(t, err, kerrors.ErrProfileNotFound)
}
