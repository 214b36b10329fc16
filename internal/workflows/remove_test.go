package workflows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/tokn/internal/configs"
	kerrors "github.com/PolarWolf314/tokn/internal/errors"
	"github.com/PolarWolf314/tokn/internal/secrets"
	"github.com/PolarWolf314/tokn/internal/tokencache"
)

func TestRemove_DeletesEverything(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	_, err := Create(ctx, env, CreateOptions{Profile: sharedSecretProfile("Svc"), ClientSecret: ptr("s1")})
	require.NoError(t, err)
	cache := tokencache.NewAdapter(env.Backend, "Svc", tokencache.Confidential, quiet)
	require.NoError(t, cache.OnAfterAccess(ctx, []byte("tokens"), true))

	env.Config.Profiles.Default = "svc"
	require.NoError(t, configs.SaveUserConfig(env.Settings, env.Config))

	result, err := Remove(ctx, env, RemoveOptions{Name: "SVC"})
	require.NoError(t, err)
	assert.Equal(t, "Svc", result.Name)
	assert.True(t, result.ClearedDefault)

	_, ok, err := env.Repo.Get(ctx, "svc")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok = secretOf(t, env, "Svc", secrets.SecretTypeClientSecret)
	assert.False(t, ok)

	_, ok = cache.OnBeforeAccess(ctx)
	assert.False(t, ok, "token cache should be cleared")

	reloaded, err := configs.LoadUserConfig(env.Settings)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Profiles.Default)
}

func TestRemove_MissingProfile(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := Remove(context.Background(), env, RemoveOptions{Name: "ghost"})
	assert.ErrorIs(t, err, kerrors.ErrProfileNotFound)
}
