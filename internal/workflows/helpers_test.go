package workflows

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/tokn/internal/configs"
	kerrors "github.com/PolarWolf314/tokn/internal/errors"
	logger "github.com/PolarWolf314/tokn/internal/logging"
	"github.com/PolarWolf314/tokn/internal/profiles"
	"github.com/PolarWolf314/tokn/internal/secrets"
)

const (
	testTenant = "72f988bf-86f1-41af-91ab-2d7cd011db47"
	testClient = "04b07795-8ddb-461a-bbee-02f9e1bf7b46"
)

var quiet = logger.Logger{Out: io.Discard, Err: io.Discard}

// newTestEnv builds an Env over temp directories, optionally wrapping the
// file backend. Audit entries go to the temp data dir.
func newTestEnv(t *testing.T, wrap func(secrets.Backend) secrets.Backend) *Env {
	t.Helper()
	dir := t.TempDir()
	settings := configs.NewSettings(filepath.Join(dir, "config"), filepath.Join(dir, "data"))

	original := configs.ToknSettings
	configs.ToknSettings = settings
	t.Cleanup(func() {
		configs.ToknSettings = original
	})

	var backend secrets.Backend = secrets.NewCachedBackend(
		secrets.NewFileBackend(settings.SecretsPath, secrets.XORProtector{Mask: secrets.DefaultXORMask}, secrets.KindObfuscatedFile),
		quiet,
	)
	if wrap != nil {
		backend = wrap(backend)
	}
	return NewEnv(settings, configs.Defaults(), backend, quiet)
}

func sharedSecretProfile(name string) profiles.AuthProfile {
	return profiles.AuthProfile{
		Name:       name,
		TenantID:   testTenant,
		ClientID:   testClient,
		Scopes:     []string{"https://graph.microsoft.com/.default"},
		AuthMethod: profiles.SharedSecret,
	}
}

func ptr[T any](v T) *T {
	return &v
}

// secretOf reads a secret straight from the backend, bypassing name
// resolution.
func secretOf(t *testing.T, env *Env, profile string, secretType secrets.SecretType) (string, bool) {
	t.Helper()
	value, ok, err := env.Backend.Retrieve(context.Background(), secrets.SecretKey(env.Config.Vault.ServiceName, profile, secretType))
	require.NoError(t, err)
	return value, ok
}

// failingBackend fails Store for keys ending in failSuffix.
type failingBackend struct {
	secrets.Backend
	failSuffix string
}

func (b *failingBackend) Store(ctx context.Context, key, value string) error {
	if strings.HasSuffix(key, b.failSuffix) {
		return errors.Join(kerrors.ErrBackendUnavailable, errors.New("disk full"))
	}
	return b.Backend.Store(ctx, key, value)
}

// cancellingBackend cancels the caller's context after every successful
// Store, simulating an interrupt between the secret and metadata writes.
type cancellingBackend struct {
	secrets.Backend
	cancel context.CancelFunc
}

func (b *cancellingBackend) Store(ctx context.Context, key, value string) error {
	if err := b.Backend.Store(ctx, key, value); err != nil {
		return err
	}
	if b.cancel != nil {
		b.cancel()
	}
	return nil
}
