package profiles

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	logger "github.com/PolarWolf314/tokn/internal/logging"
	"github.com/PolarWolf314/tokn/internal/secrets"
)

const (
	testTenant = "72f988bf-86f1-41af-91ab-2d7cd011db47"
	testClient = "04b07795-8ddb-461a-bbee-02f9e1bf7b46"
)

type testRepo struct {
	*Repository
	path    string
	backend *secrets.CachedBackend
	clock   *fakeClock
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()
	log := logger.Logger{Out: io.Discard, Err: io.Discard}
	backend := secrets.NewCachedBackend(
		secrets.NewFileBackend(filepath.Join(dir, "secrets"), secrets.XORProtector{Mask: secrets.DefaultXORMask}, secrets.KindObfuscatedFile),
		log,
	)
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	path := filepath.Join(dir, "profiles.json")
	repo := NewRepository(RepositoryOptions{
		Path:        path,
		Backend:     backend,
		ServiceName: "tokn",
		Logger:      log,
		Now:         clock.Now,
	})
	return &testRepo{Repository: repo, path: path, backend: backend, clock: clock}
}

func sharedSecretProfile(name string) AuthProfile {
	return AuthProfile{
		Name:       name,
		TenantID:   testTenant,
		ClientID:   testClient,
		Scopes:     []string{"https://graph.microsoft.com/.default"},
		AuthMethod: SharedSecret,
	}
}
