package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	kerrors "github.com/PolarWolf314/tokn/internal/errors"
	logger "github.com/PolarWolf314/tokn/internal/logging"
	"github.com/PolarWolf314/tokn/internal/secrets"
)

// RepositoryOptions configures NewRepository.
type RepositoryOptions struct {
	// Path is the profiles.json location.
	Path string

	Backend     secrets.Backend
	ServiceName string
	Logger      logger.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Repository stores profile metadata in a JSON file and profile secrets in a
// secrets.Backend.
type Repository struct {
	path    string
	backend secrets.Backend
	service string
	log     logger.Logger
	now     func() time.Time

	insecureWarning sync.Once
}

func NewRepository(opts RepositoryOptions) *Repository {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Repository{
		path:    opts.Path,
		backend: opts.Backend,
		service: opts.ServiceName,
		log:     opts.Logger,
		now:     now,
	}
}

// BackendKind reports which secret backend holds profile secrets.
func (r *Repository) BackendKind() secrets.Kind {
	return r.backend.Kind()
}

// LoadAll returns every stored profile. A missing file yields an empty list,
// and so does a malformed one (with a warning).
func (r *Repository) LoadAll(ctx context.Context) ([]AuthProfile, error) {
	profiles, _, err := r.load(ctx)
	return profiles, err
}

func (r *Repository) load(ctx context.Context) (profiles []AuthProfile, corrupted bool, err error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return []AuthProfile{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: reading %s: %w", kerrors.ErrBackendUnavailable, r.path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []AuthProfile{}, false, nil
	}

	if err := json.Unmarshal(data, &profiles); err != nil {
		r.log.Warnf("Profile file %s could not be parsed and is treated as empty: %v", r.path, err)
		return []AuthProfile{}, true, nil
	}
	if profiles == nil {
		profiles = []AuthProfile{}
	}
	return profiles, false, nil
}

// Get finds a profile by case-insensitive name.
func (r *Repository) Get(ctx context.Context, name string) (AuthProfile, bool, error) {
	profiles, err := r.LoadAll(ctx)
	if err != nil {
		return AuthProfile{}, false, err
	}
	if i := indexOf(profiles, name); i >= 0 {
		return profiles[i], true, nil
	}
	return AuthProfile{}, false, nil
}

// List returns profiles whose names match a doublestar pattern, sorted by
// name. An empty pattern matches everything. Matching ignores case.
func (r *Repository) List(ctx context.Context, pattern string) ([]AuthProfile, error) {
	if pattern != "" && !doublestar.ValidatePattern(strings.ToLower(pattern)) {
		return nil, fmt.Errorf("invalid name pattern %q", pattern)
	}

	profiles, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	var matched []AuthProfile
	for _, p := range profiles {
		if pattern != "" {
			ok, err := doublestar.Match(strings.ToLower(pattern), strings.ToLower(p.Name))
			if err != nil {
				return nil, fmt.Errorf("invalid name pattern %q: %w", pattern, err)
			}
			if !ok {
				continue
			}
		}
		matched = append(matched, p)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return strings.ToLower(matched[i].Name) < strings.ToLower(matched[j].Name)
	})
	return matched, nil
}

// Save inserts or replaces a profile. Replacing keeps the stored name and
// creation time. It returns the profile as written.
func (r *Repository) Save(ctx context.Context, profile AuthProfile) (AuthProfile, error) {
	if err := ValidateName(profile.Name); err != nil {
		return AuthProfile{}, err
	}

	profiles, corrupted, err := r.load(ctx)
	if err != nil {
		return AuthProfile{}, err
	}

	now := r.now().UTC()
	if i := indexOf(profiles, profile.Name); i >= 0 {
		existing := profiles[i]
		profile.Name = existing.Name
		profiles[i] = profile.stamped(existing.createdAt, now)
		profile = profiles[i]
	} else {
		profile = profile.stamped(now, now)
		profiles = append(profiles, profile)
	}

	if corrupted {
		r.backupCorrupted()
	}
	if err := r.writeAll(ctx, profiles); err != nil {
		return AuthProfile{}, err
	}
	return profile.Clone(), nil
}

// Delete removes a profile's secrets and then its record. Secrets are
// deleted whether or not they were ever set. It returns ErrProfileNotFound
// when no record existed.
func (r *Repository) Delete(ctx context.Context, name string) error {
	profiles, _, err := r.load(ctx)
	if err != nil {
		return err
	}

	names := []string{name}
	i := indexOf(profiles, name)
	if i >= 0 && profiles[i].Name != name {
		names = append(names, profiles[i].Name)
	}

	for _, n := range names {
		for _, secretType := range secrets.SecretTypes {
			if err := r.backend.Delete(ctx, secrets.SecretKey(r.service, n, secretType)); err != nil {
				return fmt.Errorf("deleting %s for profile %s: %w", secretType, n, err)
			}
		}
	}

	if i < 0 {
		return fmt.Errorf("%w: %s", kerrors.ErrProfileNotFound, name)
	}

	profiles = append(profiles[:i], profiles[i+1:]...)
	return r.writeAll(ctx, profiles)
}

// SetSecret stores a secret for the named profile.
func (r *Repository) SetSecret(ctx context.Context, name string, secretType secrets.SecretType, value string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	key, err := r.secretKey(ctx, name, secretType)
	if err != nil {
		return err
	}

	r.insecureWarning.Do(func() {
		if !r.backend.Kind().Secure() {
			r.log.Warnf("Secrets are stored with %s. This is obfuscation, not encryption; do not use it for production credentials.", r.backend.Kind().Description())
		}
	})

	if err := r.backend.Store(ctx, key, value); err != nil {
		return fmt.Errorf("storing %s for profile %s: %w", secretType, name, err)
	}
	return nil
}

// Secret returns a stored secret for the named profile.
func (r *Repository) Secret(ctx context.Context, name string, secretType secrets.SecretType) (string, bool, error) {
	key, err := r.secretKey(ctx, name, secretType)
	if err != nil {
		return "", false, err
	}
	return r.backend.Retrieve(ctx, key)
}

// HasSecret reports whether a readable secret is stored for the profile.
func (r *Repository) HasSecret(ctx context.Context, name string, secretType secrets.SecretType) (bool, error) {
	_, ok, err := r.Secret(ctx, name, secretType)
	return ok, err
}

// DeleteSecret removes one secret of the named profile.
func (r *Repository) DeleteSecret(ctx context.Context, name string, secretType secrets.SecretType) error {
	key, err := r.secretKey(ctx, name, secretType)
	if err != nil {
		return err
	}
	return r.backend.Delete(ctx, key)
}

// CheckBackend writes, reads back and deletes a throwaway secret. The
// returned error names the step that failed.
func (r *Repository) CheckBackend(ctx context.Context) error {
	key := secrets.HealthCheckKey(r.service, uuid.NewString())
	value := uuid.NewString()

	if err := r.backend.Store(ctx, key, value); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	got, ok, err := r.backend.Retrieve(ctx, key)
	if err == nil && (!ok || got != value) {
		err = errors.New("value did not round-trip")
	}
	if err != nil {
		_ = r.backend.Delete(context.WithoutCancel(ctx), key)
		return fmt.Errorf("read: %w", err)
	}

	if err := r.backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// secretKey derives the backend key from the stored spelling of the name so
// "SVC" and "svc" share secrets.
func (r *Repository) secretKey(ctx context.Context, name string, secretType secrets.SecretType) (string, error) {
	existing, ok, err := r.Get(ctx, name)
	if err != nil {
		return "", err
	}
	if ok {
		name = existing.Name
	}
	return secrets.SecretKey(r.service, name, secretType), nil
}

func (r *Repository) writeAll(ctx context.Context, profiles []AuthProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profiles: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0700); err != nil {
		return fmt.Errorf("%w: creating %s: %w", kerrors.ErrBackendUnavailable, filepath.Dir(r.path), err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("%w: writing profiles: %w", kerrors.ErrBackendUnavailable, err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: writing profiles: %w", kerrors.ErrBackendUnavailable, err)
	}
	return nil
}

func (r *Repository) backupCorrupted() {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return
	}
	backup := r.path + ".bak"
	if err := os.WriteFile(backup, data, 0600); err != nil {
		r.log.Warnf("Could not back up unreadable profile file: %v", err)
		return
	}
	r.log.Warnf("Unreadable profile file copied to %s", backup)
}

func indexOf(profiles []AuthProfile, name string) int {
	for i, p := range profiles {
		if SameName(p.Name, name) {
			return i
		}
	}
	return -1
}
