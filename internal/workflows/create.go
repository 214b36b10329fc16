package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/tokn/internal/audit"
	kerrors "github.com/PolarWolf314/tokn/internal/errors"
	"github.com/PolarWolf314/tokn/internal/profiles"
	"github.com/PolarWolf314/tokn/internal/secrets"
)

// CreateOptions configures the create workflow.
type CreateOptions struct {
	Profile profiles.AuthProfile

	// ClientSecret is stored for SharedSecret profiles when set.
	ClientSecret *string

	// CertPassword is stored when set. It requires a certificate method and
	// turns on CacheCertificatePassword.
	CertPassword *string
}

// CreateResult contains the outcome of a create operation.
type CreateResult struct {
	Profile profiles.AuthProfile

	// StoredSecrets lists the secrets written alongside the profile.
	StoredSecrets []secrets.SecretType

	// Problems holds validation findings. A profile is saved even when it is
	// not yet usable, e.g. before its client secret is set.
	Problems []string
}

// Create adds a new profile.
//
// Returns ErrInvalidName for unusable names and ErrProfileExists when a
// profile with the same name (ignoring case) exists.
func Create(ctx context.Context, env *Env, opts CreateOptions) (*CreateResult, error) {
	profile := opts.Profile.Clone()
	if err := profiles.ValidateName(profile.Name); err != nil {
		return nil, err
	}

	_, exists, err := env.Repo.Get(ctx, profile.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrProfileExists, profile.Name)
	}

	if err := checkSecretsFit(profile, opts.ClientSecret, opts.CertPassword); err != nil {
		return nil, err
	}
	if opts.CertPassword != nil {
		profile.CacheCertificatePassword = true
	}

	tx := newSecretTxn(env, profile.Name)
	stored, err := writeSecrets(ctx, tx, opts.ClientSecret, opts.CertPassword)
	if err != nil {
		tx.rollback(ctx)
		return nil, err
	}

	saved, err := saveAfterSecrets(ctx, env, tx, profile)
	if err != nil {
		return nil, err
	}

	problems, err := problemsOf(ctx, env, saved)
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("create")
	entry.Profile = saved.Name
	entry.Backend = string(env.Backend.Kind())
	audit.Log(entry)

	return &CreateResult{Profile: saved, StoredSecrets: stored, Problems: problems}, nil
}

// checkSecretsFit rejects secrets the profile's method never uses.
func checkSecretsFit(profile profiles.AuthProfile, clientSecret, certPassword *string) error {
	usesCert, err := profile.AuthMethod.UsesCertificate()
	if err != nil {
		return err
	}
	if clientSecret != nil && usesCert {
		return fmt.Errorf("%s profiles do not use a client secret", profile.AuthMethod)
	}
	if certPassword != nil && !usesCert {
		return fmt.Errorf("%s profiles do not use a certificate password", profile.AuthMethod)
	}
	return nil
}

func writeSecrets(ctx context.Context, tx *secretTxn, clientSecret, certPassword *string) ([]secrets.SecretType, error) {
	var stored []secrets.SecretType
	if clientSecret != nil {
		if err := tx.set(ctx, secrets.SecretTypeClientSecret, *clientSecret); err != nil {
			return nil, err
		}
		stored = append(stored, secrets.SecretTypeClientSecret)
	}
	if certPassword != nil {
		if err := tx.set(ctx, secrets.SecretTypeCertPassword, *certPassword); err != nil {
			return nil, err
		}
		stored = append(stored, secrets.SecretTypeCertPassword)
	}
	return stored, nil
}

// saveAfterSecrets writes the metadata record and rolls tx back if that
// fails.
func saveAfterSecrets(ctx context.Context, env *Env, tx *secretTxn, profile profiles.AuthProfile) (profiles.AuthProfile, error) {
	if err := ctx.Err(); err != nil {
		tx.rollback(ctx)
		return profiles.AuthProfile{}, err
	}

	saved, err := env.Repo.Save(ctx, profile)
	if err != nil {
		tx.rollback(ctx)
		return profiles.AuthProfile{}, fmt.Errorf("saving profile %s: %w", profile.Name, err)
	}
	return saved, nil
}

// problemsOf returns the violations of profile, or an error when they could
// not be determined.
func problemsOf(ctx context.Context, env *Env, profile profiles.AuthProfile) ([]string, error) {
	err := env.Repo.Validate(ctx, profile)
	if err == nil {
		return nil, nil
	}

	var verr *kerrors.ValidationError
	if errors.As(err, &verr) {
		return verr.Violations, nil
	}
	return nil, err
}
