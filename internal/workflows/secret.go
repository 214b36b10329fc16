package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/tokn/internal/audit"
	kerrors "github.com/PolarWolf314/tokn/internal/errors"
	"github.com/PolarWolf314/tokn/internal/secrets"
)

// SecretOptions configures the set-secret and clear-secret workflows.
type SecretOptions struct {
	Name string
	Type secrets.SecretType

	// Value is the secret to store. Ignored by ClearSecret.
	Value string
}

// SecretResult contains the outcome of a secret operation.
type SecretResult struct {
	Name string
	Type secrets.SecretType

	// Existed reports whether a value was stored before the call.
	Existed bool

	Problems []string
}

// SetSecret stores one secret for an existing profile. Storing a
// certificate password also turns on CacheCertificatePassword.
//
// Returns ErrProfileNotFound if the profile does not exist.
func SetSecret(ctx context.Context, env *Env, opts SecretOptions) (*SecretResult, error) {
	profile, ok, err := env.Repo.Get(ctx, opts.Name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrProfileNotFound, opts.Name)
	}

	var clientSecret, certPassword *string
	switch opts.Type {
	case secrets.SecretTypeClientSecret:
		clientSecret = &opts.Value
	case secrets.SecretTypeCertPassword:
		certPassword = &opts.Value
	default:
		return nil, fmt.Errorf("unknown secret type %q", opts.Type)
	}
	if err := checkSecretsFit(profile, clientSecret, certPassword); err != nil {
		return nil, err
	}

	existed, err := env.Repo.HasSecret(ctx, profile.Name, opts.Type)
	if err != nil {
		return nil, err
	}

	tx := newSecretTxn(env, profile.Name)
	if err := tx.set(ctx, opts.Type, opts.Value); err != nil {
		tx.rollback(ctx)
		return nil, err
	}
	if certPassword != nil && !profile.CacheCertificatePassword {
		profile.CacheCertificatePassword = true
		if profile, err = saveAfterSecrets(ctx, env, tx, profile); err != nil {
			return nil, err
		}
	}

	problems, err := problemsOf(ctx, env, profile)
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("secret-set")
	entry.Profile = profile.Name
	entry.Target = string(opts.Type)
	audit.Log(entry)

	return &SecretResult{Name: profile.Name, Type: opts.Type, Existed: existed, Problems: problems}, nil
}

// ClearSecret removes one secret of an existing profile. Clearing a missing
// secret succeeds with Existed unset.
//
// Returns ErrProfileNotFound if the profile does not exist.
func ClearSecret(ctx context.Context, env *Env, opts SecretOptions) (*SecretResult, error) {
	profile, ok, err := env.Repo.Get(ctx, opts.Name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrProfileNotFound, opts.Name)
	}

	existed, err := env.Repo.HasSecret(ctx, profile.Name, opts.Type)
	if err != nil {
		return nil, err
	}
	if err := env.Repo.DeleteSecret(ctx, profile.Name, opts.Type); err != nil {
		return nil, err
	}

	if existed {
		entry := audit.LogWithUser("secret-clear")
		entry.Profile = profile.Name
		entry.Target = string(opts.Type)
		audit.Log(entry)
	}

	return &SecretResult{Name: profile.Name, Type: opts.Type, Existed: existed}, nil
}
