package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/tokn/internal/audit"
	kerrors "github.com/PolarWolf314/tokn/internal/errors"
	"github.com/PolarWolf314/tokn/internal/profiles"
	"github.com/PolarWolf314/tokn/internal/secrets"
)

// EditOptions configures the edit workflow. Nil fields are left unchanged.
type EditOptions struct {
	Name string

	TenantID                 *string
	ClientID                 *string
	Scopes                   []string
	Resource                 *string
	AuthMethod               *profiles.AuthMethod
	RedirectURI              *string
	CertificatePath          *string
	CacheCertificatePassword *bool
	DefaultFlow              *profiles.Flow
	ClearDefaultFlow         bool

	ClientSecret *string
	CertPassword *string
}

// EditResult contains the outcome of an edit operation.
type EditResult struct {
	Profile profiles.AuthProfile

	StoredSecrets  []secrets.SecretType
	RemovedSecrets []secrets.SecretType

	Problems []string
}

// Edit updates an existing profile.
//
// Secrets the new configuration no longer uses are removed: the client
// secret when the method stops being SharedSecret, and the certificate
// password when it is no longer cached.
//
// Returns ErrProfileNotFound if the profile does not exist.
func Edit(ctx context.Context, env *Env, opts EditOptions) (*EditResult, error) {
	existing, ok, err := env.Repo.Get(ctx, opts.Name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrProfileNotFound, opts.Name)
	}

	profile := applyEdits(existing.Clone(), opts)
	if opts.CertPassword != nil {
		profile.CacheCertificatePassword = true
	}
	if err := checkSecretsFit(profile, opts.ClientSecret, opts.CertPassword); err != nil {
		return nil, err
	}

	usesCert, err := profile.AuthMethod.UsesCertificate()
	if err != nil {
		return nil, err
	}

	tx := newSecretTxn(env, existing.Name)
	stored, err := writeSecrets(ctx, tx, opts.ClientSecret, opts.CertPassword)
	if err != nil {
		tx.rollback(ctx)
		return nil, err
	}

	var stale []secrets.SecretType
	if usesCert {
		stale = append(stale, secrets.SecretTypeClientSecret)
	}
	if !usesCert || !profile.CacheCertificatePassword {
		stale = append(stale, secrets.SecretTypeCertPassword)
	}

	var removed []secrets.SecretType
	for _, secretType := range stale {
		has, err := env.Repo.HasSecret(ctx, existing.Name, secretType)
		if err != nil {
			tx.rollback(ctx)
			return nil, err
		}
		if !has {
			continue
		}
		if err := tx.remove(ctx, secretType); err != nil {
			tx.rollback(ctx)
			return nil, err
		}
		removed = append(removed, secretType)
	}

	saved, err := saveAfterSecrets(ctx, env, tx, profile)
	if err != nil {
		return nil, err
	}

	problems, err := problemsOf(ctx, env, saved)
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("edit")
	entry.Profile = saved.Name
	audit.Log(entry)

	return &EditResult{
		Profile:        saved,
		StoredSecrets:  stored,
		RemovedSecrets: removed,
		Problems:       problems,
	}, nil
}

func applyEdits(profile profiles.AuthProfile, opts EditOptions) profiles.AuthProfile {
	if opts.TenantID != nil {
		profile.TenantID = *opts.TenantID
	}
	if opts.ClientID != nil {
		profile.ClientID = *opts.ClientID
	}
	if opts.Scopes != nil {
		profile.Scopes = append([]string(nil), opts.Scopes...)
	}
	if opts.Resource != nil {
		profile.Resource = *opts.Resource
	}
	if opts.AuthMethod != nil {
		profile.AuthMethod = *opts.AuthMethod
	}
	if opts.RedirectURI != nil {
		profile.RedirectURI = *opts.RedirectURI
	}
	if opts.CertificatePath != nil {
		profile.CertificatePath = *opts.CertificatePath
	}
	if opts.CacheCertificatePassword != nil {
		profile.CacheCertificatePassword = *opts.CacheCertificatePassword
	}
	if opts.ClearDefaultFlow {
		profile.DefaultFlow = nil
	} else if opts.DefaultFlow != nil {
		flow := *opts.DefaultFlow
		profile.DefaultFlow = &flow
	}
	return profile
}
