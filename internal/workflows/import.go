package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/tokn/internal/audit"
	kerrors "github.com/PolarWolf314/tokn/internal/errors"
	"github.com/PolarWolf314/tokn/internal/exchange"
	"github.com/PolarWolf314/tokn/internal/profiles"
	"github.com/PolarWolf314/tokn/internal/secrets"
)

// ImportOptions configures the import workflow.
type ImportOptions struct {
	Artifact   string
	Passphrase string

	// NewName stores the profile under a different name.
	NewName string
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	Profile profiles.AuthProfile

	// OriginalName is the name embedded in the artifact.
	OriginalName string

	ImportedSecrets []secrets.SecretType

	Problems []string
}

// Import restores a profile from an artifact. Nothing is written when the
// artifact cannot be opened or the target name is taken.
//
// Returns ErrDecryptionFailed for a wrong passphrase or damaged artifact,
// ErrInvalidName for an unusable target name and ErrProfileExists when the
// target name is taken.
func Import(ctx context.Context, env *Env, opts ImportOptions) (*ImportResult, error) {
	bundle, err := exchange.Decode(ctx, opts.Artifact, opts.Passphrase)
	if err != nil {
		return nil, err
	}

	profile := bundle.Profile.Clone()
	name := profile.Name
	if opts.NewName != "" {
		name = opts.NewName
	}
	if err := profiles.ValidateName(name); err != nil {
		return nil, err
	}

	_, exists, err := env.Repo.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrProfileExists, name)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	profile.Name = name
	if bundle.CertPassword != nil {
		profile.CacheCertificatePassword = true
	}

	tx := newSecretTxn(env, name)
	imported, err := writeSecrets(ctx, tx, bundle.ClientSecret, bundle.CertPassword)
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

	entry := audit.LogWithUser("import")
	entry.Profile = saved.Name
	if saved.Name != bundle.Profile.Name {
		entry.Target = bundle.Profile.Name
	}
	entry.IncludeSecrets = len(imported) > 0
	audit.Log(entry)

	return &ImportResult{
		Profile:         saved,
		OriginalName:    bundle.Profile.Name,
		ImportedSecrets: imported,
		Problems:        problems,
	}, nil
}
