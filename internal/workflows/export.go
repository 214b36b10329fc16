package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/tokn/internal/audit"
	kerrors "github.com/PolarWolf314/tokn/internal/errors"
	"github.com/PolarWolf314/tokn/internal/exchange"
	"github.com/PolarWolf314/tokn/internal/secrets"
)

// ExportOptions configures the export workflow.
type ExportOptions struct {
	Name       string
	Passphrase string

	// IncludeSecrets copies the stored secrets into the artifact.
	IncludeSecrets bool

	// Secrets names the secrets to copy. Each one must be stored. Setting
	// it implies IncludeSecrets.
	Secrets []secrets.SecretType

	// OutputPath receives the artifact. Empty leaves writing to the caller.
	OutputPath string
}

// ExportResult contains the outcome of an export operation.
type ExportResult struct {
	Name string

	// Artifact is the encoded bundle, without a trailing newline.
	Artifact string

	// IncludedSecrets lists the secrets copied into the artifact.
	IncludedSecrets []secrets.SecretType

	// OutputPath is set when the artifact was written to a file.
	OutputPath string
}

// Export encodes a profile into a passphrase-protected artifact.
//
// Returns ErrProfileNotFound if the profile does not exist and
// ErrSecretNotFound if a secret named in Secrets is not stored.
func Export(ctx context.Context, env *Env, opts ExportOptions) (*ExportResult, error) {
	profile, ok, err := env.Repo.Get(ctx, opts.Name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrProfileNotFound, opts.Name)
	}

	bundle := exchange.Bundle{Profile: profile, ExportedAt: time.Now().UTC()}
	result := &ExportResult{Name: profile.Name}

	types := secrets.SecretTypes
	if len(opts.Secrets) > 0 {
		types = opts.Secrets
	}
	for _, secretType := range types {
		if _, err := secrets.ParseSecretType(string(secretType)); err != nil {
			return nil, err
		}
	}
	if opts.IncludeSecrets || len(opts.Secrets) > 0 {
		for _, secretType := range types {
			value, ok, err := env.Repo.Secret(ctx, profile.Name, secretType)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", secretType, err)
			}
			if !ok && len(opts.Secrets) > 0 {
				return nil, fmt.Errorf("%w: %s of profile %s", kerrors.ErrSecretNotFound, secretType, profile.Name)
			}
			if !ok {
				continue
			}
			switch secretType {
			case secrets.SecretTypeClientSecret:
				bundle.ClientSecret = &value
			case secrets.SecretTypeCertPassword:
				bundle.CertPassword = &value
			}
			result.IncludedSecrets = append(result.IncludedSecrets, secretType)
		}
	}

	artifact, err := exchange.Encode(ctx, bundle, opts.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("encoding artifact: %w", err)
	}
	result.Artifact = artifact

	if opts.OutputPath != "" {
		if err := writeArtifact(opts.OutputPath, artifact); err != nil {
			return nil, err
		}
		result.OutputPath = opts.OutputPath
	}

	entry := audit.LogWithUser("export")
	entry.Profile = profile.Name
	entry.Target = opts.OutputPath
	entry.IncludeSecrets = len(result.IncludedSecrets) > 0
	audit.Log(entry)

	return result, nil
}

func writeArtifact(path, artifact string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(artifact+"\n"), 0600); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	return nil
}
