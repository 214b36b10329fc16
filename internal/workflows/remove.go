package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/tokn/internal/audit"
	"github.com/PolarWolf314/tokn/internal/configs"
	kerrors "github.com/PolarWolf314/tokn/internal/errors"
	"github.com/PolarWolf314/tokn/internal/profiles"
	"github.com/PolarWolf314/tokn/internal/tokencache"
)

// RemoveOptions configures the remove workflow.
type RemoveOptions struct {
	Name string
}

// RemoveResult contains the outcome of a remove operation.
type RemoveResult struct {
	// Name is the stored spelling of the removed profile.
	Name string

	// ClearedDefault is set when the profile was the configured default.
	ClearedDefault bool
}

// Remove deletes a profile together with its secrets and token caches.
//
// Returns ErrProfileNotFound if the profile does not exist.
func Remove(ctx context.Context, env *Env, opts RemoveOptions) (*RemoveResult, error) {
	existing, ok, err := env.Repo.Get(ctx, opts.Name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrProfileNotFound, opts.Name)
	}

	if err := env.Repo.Delete(ctx, existing.Name); err != nil {
		return nil, err
	}

	if err := tokencache.ClearProfile(ctx, env.Backend, existing.Name, env.Logger); err != nil {
		env.Logger.Warnf("Token caches of %s were not cleared: %v", existing.Name, err)
	}

	result := &RemoveResult{Name: existing.Name}
	if profiles.SameName(env.Config.Profiles.Default, existing.Name) {
		env.Config.Profiles.Default = ""
		if err := configs.SaveUserConfig(env.Settings, env.Config); err != nil {
			env.Logger.Warnf("Default profile setting was not cleared: %v", err)
		} else {
			result.ClearedDefault = true
		}
	}

	entry := audit.LogWithUser("remove")
	entry.Profile = existing.Name
	audit.Log(entry)

	return result, nil
}
