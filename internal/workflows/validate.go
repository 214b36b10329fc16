package workflows

import (
	"context"
	"fmt"

	kerrors "github.com/PolarWolf314/tokn/internal/errors"
	"github.com/PolarWolf314/tokn/internal/profiles"
)

// ValidateOptions configures the validate workflow.
type ValidateOptions struct {
	// Name selects one profile. Empty validates every profile.
	Name string
}

// ProfileReport lists the violations of one profile.
type ProfileReport struct {
	Name       string   `json:"name"`
	Violations []string `json:"violations,omitempty"`
}

// Valid reports whether the profile had no violations.
func (r ProfileReport) Valid() bool {
	return len(r.Violations) == 0
}

// ValidateResult contains one report per checked profile.
type ValidateResult struct {
	Reports []ProfileReport `json:"profiles"`
}

// InvalidCount is the number of profiles with violations.
func (r *ValidateResult) InvalidCount() int {
	n := 0
	for _, report := range r.Reports {
		if !report.Valid() {
			n++
		}
	}
	return n
}

// Validate checks profiles against the validation rules. Violations are
// reported in the result; only storage failures are returned as errors.
//
// Returns ErrProfileNotFound if Name is set and matches no profile.
func Validate(ctx context.Context, env *Env, opts ValidateOptions) (*ValidateResult, error) {
	var targets []profiles.AuthProfile
	if opts.Name != "" {
		profile, ok, err := env.Repo.Get(ctx, opts.Name)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrProfileNotFound, opts.Name)
		}
		targets = append(targets, profile)
	} else {
		all, err := env.Repo.List(ctx, "")
		if err != nil {
			return nil, err
		}
		targets = all
	}

	result := &ValidateResult{}
	for _, profile := range targets {
		problems, err := problemsOf(ctx, env, profile)
		if err != nil {
			return nil, fmt.Errorf("validating %s: %w", profile.Name, err)
		}
		result.Reports = append(result.Reports, ProfileReport{Name: profile.Name, Violations: problems})
	}
	return result, nil
}
