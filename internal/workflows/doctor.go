package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/PolarWolf314/tokn/internal/configs"
	"github.com/PolarWolf314/tokn/internal/profiles"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means the check found a critical issue.
	CheckError
)

func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// DoctorOptions configures the doctor workflow.
type DoctorOptions struct {
	// SkipAccessCheck skips the write/read/delete round trip against the backend.
	SkipAccessCheck bool
}

type doctorCheck func(ctx context.Context, env *Env) []CheckResult

// Doctor runs health checks on the local vault.
//
// The doctor workflow checks:
//   - config.toml parses
//   - profiles.json parses and is private to the user
//   - which secret backend is in use
//   - the backend accepts a write, read and delete
//   - every profile passes validation
func Doctor(ctx context.Context, env *Env, opts DoctorOptions) (*DoctorResult, error) {
	checks := []doctorCheck{
		checkUserConfig,
		checkProfileFile,
		checkBackendKind,
	}
	if !opts.SkipAccessCheck {
		checks = append(checks, checkBackendAccess)
	}
	checks = append(checks, checkProfiles)

	var results []CheckResult
	for _, check := range checks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, check(ctx, env)...)
	}

	var suggestions []string
	seen := make(map[string]bool)
	for _, result := range results {
		if result.Suggestion != "" && result.Status != CheckPass && !seen[result.Suggestion] {
			suggestions = append(suggestions, result.Suggestion)
			seen[result.Suggestion] = true
		}
	}

	return &DoctorResult{
		Checks:      results,
		Summary:     calculateDoctorSummary(results),
		Suggestions: suggestions,
	}, nil
}

func checkUserConfig(_ context.Context, env *Env) []CheckResult {
	const name = "User configuration"

	if _, err := os.Stat(env.Settings.ConfigPath); os.IsNotExist(err) {
		return []CheckResult{{Name: name, Status: CheckPass, Message: "No config.toml, using defaults"}}
	}

	if _, err := configs.LoadUserConfig(env.Settings); err != nil {
		return []CheckResult{{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to parse config.toml: %v", err),
			Suggestion: "Fix the syntax of " + env.Settings.ConfigPath + " or recreate it with 'tokn config init --force'",
		}}
	}

	return []CheckResult{{Name: name, Status: CheckPass, Message: "config.toml is valid"}}
}

func checkProfileFile(_ context.Context, env *Env) []CheckResult {
	const name = "Profile store"
	path := env.Settings.ProfilesPath

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return []CheckResult{{Name: name, Status: CheckPass, Message: "No profiles yet"}}
	}
	if err != nil {
		return []CheckResult{{
			Name:    name,
			Status:  CheckError,
			Message: fmt.Sprintf("Cannot access %s: %v", path, err),
		}}
	}

	var results []CheckResult

	data, err := os.ReadFile(path)
	if err != nil {
		return []CheckResult{{
			Name:    name,
			Status:  CheckError,
			Message: fmt.Sprintf("Cannot read %s: %v", path, err),
		}}
	}
	var stored []profiles.AuthProfile
	if strings.TrimSpace(string(data)) != "" {
		if err := json.Unmarshal(data, &stored); err != nil {
			results = append(results, CheckResult{
				Name:       name,
				Status:     CheckError,
				Message:    fmt.Sprintf("profiles.json is malformed and is read as empty: %v", err),
				Suggestion: "Restore profiles.json from a backup; the next save keeps a copy as profiles.json.bak",
			})
		}
	}
	if len(results) == 0 {
		results = append(results, CheckResult{
			Name:    name,
			Status:  CheckPass,
			Message: fmt.Sprintf("profiles.json holds %d profile(s)", len(stored)),
		})
	}

	if runtime.GOOS != "windows" && info.Mode().Perm()&0077 != 0 {
		results = append(results, CheckResult{
			Name:       "Profile store permissions",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("profiles.json has permissions %04o", info.Mode().Perm()),
			Suggestion: "Run: chmod 600 " + path,
		})
	}

	return results
}

func checkBackendKind(_ context.Context, env *Env) []CheckResult {
	kind := env.Backend.Kind()
	if !kind.Secure() {
		return []CheckResult{{
			Name:       "Secret backend",
			Status:     CheckWarning,
			Message:    "Secrets use " + kind.Description(),
			Suggestion: "Use a certificate profile or a machine with an OS keystore for production credentials",
		}}
	}
	return []CheckResult{{Name: "Secret backend", Status: CheckPass, Message: "Secrets use " + kind.Description()}}
}

func checkBackendAccess(ctx context.Context, env *Env) []CheckResult {
	const name = "Secret backend access"

	if err := env.Repo.CheckBackend(ctx); err != nil {
		return []CheckResult{{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Access check failed at %v", err),
			Suggestion: "Check that the secret store is unlocked and writable",
		}}
	}
	return []CheckResult{{Name: name, Status: CheckPass, Message: "Write, read and delete succeeded"}}
}

func checkProfiles(ctx context.Context, env *Env) []CheckResult {
	result, err := Validate(ctx, env, ValidateOptions{})
	if err != nil {
		return []CheckResult{{
			Name:    "Profiles",
			Status:  CheckError,
			Message: fmt.Sprintf("Could not validate profiles: %v", err),
		}}
	}
	if len(result.Reports) == 0 {
		return []CheckResult{{Name: "Profiles", Status: CheckPass, Message: "No profiles to validate"}}
	}

	var results []CheckResult
	for _, report := range result.Reports {
		if report.Valid() {
			results = append(results, CheckResult{
				Name:    "Profile " + report.Name,
				Status:  CheckPass,
				Message: "Valid",
			})
			continue
		}
		results = append(results, CheckResult{
			Name:       "Profile " + report.Name,
			Status:     CheckWarning,
			Message:    strings.Join(report.Violations, "; "),
			Suggestion: fmt.Sprintf("Run 'tokn profile edit %s' to fix it", report.Name),
		})
	}
	return results
}

func calculateDoctorSummary(results []CheckResult) DoctorSummary {
	var summary DoctorSummary
	for _, result := range results {
		switch result.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
	}
	return summary
}
