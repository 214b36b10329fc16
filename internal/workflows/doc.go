// Package workflows provides high-level orchestration for tokn commands.
//
// Workflows coordinate the profile repository, secret backend, token cache
// and audit trail to implement complete user-facing features. Each workflow
// handles a single command's business logic, independent of CLI concerns
// like flag parsing, spinners and output formatting.
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Reads secrets and passphrases from the terminal or stdin
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// # Available Workflows
//
//   - Create: adds a profile and its secrets
//   - Edit: changes fields and secrets of an existing profile
//   - Remove: deletes a profile, its secrets and its token caches
//   - Validate: reports rule violations of one or all profiles
//   - Export: encodes a profile into a passphrase-protected artifact
//   - Import: restores a profile from an artifact
//   - Doctor: checks configuration, storage and profiles
//
// # Write Ordering
//
// Mutations write secrets before metadata. If the metadata write fails the
// secrets written by that call are restored, so a profile never points at
// half-written credentials.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package:
//
//	result, err := workflows.Import(ctx, env, opts)
//	if errors.Is(err, kerrors.ErrProfileExists) {
//	    // suggest --name
//	}
package workflows
