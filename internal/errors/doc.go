// Package errors provides typed error values for the tokn vault.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Profile errors: missing, duplicate or badly named profiles
//     (ErrProfileNotFound, ErrProfileExists, ErrInvalidName)
//   - Validation errors: profile fields break the rules (ErrValidation,
//     carried by *ValidationError with the full list of violations)
//   - Backend errors: the secret store cannot be reached or its data is
//     unreadable (ErrBackendUnavailable, ErrCorrupted, ErrNoBackend)
//   - Exchange errors: export artifacts that cannot be opened
//     (ErrDecryptionFailed)
//
// # Usage
//
// Return errors from internal packages:
//
//	if !found {
//	    return errors.ErrProfileNotFound
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Import(ctx, env, opts)
//	if errors.Is(err, kerrors.ErrDecryptionFailed) {
//	    // Show the generic "could not decrypt" message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("loading profile %s: %w", name, errors.ErrProfileNotFound)
//
// ErrCorrupted is recovered locally by the vault (the corrupted store is
// treated as empty) and should rarely reach the CLI. ErrNoBackend is the only
// error that aborts startup.
package errors
