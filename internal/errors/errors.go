package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Profile errors indicate issues with the profile repository.
var (
	// ErrProfileNotFound indicates no profile matches the requested name.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProfileExists indicates a profile with the same name already exists.
	ErrProfileExists = errors.New("profile already exists")

	// ErrInvalidName indicates a profile name cannot be used as a key.
	ErrInvalidName = errors.New("invalid profile name")

	// ErrSecretNotFound indicates a secret is not present in the backend.
	ErrSecretNotFound = errors.New("secret not found")
)

// Validation errors indicate a profile breaks one or more field rules.
var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("profile validation failed")
)

// Backend errors indicate issues with the platform secret store.
var (
	// ErrBackendUnavailable indicates the secret store could not be reached
	// (permission denied, keystore command missing or failing).
	ErrBackendUnavailable = errors.New("secret backend unavailable")

	// ErrCorrupted indicates stored data could not be read back.
	ErrCorrupted = errors.New("stored data is corrupted")

	// ErrNoBackend indicates the host has no supported secret backend.
	ErrNoBackend = errors.New("no supported secret backend for this platform")
)

// Exchange errors indicate issues with export artifacts.
var (
	// ErrDecryptionFailed is the single error reported for any artifact that
	// cannot be opened. Wrong passphrases and damaged data are not told apart.
	ErrDecryptionFailed = errors.New("decryption failed")
)

// Audit errors indicate issues reading the audit log.
var (
	// ErrInvalidDateFormat indicates a date filter is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// ValidationError lists every rule a profile violates.
type ValidationError struct {
	Profile    string
	Violations []string
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return fmt.Sprintf("profile %q is invalid", e.Profile)
	}
	return fmt.Sprintf("profile %q is invalid: %s", e.Profile, strings.Join(e.Violations, "; "))
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
