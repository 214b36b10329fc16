// Package secrets stores secret values for tokn profiles using the strongest
// primitive the host offers.
//
// # Backends
//
// Every backend implements the four-operation Backend interface (Store,
// Retrieve, Delete, Exists) over opaque string keys and UTF-8 values. One
// backend is chosen per process by Open, based on the host OS family, with
// no fallback chain:
//
//   - Windows: FileBackend + DPAPIProtector. Values are encrypted with the
//     current user's DPAPI key before being written to disk.
//   - macOS: KeychainBackend. Values live in the login keychain, managed
//     through the security(1) command with a fixed service name and the
//     logical key as the account name. security(1) only accepts a new
//     password as the -w argument, so while add-generic-password runs the
//     value is visible to other processes of the same user in the process
//     listing. This limitation comes with the security CLI; only a direct
//     Keychain Services binding would avoid it.
//   - Everything else: FileBackend + XORProtector. Values are XORed with a
//     fixed byte. This is obfuscation, NOT encryption: anyone who can read
//     the files can recover the secrets. Do not rely on it for production
//     credentials.
//
// File backends name each file after the hex SHA-256 of its logical key, so
// key names (and therefore profile names) never appear on disk.
//
// # Caching
//
// Open wraps the chosen backend in a CachedBackend. Its cache lives only in
// memory, belongs to that backend instance, and is updated on every write or
// delete of the same key. It is never persisted.
//
// # Errors
//
// Backends report ErrBackendUnavailable when the store cannot be reached and
// ErrCorrupted when stored data cannot be read back. CachedBackend turns
// ErrCorrupted into "absent" so callers can prompt for the secret again.
//
// # Key Naming
//
//	{service}:{profile}:secret          client secret
//	{service}:{profile}:cert-password   certificate password
//	token-cache:{logical key}           token cache blobs
package secrets
