package secrets

import (
	"context"

	logger "github.com/PolarWolf314/tokn/internal/logging"
)

// Backend is a platform key/value store for secret strings.
type Backend interface {
	// Store writes value under key, replacing any previous value.
	Store(ctx context.Context, key, value string) error

	// Retrieve returns the value for key. ok is false when nothing is stored.
	Retrieve(ctx context.Context, key string) (value string, ok bool, err error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a value is stored under key. Raw backends
	// only check presence; CachedBackend also requires the value to be
	// readable.
	Exists(ctx context.Context, key string) (bool, error)

	// Kind identifies the storage mechanism.
	Kind() Kind
}

// Kind identifies a backend implementation.
type Kind string

const (
	KindDPAPI          Kind = "dpapi"
	KindKeychain       Kind = "keychain"
	KindObfuscatedFile Kind = "obfuscated-file"
)

// Secure reports whether the backend encrypts values. The obfuscated file
// backend does not.
func (k Kind) Secure() bool {
	switch k {
	case KindDPAPI, KindKeychain:
		return true
	default:
		return false
	}
}

// Description returns a human readable summary of the backend.
func (k Kind) Description() string {
	switch k {
	case KindDPAPI:
		return "Windows DPAPI (current user)"
	case KindKeychain:
		return "macOS keychain"
	case KindObfuscatedFile:
		return "XOR-obfuscated files (not encrypted)"
	default:
		return "unknown backend " + string(k)
	}
}

// Options configures Open.
type Options struct {
	// Dir holds secret files for file-based backends.
	Dir string

	// ServiceName is the keychain service name.
	ServiceName string

	// KeychainCommand is the keystore binary on macOS.
	KeychainCommand string

	Logger logger.Logger
}

// Open selects the backend for this host and wraps it in a CachedBackend.
// It returns ErrNoBackend when the host has no usable backend.
func Open(opts Options) (*CachedBackend, error) {
	backend, err := newPlatformBackend(opts)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debugf("Using secret backend: %s", backend.Kind().Description())
	return NewCachedBackend(backend, opts.Logger), nil
}
