package tokencache

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	logger "github.com/PolarWolf314/tokn/internal/logging"
	"github.com/PolarWolf314/tokn/internal/secrets"
)

// ClientKind separates caches of public and confidential clients of the same
// profile.
type ClientKind string

const (
	Public       ClientKind = "public"
	Confidential ClientKind = "confidential"
)

// ClientKinds lists every kind a profile may have a cache for.
var ClientKinds = []ClientKind{Public, Confidential}

// CacheKey returns the logical cache key for a profile. Profile names are
// case-insensitive, so the key is lower-cased.
func CacheKey(profile string, kind ClientKind) string {
	return strings.ToLower(profile) + ":" + string(kind)
}

// Adapter loads and stores one cache blob. Blobs are opaque; they are
// base64 encoded before reaching the backend.
type Adapter struct {
	backend secrets.Backend
	key     string
	log     logger.Logger
}

func NewAdapter(backend secrets.Backend, profile string, kind ClientKind, log logger.Logger) *Adapter {
	return &Adapter{
		backend: backend,
		key:     secrets.TokenCacheKey(CacheKey(profile, kind)),
		log:     log,
	}
}

// Key is the backend key the adapter reads and writes.
func (a *Adapter) Key() string {
	return a.key
}

// OnBeforeAccess returns the stored blob. A missing entry, a backend error or
// an undecodable entry all report ok=false; the last two are logged.
func (a *Adapter) OnBeforeAccess(ctx context.Context) (blob []byte, ok bool) {
	encoded, found, err := a.backend.Retrieve(ctx, a.key)
	if err != nil {
		a.log.Warnf("Token cache %s could not be read: %v", a.key, err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	blob, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		a.log.Warnf("Token cache %s is not valid base64 and is ignored", a.key)
		return nil, false
	}
	return blob, true
}

// OnAfterAccess persists blob when changed is set. An empty blob removes the
// entry.
func (a *Adapter) OnAfterAccess(ctx context.Context, blob []byte, changed bool) error {
	if !changed {
		return nil
	}
	if len(blob) == 0 {
		return a.Clear(ctx)
	}
	if err := a.backend.Store(ctx, a.key, base64.StdEncoding.EncodeToString(blob)); err != nil {
		return fmt.Errorf("writing token cache %s: %w", a.key, err)
	}
	a.log.Debugf("Token cache %s updated (%d bytes)", a.key, len(blob))
	return nil
}

// Clear removes the stored blob.
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.backend.Delete(ctx, a.key); err != nil {
		return fmt.Errorf("clearing token cache %s: %w", a.key, err)
	}
	return nil
}

// ClearProfile removes the caches of every client kind for profile.
func ClearProfile(ctx context.Context, backend secrets.Backend, profile string, log logger.Logger) error {
	for _, kind := range ClientKinds {
		if err := NewAdapter(backend, profile, kind, log).Clear(ctx); err != nil {
			return err
		}
	}
	return nil
}
