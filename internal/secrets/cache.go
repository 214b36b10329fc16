package secrets

import (
	"context"
	"errors"
	"sync"

	kerrors "github.com/PolarWolf314/tokn/internal/errors"
	logger "github.com/PolarWolf314/tokn/internal/logging"
)

// Cache holds decrypted values for the lifetime of one backend instance.
type Cache struct {
	mu     sync.Mutex
	values map[string]string
}

func NewCache() *Cache {
	return &Cache{values: make(map[string]string)}
}

func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.values[key]
	return value, ok
}

func (c *Cache) Put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}

// CachedBackend layers a Cache over another Backend. Corrupted values are
// reported as absent.
type CachedBackend struct {
	backend Backend
	cache   *Cache
	log     logger.Logger
}

func NewCachedBackend(backend Backend, log logger.Logger) *CachedBackend {
	return &CachedBackend{backend: backend, cache: NewCache(), log: log}
}

// Unwrap returns the underlying backend.
func (b *CachedBackend) Unwrap() Backend {
	return b.backend
}

func (b *CachedBackend) Kind() Kind {
	return b.backend.Kind()
}

func (b *CachedBackend) Store(ctx context.Context, key, value string) error {
	b.cache.Invalidate(key)
	if err := b.backend.Store(ctx, key, value); err != nil {
		return err
	}
	b.cache.Put(key, value)
	return nil
}

func (b *CachedBackend) Retrieve(ctx context.Context, key string) (string, bool, error) {
	if value, ok := b.cache.Get(key); ok {
		return value, true, nil
	}

	value, ok, err := b.backend.Retrieve(ctx, key)
	if errors.Is(err, kerrors.ErrCorrupted) {
		b.log.Warnf("Stored secret for %s could not be read and will be treated as missing: %v", key, err)
		return "", false, nil
	}
	if err != nil || !ok {
		return "", false, err
	}

	b.cache.Put(key, value)
	return value, true, nil
}

func (b *CachedBackend) Delete(ctx context.Context, key string) error {
	b.cache.Invalidate(key)
	return b.backend.Delete(ctx, key)
}

// Exists reads the value through Retrieve so an unreadable entry is
// reported missing, the same as Retrieve reports it.
func (b *CachedBackend) Exists(ctx context.Context, key string) (bool, error) {
	_, ok, err := b.Retrieve(ctx, key)
	return ok, err
}
