package secrets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/tokn/internal/errors"
)

// Protector transforms secret bytes before they are written to disk.
type Protector interface {
	Protect(plaintext []byte) ([]byte, error)
	Unprotect(data []byte) ([]byte, error)
}

// FileBackend keeps one protected file per key in a directory.
type FileBackend struct {
	dir       string
	protector Protector
	kind      Kind
}

// NewFileBackend returns a FileBackend storing files under dir.
func NewFileBackend(dir string, protector Protector, kind Kind) *FileBackend {
	return &FileBackend{dir: dir, protector: protector, kind: kind}
}

func (b *FileBackend) Kind() Kind {
	return b.kind
}

// path hashes the key so key names never reach the filesystem.
func (b *FileBackend) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(b.dir, hex.EncodeToString(sum[:])+".dat")
}

func (b *FileBackend) Store(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(b.dir, 0700); err != nil {
		return fmt.Errorf("%w: creating %s: %w", kerrors.ErrBackendUnavailable, b.dir, err)
	}

	data, err := b.protector.Protect([]byte(value))
	if err != nil {
		return fmt.Errorf("%w: protecting secret: %w", kerrors.ErrBackendUnavailable, err)
	}

	target := b.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("%w: writing secret: %w", kerrors.ErrBackendUnavailable, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: writing secret: %w", kerrors.ErrBackendUnavailable, err)
	}

	return nil
}

func (b *FileBackend) Retrieve(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(b.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: reading secret: %w", kerrors.ErrBackendUnavailable, err)
	}

	plaintext, err := b.protector.Unprotect(data)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", kerrors.ErrCorrupted, err)
	}
	if !utf8.Valid(plaintext) {
		return "", false, fmt.Errorf("%w: secret is not valid UTF-8", kerrors.ErrCorrupted)
	}

	return string(plaintext), true, nil
}

func (b *FileBackend) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(b.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: deleting secret: %w", kerrors.ErrBackendUnavailable, err)
	}
	return nil
}

func (b *FileBackend) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	info, err := os.Stat(b.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: checking secret: %w", kerrors.ErrBackendUnavailable, err)
	}
	return info.Mode().IsRegular(), nil
}
