package secrets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	kerrors "github.com/PolarWolf314/tokn/internal/errors"
)

// keychainItemNotFound is the exit status security(1) uses for
// errSecItemNotFound.
const keychainItemNotFound = 44

// Runner executes a command and reports its stdout and exit status. err is
// only set when the command could not be run at all.
type Runner func(ctx context.Context, name string, args ...string) (stdout []byte, exitCode int, err error)

// KeychainBackend stores secrets as generic passwords in the macOS keychain:
// the service is fixed and the logical key is the account name.
type KeychainBackend struct {
	service string
	command string
	run     Runner
}

// NewKeychainBackend returns a keychain backend driving command (normally
// "security"). A nil runner executes the real binary.
func NewKeychainBackend(service, command string, run Runner) *KeychainBackend {
	if run == nil {
		run = execRunner
	}
	return &KeychainBackend{service: service, command: command, run: run}
}

func (b *KeychainBackend) Kind() Kind {
	return KindKeychain
}

// Store deletes any existing entry first because add-generic-password fails
// when the item already exists. The value travels in argv (-w); see the
// package doc.
func (b *KeychainBackend) Store(ctx context.Context, key, value string) error {
	if err := b.Delete(ctx, key); err != nil {
		return err
	}

	_, err := b.invoke(ctx, "add-generic-password", "-s", b.service, "-a", key, "-w", value)
	return err
}

func (b *KeychainBackend) Retrieve(ctx context.Context, key string) (string, bool, error) {
	out, err := b.invoke(ctx, "find-generic-password", "-s", b.service, "-a", key, "-w")
	if errors.Is(err, errItemNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimSuffix(string(out), "\n"), true, nil
}

func (b *KeychainBackend) Delete(ctx context.Context, key string) error {
	_, err := b.invoke(ctx, "delete-generic-password", "-s", b.service, "-a", key)
	if errors.Is(err, errItemNotFound) {
		return nil
	}
	return err
}

func (b *KeychainBackend) Exists(ctx context.Context, key string) (bool, error) {
	_, err := b.invoke(ctx, "find-generic-password", "-s", b.service, "-a", key)
	if errors.Is(err, errItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var errItemNotFound = errors.New("keychain item not found")

// invoke runs one security(1) subcommand. Every failure other than "item not
// found" is reported as ErrBackendUnavailable.
func (b *KeychainBackend) invoke(ctx context.Context, subcommand string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, code, err := b.run(ctx, b.command, append([]string{subcommand}, args...)...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: running %s %s: %w", kerrors.ErrBackendUnavailable, b.command, subcommand, err)
	}

	switch code {
	case 0:
		return out, nil
	case keychainItemNotFound:
		return nil, errItemNotFound
	default:
		return nil, fmt.Errorf("%w: %s %s exited with status %d", kerrors.ErrBackendUnavailable, b.command, subcommand, code)
	}
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		return stdout.Bytes(), exitErr.ExitCode(), nil
	}
	return nil, -1, err
}
