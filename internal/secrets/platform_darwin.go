//go:build darwin

package secrets

import (
	"fmt"
	"os/exec"

	kerrors "github.com/PolarWolf314/tokn/internal/errors"
)

func newPlatformBackend(opts Options) (Backend, error) {
	if _, err := exec.LookPath(opts.KeychainCommand); err != nil {
		return nil, fmt.Errorf("%w: %s not found: %v", kerrors.ErrNoBackend, opts.KeychainCommand, err)
	}
	return NewKeychainBackend(opts.ServiceName, opts.KeychainCommand, nil), nil
}
