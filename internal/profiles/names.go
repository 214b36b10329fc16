package profiles

import (
	"fmt"
	"strings"
	"unicode"

	kerrors "github.com/PolarWolf314/tokn/internal/errors"
)

const maxNameLength = 128

// ValidateName checks that name can be used as a profile key. Names end up
// inside secret keys ({service}:{name}:{type}), so the key separator and path
// separators are rejected.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name must not be empty", kerrors.ErrInvalidName)
	}
	if name != strings.TrimSpace(name) {
		return fmt.Errorf("%w: %q has leading or trailing whitespace", kerrors.ErrInvalidName, name)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", kerrors.ErrInvalidName, maxNameLength)
	}
	for _, r := range name {
		if r == ':' || r == '/' || r == '\\' || unicode.IsControl(r) {
			return fmt.Errorf("%w: %q contains %q", kerrors.ErrInvalidName, name, r)
		}
	}
	return nil
}

// SameName reports whether two profile names refer to the same profile.
func SameName(a, b string) bool {
	return strings.EqualFold(a, b)
}
