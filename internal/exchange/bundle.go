package exchange

import (
	"time"

	"github.com/PolarWolf314/tokn/internal/profiles"
)

// Bundle is the plaintext payload of an artifact. Secrets are nil when they
// were not exported or not stored.
type Bundle struct {
	Profile      profiles.AuthProfile `json:"profile"`
	ClientSecret *string              `json:"clientSecret"`
	CertPassword *string              `json:"certPassword"`
	ExportedAt   time.Time            `json:"exportedAt"`
}

// HasSecrets reports whether the bundle carries any secret value.
func (b Bundle) HasSecrets() bool {
	return b.ClientSecret != nil || b.CertPassword != nil
}
