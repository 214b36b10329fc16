package secrets

import "fmt"

// SecretType names the kind of secret a profile may own.
type SecretType string

const (
	// SecretTypeClientSecret is the shared secret of a confidential client.
	SecretTypeClientSecret SecretType = "secret"

	// SecretTypeCertPassword is a cached certificate password.
	SecretTypeCertPassword SecretType = "cert-password"
)

// SecretTypes lists every secret a profile could have created.
var SecretTypes = []SecretType{SecretTypeClientSecret, SecretTypeCertPassword}

// ParseSecretType accepts the spelling used in backend keys.
func ParseSecretType(s string) (SecretType, error) {
	for _, t := range SecretTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown secret type %q (use %q or %q)", s, SecretTypeClientSecret, SecretTypeCertPassword)
}

// SecretKey builds the backend key for a profile secret.
func SecretKey(service, profile string, secretType SecretType) string {
	return service + ":" + profile + ":" + string(secretType)
}

// TokenCacheKey builds the backend key for a token cache entry.
func TokenCacheKey(logicalKey string) string {
	return "token-cache:" + logicalKey
}

// HealthCheckKey builds a throwaway key for backend health checks. Profile names
// cannot contain ':', so it never matches a profile secret.
func HealthCheckKey(service, id string) string {
	return service + ":health-check:" + id
}
