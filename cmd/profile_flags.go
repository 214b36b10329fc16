package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/PolarWolf314/tokn/internal/profiles"
	"github.com/spf13/cobra"
)

// profileFields holds the flags shared by create and edit.
type profileFields struct {
	tenant            string
	clientID          string
	scopes            []string
	resource          string
	method            profiles.AuthMethod
	redirectURI       string
	certificate       string
	cacheCertPassword bool
	flow              profiles.Flow
	noFlow            bool

	withSecret       bool
	secretStdin      bool
	withCertPassword bool
}

func (f *profileFields) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.tenant, "tenant", "", "tenant ID (GUID) or domain")
	flags.StringVar(&f.clientID, "client-id", "", "application (client) ID")
	flags.StringSliceVar(&f.scopes, "scope", nil, "scope to request (repeatable)")
	flags.StringVar(&f.resource, "resource", "", "legacy resource URI, used when no scope is set")
	flags.Var(&f.method, "method", "auth method: shared-secret, certificate or passwordless-certificate")
	flags.StringVar(&f.redirectURI, "redirect-uri", "", "redirect URI for interactive sign-in")
	flags.StringVar(&f.certificate, "certificate", "", "path to the client certificate")
	flags.BoolVar(&f.cacheCertPassword, "cache-cert-password", false, "keep the certificate password in the secret store")
	flags.Var(&f.flow, "flow", "default flow: interactive, device-code, client-credentials or on-behalf-of")

	flags.BoolVar(&f.withSecret, "with-secret", false, "prompt for the client secret")
	flags.BoolVar(&f.secretStdin, "secret-stdin", false, "read the client secret (or certificate password) from stdin")
	flags.BoolVar(&f.withCertPassword, "with-cert-password", false, "prompt for the certificate password and cache it")
}

func (f *profileFields) reset() {
	*f = profileFields{}
}

// secrets reads the secrets requested by the flags. --secret-stdin reads the
// one secret the method uses; the --with-* flags prompt without echo.
func (f *profileFields) secrets(method profiles.AuthMethod) (clientSecret, certPassword *string, err error) {
	usesCert, err := method.UsesCertificate()
	if err != nil {
		return nil, nil, err
	}

	if f.withSecret || (f.secretStdin && !usesCert) {
		value, err := readSecret("Client secret: ", f.secretStdin && !usesCert)
		if err != nil {
			return nil, nil, fmt.Errorf("reading client secret: %w", err)
		}
		clientSecret = &value
	}
	if f.withCertPassword || (f.secretStdin && usesCert) {
		value, err := readSecret("Certificate password: ", f.secretStdin && usesCert)
		if err != nil {
			return nil, nil, fmt.Errorf("reading certificate password: %w", err)
		}
		certPassword = &value
	}
	return clientSecret, certPassword, nil
}

// absCertificate makes the certificate path absolute so the profile works
// from any directory.
func (f *profileFields) absCertificate() (string, error) {
	if f.certificate == "" {
		return "", nil
	}
	return filepath.Abs(f.certificate)
}
