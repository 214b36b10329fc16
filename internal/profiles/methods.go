package profiles

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AuthMethod is how a profile proves its client identity.
type AuthMethod int

const (
	SharedSecret AuthMethod = iota
	Certificate
	PasswordlessCertificate
)

var authMethodNames = []string{"SharedSecret", "Certificate", "PasswordlessCertificate"}

func (m AuthMethod) String() string {
	if !m.Valid() {
		return "AuthMethod(" + strconv.Itoa(int(m)) + ")"
	}
	return authMethodNames[m]
}

// Valid reports whether m is one of the declared methods.
func (m AuthMethod) Valid() bool {
	return m >= SharedSecret && int(m) < len(authMethodNames)
}

// UsesCertificate reports whether the method authenticates with a
// certificate file.
func (m AuthMethod) UsesCertificate() (bool, error) {
	switch m {
	case SharedSecret:
		return false, nil
	case Certificate, PasswordlessCertificate:
		return true, nil
	default:
		return false, fmt.Errorf("unsupported auth method %s", m)
	}
}

// ParseAuthMethod accepts the canonical names case-insensitively, plus the
// kebab-case spellings used on the command line.
func ParseAuthMethod(s string) (AuthMethod, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
	for i, name := range authMethodNames {
		if strings.ToLower(name) == normalized {
			return AuthMethod(i), nil
		}
	}
	return 0, fmt.Errorf("unknown auth method %q (expected shared-secret, certificate or passwordless-certificate)", s)
}

func (m AuthMethod) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("cannot encode %s", m)
	}
	return json.Marshal(m.String())
}

// UnmarshalJSON reads the string form and, for older files, the integer
// ordinal.
func (m *AuthMethod) UnmarshalJSON(data []byte) error {
	parsed, err := parseEnumJSON(data, len(authMethodNames), func(s string) (int, error) {
		method, err := ParseAuthMethod(s)
		return int(method), err
	})
	if err != nil {
		return fmt.Errorf("authMethod: %w", err)
	}
	*m = AuthMethod(parsed)
	return nil
}

// Set implements pflag.Value.
func (m *AuthMethod) Set(s string) error {
	parsed, err := ParseAuthMethod(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *AuthMethod) Type() string {
	return "method"
}

// Flow is the token acquisition flow a profile uses by default.
type Flow int

const (
	Interactive Flow = iota
	DeviceCode
	ClientCredentials
	OnBehalfOf
)

var flowNames = []string{"Interactive", "DeviceCode", "ClientCredentials", "OnBehalfOf"}

func (f Flow) String() string {
	if !f.Valid() {
		return "Flow(" + strconv.Itoa(int(f)) + ")"
	}
	return flowNames[f]
}

func (f Flow) Valid() bool {
	return f >= Interactive && int(f) < len(flowNames)
}

// ParseFlow accepts the canonical names case-insensitively and kebab-case.
func ParseFlow(s string) (Flow, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
	for i, name := range flowNames {
		if strings.ToLower(name) == normalized {
			return Flow(i), nil
		}
	}
	return 0, fmt.Errorf("unknown flow %q (expected interactive, device-code, client-credentials or on-behalf-of)", s)
}

func (f Flow) MarshalJSON() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("cannot encode %s", f)
	}
	return json.Marshal(f.String())
}

func (f *Flow) UnmarshalJSON(data []byte) error {
	parsed, err := parseEnumJSON(data, len(flowNames), func(s string) (int, error) {
		flow, err := ParseFlow(s)
		return int(flow), err
	})
	if err != nil {
		return fmt.Errorf("defaultFlow: %w", err)
	}
	*f = Flow(parsed)
	return nil
}

// Set implements pflag.Value.
func (f *Flow) Set(s string) error {
	parsed, err := ParseFlow(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Flow) Type() string {
	return "flow"
}

// parseEnumJSON decodes either a JSON string (via parse) or an integer
// ordinal below count.
func parseEnumJSON(data []byte, count int, parse func(string) (int, error)) (int, error) {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		return parse(name)
	}

	var ordinal int
	if err := json.Unmarshal(data, &ordinal); err != nil {
		return 0, fmt.Errorf("expected a name or ordinal, got %s", string(data))
	}
	if ordinal < 0 || ordinal >= count {
		return 0, fmt.Errorf("ordinal %d out of range", ordinal)
	}
	return ordinal, nil
}
