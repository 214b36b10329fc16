package profiles

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	kerrors "github.com/PolarWolf314/tokn/internal/errors"
	"github.com/PolarWolf314/tokn/internal/secrets"
)

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("guid", func(fl validator.FieldLevel) bool {
		return IsGUID(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("tenant", func(fl validator.FieldLevel) bool {
		return IsTenant(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// IsGUID reports whether s parses as a GUID.
func IsGUID(s string) bool {
	_, err := uuid.Parse(strings.TrimSpace(s))
	return err == nil
}

// IsTenant accepts a tenant GUID or a domain such as contoso.onmicrosoft.com.
func IsTenant(s string) bool {
	s = strings.TrimSpace(s)
	return IsGUID(s) || (strings.Contains(s, ".") && !strings.ContainsAny(s, " /\\"))
}

// Validate checks a profile before it is used to authenticate. It returns a
// *errors.ValidationError listing every violation, or a backend error if a
// secret could not be checked.
func (r *Repository) Validate(ctx context.Context, profile AuthProfile) error {
	violations := structuralViolations(profile)

	if !hasScope(profile.Scopes) && strings.TrimSpace(profile.Resource) == "" {
		violations = append(violations, "at least one scope (or a legacy resource) is required")
	}

	methodViolations, err := r.methodViolations(ctx, profile)
	if err != nil {
		return err
	}
	violations = append(violations, methodViolations...)

	if len(violations) > 0 {
		return &kerrors.ValidationError{Profile: profile.Name, Violations: violations}
	}
	return nil
}

func structuralViolations(profile AuthProfile) []string {
	err := structValidator.Struct(profile)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{err.Error()}
	}

	var violations []string
	for _, fe := range fieldErrors {
		switch fe.Tag() {
		case "required":
			violations = append(violations, fe.Field()+" is required")
		case "guid":
			violations = append(violations, fmt.Sprintf("%s must be a GUID (got %q)", fe.Field(), fe.Value()))
		case "tenant":
			violations = append(violations, fmt.Sprintf("%s must be a GUID or a domain name (got %q)", fe.Field(), fe.Value()))
		default:
			violations = append(violations, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return violations
}

func (r *Repository) methodViolations(ctx context.Context, profile AuthProfile) ([]string, error) {
	switch profile.AuthMethod {
	case SharedSecret:
		var violations []string
		if profile.CertificatePath != "" {
			violations = append(violations, "certificatePath is only used by certificate auth methods")
		}
		if profile.Name == "" {
			return violations, nil
		}
		ok, err := r.HasSecret(ctx, profile.Name, secrets.SecretTypeClientSecret)
		if err != nil {
			return nil, fmt.Errorf("checking client secret: %w", err)
		}
		if !ok {
			violations = append(violations, "no client secret is stored for this profile")
		}
		return violations, nil
	case Certificate, PasswordlessCertificate:
		if strings.TrimSpace(profile.CertificatePath) == "" {
			return []string{"certificatePath is required for " + profile.AuthMethod.String()}, nil
		}
		info, err := os.Stat(profile.CertificatePath)
		if err != nil {
			return []string{fmt.Sprintf("certificate file %s cannot be read: %v", profile.CertificatePath, err)}, nil
		}
		if !info.Mode().IsRegular() {
			return []string{fmt.Sprintf("certificate path %s is not a file", profile.CertificatePath)}, nil
		}
		return nil, nil
	default:
		return []string{"unsupported authMethod " + profile.AuthMethod.String()}, nil
	}
}

func hasScope(scopes []string) bool {
	for _, s := range scopes {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}
