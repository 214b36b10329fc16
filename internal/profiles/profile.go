package profiles

import (
	"encoding/json"
	"time"
)

// AuthProfile is a named authentication configuration. It carries no secret
// values.
type AuthProfile struct {
	Name                     string     `json:"name" validate:"required"`
	TenantID                 string     `json:"tenantId" validate:"required,tenant"`
	ClientID                 string     `json:"clientId" validate:"required,guid"`
	Scopes                   []string   `json:"scopes"`
	Resource                 string     `json:"resource,omitempty"`
	AuthMethod               AuthMethod `json:"authMethod"`
	RedirectURI              string     `json:"redirectUri,omitempty"`
	CertificatePath          string     `json:"certificatePath,omitempty"`
	CacheCertificatePassword bool       `json:"cacheCertificatePassword"`
	DefaultFlow              *Flow      `json:"defaultFlow,omitempty"`

	createdAt time.Time
	updatedAt time.Time
}

// CreatedAt is when the profile was first saved.
func (p AuthProfile) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt is when the profile was last saved.
func (p AuthProfile) UpdatedAt() time.Time {
	return p.updatedAt
}

// Clone returns a deep copy of p.
func (p AuthProfile) Clone() AuthProfile {
	clone := p
	if p.Scopes != nil {
		clone.Scopes = append([]string(nil), p.Scopes...)
	}
	if p.DefaultFlow != nil {
		flow := *p.DefaultFlow
		clone.DefaultFlow = &flow
	}
	return clone
}

// stamped returns a copy of p carrying the given timestamps. Only the
// repository calls it.
func (p AuthProfile) stamped(createdAt, updatedAt time.Time) AuthProfile {
	clone := p.Clone()
	clone.createdAt = createdAt
	clone.updatedAt = updatedAt
	return clone
}

type profileFields AuthProfile

type profileRecord struct {
	profileFields
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p AuthProfile) MarshalJSON() ([]byte, error) {
	fields := profileFields(p)
	if fields.Scopes == nil {
		fields.Scopes = []string{}
	}
	return json.Marshal(profileRecord{
		profileFields: fields,
		CreatedAt:     p.createdAt,
		UpdatedAt:     p.updatedAt,
	})
}

func (p *AuthProfile) UnmarshalJSON(data []byte) error {
	var record profileRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}
	*p = AuthProfile(record.profileFields)
	p.createdAt = record.CreatedAt
	p.updatedAt = record.UpdatedAt
	return nil
}
