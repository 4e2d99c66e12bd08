// Package partner models tracked partners and the collections they own.
package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
)

// Type distinguishes strategic partners from ambassadors
type Type string

const (
	TypeStrategic  Type = "strategique"
	TypeAmbassador Type = "ambassadeur"
)

// TypeFromString converts a string to a Type
func TypeFromString(s string) (Type, bool) {
	switch Type(s) {
	case TypeStrategic:
		return TypeStrategic, true
	case TypeAmbassador:
		return TypeAmbassador, true
	default:
		return "", false
	}
}

// ContactPerson is the main contact at the partner company
type ContactPerson struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	HubspotURL string `json:"hubspotUrl,omitempty"`
}

// IsZero reports whether no contact field is set
func (c ContactPerson) IsZero() bool {
	return c.Name == "" && c.Email == "" && c.HubspotURL == ""
}

// Partner is a company or individual under a commission-based partnership.
type Partner struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	StartDate            string         `json:"startDate"`
	EndDate              string         `json:"endDate"`
	Duration             string         `json:"duration"`
	CommissionClient     float64        `json:"commissionClient"`
	CommissionConsulting float64        `json:"commissionConsulting"`
	IsActive             bool           `json:"isActive"`
	Type                 Type           `json:"type"`
	CompanyHubspotURL    string         `json:"companyHubspotUrl,omitempty"`
	ContactPerson        *ContactPerson `json:"contactPerson,omitempty"`
	ServicesSummary      string         `json:"servicesSummary,omitempty"`
	Slug                 string         `json:"slug"`
	DeletedAt            *time.Time     `json:"deletedAt,omitempty"`
}

// EnsureID assigns a fresh id when none was supplied
func (p *Partner) EnsureID() {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
}

// IsDeleted reports whether the partner sits in the recycle bin
func (p *Partner) IsDeleted() bool {
	return p.DeletedAt != nil
}

// Clone returns a deep copy
func (p Partner) Clone() Partner {
	if p.ContactPerson != nil {
		c := *p.ContactPerson
		p.ContactPerson = &c
	}
	p.DeletedAt = common.CloneTime(p.DeletedAt)
	return p
}

// Patch is a partial update where every nil field is left untouched.
type Patch struct {
	Name                 *string        `json:"name,omitempty"`
	StartDate            *string        `json:"startDate,omitempty"`
	EndDate              *string        `json:"endDate,omitempty"`
	Duration             *string        `json:"duration,omitempty"`
	CommissionClient     *float64       `json:"commissionClient,omitempty"`
	CommissionConsulting *float64       `json:"commissionConsulting,omitempty"`
	IsActive             *bool          `json:"isActive,omitempty"`
	Type                 *Type          `json:"type,omitempty"`
	CompanyHubspotURL    *string        `json:"companyHubspotUrl,omitempty"`
	ContactPerson        *ContactPerson `json:"contactPerson,omitempty"`
	ServicesSummary      *string        `json:"servicesSummary,omitempty"`
	Slug                 *string        `json:"slug,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.StartDate == nil && p.EndDate == nil && p.Duration == nil &&
		p.CommissionClient == nil && p.CommissionConsulting == nil && p.IsActive == nil &&
		p.Type == nil && p.CompanyHubspotURL == nil && p.ContactPerson == nil &&
		p.ServicesSummary == nil && p.Slug == nil
}

// Apply writes every set field onto the partner. An all-empty contact person
// clears the contact.
func (p Patch) Apply(target *Partner) {
	if p.Name != nil {
		target.Name = *p.Name
	}
	if p.StartDate != nil {
		target.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		target.EndDate = *p.EndDate
	}
	if p.Duration != nil {
		target.Duration = *p.Duration
	}
	if p.CommissionClient != nil {
		target.CommissionClient = *p.CommissionClient
	}
	if p.CommissionConsulting != nil {
		target.CommissionConsulting = *p.CommissionConsulting
	}
	if p.IsActive != nil {
		target.IsActive = *p.IsActive
	}
	if p.Type != nil {
		target.Type = *p.Type
	}
	if p.CompanyHubspotURL != nil {
		target.CompanyHubspotURL = *p.CompanyHubspotURL
	}
	if p.ContactPerson != nil {
		if p.ContactPerson.IsZero() {
			target.ContactPerson = nil
		} else {
			c := *p.ContactPerson
			target.ContactPerson = &c
		}
	}
	if p.ServicesSummary != nil {
		target.ServicesSummary = *p.ServicesSummary
	}
	if p.Slug != nil {
		target.Slug = *p.Slug
	}
}
