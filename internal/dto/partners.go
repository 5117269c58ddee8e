package dto

import (
	"strings"

	"ENW_BACK-END/internal/models"
)

// PartnerApplication is the payload of a partnership application. Consent
// accepts any JSON value and is reduced to its truthiness.
type PartnerApplication struct {
	OrganizationName string                  `json:"organizationName"`
	ContactPerson    string                  `json:"contactPerson"`
	Email            string                  `json:"email"`
	Phone            string                  `json:"phone"`
	Website          string                  `json:"website,omitempty"`
	OrganizationType models.OrganizationType `json:"organizationType"`
	Address          string                  `json:"address"`
	PartnershipType  string                  `json:"partnershipType"`
	Services         string                  `json:"services"`
	TargetAudience   string                  `json:"targetAudience,omitempty"`
	Experience       string                  `json:"experience,omitempty"`
	Goals            string                  `json:"goals"`
	Resources        string                  `json:"resources,omitempty"`
	Timeline         string                  `json:"timeline,omitempty"`
	AdditionalInfo   string                  `json:"additionalInfo,omitempty"`
	Consent          any                     `json:"consent" swaggertype:"boolean"`
}

// Partner converts the application into a partner document.
func (a *PartnerApplication) Partner() *models.Partner {
	return &models.Partner{
		OrganizationName: a.OrganizationName,
		ContactPerson:    a.ContactPerson,
		Email:            a.Email,
		Phone:            a.Phone,
		Website:          a.Website,
		OrganizationType: a.OrganizationType,
		Address:          a.Address,
		PartnershipType:  a.PartnershipType,
		Services:         a.Services,
		TargetAudience:   a.TargetAudience,
		Experience:       a.Experience,
		Goals:            a.Goals,
		Resources:        a.Resources,
		Timeline:         a.Timeline,
		AdditionalInfo:   a.AdditionalInfo,
		Consent:          Truthy(a.Consent),
	}
}

// Truthy reports whether a decoded JSON value is truthy: false, 0, "" and
// null are falsy, everything else is truthy.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

// PartnerCreatedResponse is returned after a partner application is stored.
type PartnerCreatedResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    *models.Partner `json:"data"`
}

// trimmed is shared by the optional string patches below.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
