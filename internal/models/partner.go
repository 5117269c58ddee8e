package models

import "time"

// Partner is an organization applying for a partnership.
type Partner struct {
	ID               string           `json:"id" bson:"_id,omitempty"`
	OrganizationName string           `json:"organizationName" bson:"organizationName" validate:"required,min=2"`
	ContactPerson    string           `json:"contactPerson" bson:"contactPerson" validate:"required,min=2"`
	Email            string           `json:"email" bson:"email" validate:"required,looseemail"`
	Phone            string           `json:"phone" bson:"phone" validate:"required,phone"`
	Website          string           `json:"website,omitempty" bson:"website,omitempty" validate:"omitempty,weburl"`
	OrganizationType OrganizationType `json:"organizationType" bson:"organizationType" validate:"required,oneof=HEALTHCARE PHARMACY GROCERY BUSINESS NONPROFIT GOVERNMENT RELIGIOUS EDUCATION OTHER"`
	Address          string           `json:"address" bson:"address" validate:"required,min=10"`
	PartnershipType  string           `json:"partnershipType" bson:"partnershipType" validate:"required"`
	Services         string           `json:"services" bson:"services" validate:"required,min=20"`
	TargetAudience   string           `json:"targetAudience,omitempty" bson:"targetAudience,omitempty"`
	Experience       string           `json:"experience,omitempty" bson:"experience,omitempty"`
	Goals            string           `json:"goals" bson:"goals" validate:"required,min=20"`
	Resources        string           `json:"resources,omitempty" bson:"resources,omitempty"`
	Timeline         string           `json:"timeline,omitempty" bson:"timeline,omitempty"`
	AdditionalInfo   string           `json:"additionalInfo,omitempty" bson:"additionalInfo,omitempty"`
	Consent          bool             `json:"consent" bson:"consent" validate:"eq=true" msg:"You must agree to the partnership terms"`
	IsActive         bool             `json:"isActive" bson:"isActive"`
	CreatedAt        time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt" bson:"updatedAt"`
}
