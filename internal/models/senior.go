package models

import "time"

// Senior is a person receiving support. Created once through the intake flow.
type Senior struct {
	ID               string    `json:"id" bson:"_id,omitempty"`
	FirstName        string    `json:"firstName" bson:"firstName" validate:"required,min=2"`
	LastName         string    `json:"lastName" bson:"lastName" validate:"required,min=2"`
	Email            string    `json:"email" bson:"email" validate:"required,looseemail"`
	Phone            string    `json:"phone" bson:"phone" validate:"required"`
	Age              int       `json:"age" bson:"age" validate:"required,min=18,max=120"`
	Address          string    `json:"address" bson:"address" validate:"required,min=10"`
	EmergencyContact string    `json:"emergencyContact" bson:"emergencyContact" validate:"required"`
	EmergencyPhone   string    `json:"emergencyPhone" bson:"emergencyPhone" validate:"required"`
	HealthConditions string    `json:"healthConditions,omitempty" bson:"healthConditions,omitempty"`
	PreferredTimes   string    `json:"preferredTimes,omitempty" bson:"preferredTimes,omitempty"`
	AdditionalInfo   string    `json:"additionalInfo,omitempty" bson:"additionalInfo,omitempty"`
	Consent          bool      `json:"consent" bson:"consent"`
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" bson:"updatedAt"`
}

// SeniorSummary is the read-only projection of a senior embedded in support
// request responses.
type SeniorSummary struct {
	ID        string `json:"id" bson:"_id"`
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
	Phone     string `json:"phone" bson:"phone"`
	Email     string `json:"email" bson:"email"`
	Address   string `json:"address,omitempty" bson:"address,omitempty"`
}

// Summary projects s for embedding. Address is only kept when withAddress is set.
func (s *Senior) Summary(withAddress bool) *SeniorSummary {
	out := &SeniorSummary{
		ID:        s.ID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Phone:     s.Phone,
		Email:     s.Email,
	}
	if withAddress {
		out.Address = s.Address
	}
	return out
}
