package models

import "time"

// Volunteer is a volunteer application.
type Volunteer struct {
	ID               string          `json:"id" bson:"_id,omitempty"`
	FirstName        string          `json:"firstName" bson:"firstName" validate:"required,min=2"`
	LastName         string          `json:"lastName" bson:"lastName" validate:"required,min=2"`
	Email            string          `json:"email" bson:"email" validate:"required,looseemail"`
	Phone            string          `json:"phone" bson:"phone" validate:"required"`
	Age              int             `json:"age" bson:"age" validate:"required,min=18,max=120"`
	Address          string          `json:"address" bson:"address" validate:"required,min=10"`
	Occupation       string          `json:"occupation,omitempty" bson:"occupation,omitempty"`
	Skills           []SupportType   `json:"skills" bson:"skills" validate:"dive,supporttype"`
	Availability     []string        `json:"availability" bson:"availability"`
	Experience       string          `json:"experience,omitempty" bson:"experience,omitempty"`
	Motivation       string          `json:"motivation" bson:"motivation" validate:"required,min=20"`
	References       string          `json:"references,omitempty" bson:"references,omitempty"`
	EmergencyContact string          `json:"emergencyContact" bson:"emergencyContact" validate:"required"`
	EmergencyPhone   string          `json:"emergencyPhone" bson:"emergencyPhone" validate:"required"`
	BackgroundCheck  bool            `json:"backgroundCheck" bson:"backgroundCheck"`
	Status           VolunteerStatus `json:"status" bson:"status" validate:"required,oneof=PENDING_VERIFICATION ACTIVE INACTIVE SUSPENDED"`
	Consent          bool            `json:"consent" bson:"consent"`
	CreatedAt        time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// VolunteerFilter selects volunteers for listing.
type VolunteerFilter struct {
	Status VolunteerStatus
	Limit  int
	Offset int
}
