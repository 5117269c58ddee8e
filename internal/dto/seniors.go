package dto

import (
	"strings"
	"time"

	"ENW_BACK-END/internal/models"
)

// SupportRequestIntake is the single payload that registers a senior and
// opens their first support request.
type SupportRequestIntake struct {
	FirstName        string     `json:"firstName" validate:"min=2" msg:"First name must be at least 2 characters"`
	LastName         string     `json:"lastName" validate:"min=2" msg:"Last name must be at least 2 characters"`
	Email            string     `json:"email" validate:"required,email" msg:"Invalid email address"`
	Phone            string     `json:"phone" validate:"mobile" msg:"Invalid phone number"`
	Age              FlexInt    `json:"age" validate:"min=18,max=120" msg:"Age must be between 18 and 120" swaggertype:"integer"`
	Address          string     `json:"address" validate:"min=10" msg:"Address must be at least 10 characters"`
	EmergencyContact string     `json:"emergencyContact" validate:"required" msg:"Emergency contact is required"`
	EmergencyPhone   string     `json:"emergencyPhone" validate:"mobile" msg:"Invalid emergency phone number"`
	SupportNeeds     string     `json:"supportNeeds" validate:"required" msg:"Support needs must be specified"`
	Consent          bool       `json:"consent" validate:"eq=true" msg:"Consent must be provided (true)"`
	HealthConditions string     `json:"healthConditions,omitempty"`
	PreferredTimes   string     `json:"preferredTimes,omitempty"`
	AdditionalInfo   string     `json:"additionalInfo,omitempty"`
	PreferredDate    *time.Time `json:"preferredDate,omitempty"`
}

// Normalize trims the free-text fields before validation.
func (in *SupportRequestIntake) Normalize() {
	for _, f := range []*string{
		&in.FirstName, &in.LastName, &in.Email, &in.Phone, &in.Address,
		&in.EmergencyContact, &in.EmergencyPhone, &in.SupportNeeds,
		&in.HealthConditions, &in.PreferredTimes, &in.AdditionalInfo,
	} {
		*f = strings.TrimSpace(*f)
	}
}

// Senior builds the senior document from the intake payload.
func (in *SupportRequestIntake) Senior() *models.Senior {
	return &models.Senior{
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            in.Email,
		Phone:            in.Phone,
		Age:              int(in.Age),
		Address:          in.Address,
		EmergencyContact: in.EmergencyContact,
		EmergencyPhone:   in.EmergencyPhone,
		HealthConditions: in.HealthConditions,
		PreferredTimes:   in.PreferredTimes,
		AdditionalInfo:   in.AdditionalInfo,
		Consent:          in.Consent,
	}
}

// IntakeResult is the data returned after a successful intake.
type IntakeResult struct {
	SeniorID  string               `json:"seniorId"`
	RequestID string               `json:"requestId"`
	Status    models.RequestStatus `json:"status"`
}

// StatusUpdateRequest changes the status of a support request.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// SupportRequestListResponse is the paged list of support requests.
type SupportRequestListResponse struct {
	Success bool                           `json:"success"`
	Data    []*models.SupportRequestDetail `json:"data"`
	Total   int64                          `json:"total"`
	Limit   int                            `json:"limit"`
	Offset  int                            `json:"offset"`
}
