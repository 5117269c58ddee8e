package dto

import "ENW_BACK-END/internal/models"

// VolunteerApplication is the payload of a volunteer application. Constraints
// are enforced by the volunteer schema on insert.
type VolunteerApplication struct {
	FirstName        string               `json:"firstName"`
	LastName         string               `json:"lastName"`
	Email            string               `json:"email"`
	Phone            string               `json:"phone"`
	Age              FlexInt              `json:"age" swaggertype:"integer"`
	Address          string               `json:"address"`
	Occupation       string               `json:"occupation,omitempty"`
	Skills           []models.SupportType `json:"skills,omitempty"`
	Availability     []string             `json:"availability,omitempty"`
	Experience       string               `json:"experience,omitempty"`
	Motivation       string               `json:"motivation"`
	References       string               `json:"references,omitempty"`
	EmergencyContact string               `json:"emergencyContact"`
	EmergencyPhone   string               `json:"emergencyPhone"`
	BackgroundCheck  bool                 `json:"backgroundCheck"`
	Consent          bool                 `json:"consent"`
}

// Volunteer converts the application into a volunteer document.
func (a *VolunteerApplication) Volunteer() *models.Volunteer {
	return &models.Volunteer{
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		Email:            a.Email,
		Phone:            a.Phone,
		Age:              int(a.Age),
		Address:          a.Address,
		Occupation:       a.Occupation,
		Skills:           a.Skills,
		Availability:     a.Availability,
		Experience:       a.Experience,
		Motivation:       a.Motivation,
		References:       a.References,
		EmergencyContact: a.EmergencyContact,
		EmergencyPhone:   a.EmergencyPhone,
		BackgroundCheck:  a.BackgroundCheck,
		Consent:          a.Consent,
	}
}

// VolunteerListResponse is the paged list of volunteers.
type VolunteerListResponse struct {
	Success bool                `json:"success"`
	Data    []*models.Volunteer `json:"data"`
	Total   int64               `json:"total"`
	Limit   int                 `json:"limit"`
	Offset  int                 `json:"offset"`
}
