package models

import "time"

// VolunteerAssignment links a volunteer to a senior and optionally a request.
// The (volunteerId, seniorId, requestId) triple is unique.
type VolunteerAssignment struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	VolunteerID string     `json:"volunteerId" bson:"volunteerId" validate:"required"`
	SeniorID    string     `json:"seniorId" bson:"seniorId" validate:"required"`
	RequestID   string     `json:"requestId,omitempty" bson:"requestId,omitempty"`
	AssignedAt  time.Time  `json:"assignedAt" bson:"assignedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	Status      string     `json:"status" bson:"status" validate:"required"`
	Notes       string     `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}
