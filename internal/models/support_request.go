package models

import "time"

// SupportRequest is a unit of work requested by a senior.
type SupportRequest struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	SeniorID      string        `json:"seniorId" bson:"seniorId" validate:"required"`
	SupportType   SupportType   `json:"supportType" bson:"supportType" validate:"required,supporttype"`
	Description   string        `json:"description" bson:"description" validate:"required"`
	Urgency       Urgency       `json:"urgency" bson:"urgency" validate:"required,oneof=low medium high"`
	PreferredDate *time.Time    `json:"preferredDate,omitempty" bson:"preferredDate,omitempty"`
	Status        RequestStatus `json:"status" bson:"status" validate:"required,oneof=PENDING ASSIGNED IN_PROGRESS COMPLETED CANCELLED"`
	Notes         string        `json:"notes,omitempty" bson:"notes,omitempty"`
	CompletedAt   *time.Time    `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// SupportRequestDetail is a support request with its senior reference expanded.
// The Senior field shadows the embedded seniorId when encoded.
type SupportRequestDetail struct {
	SupportRequest
	Senior *SeniorSummary `json:"seniorId"`
}

// SupportRequestFilter selects support requests for listing.
type SupportRequestFilter struct {
	Status RequestStatus
	Limit  int
	Offset int
}
