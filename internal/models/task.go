package models

import "time"

const (
	TaskPending   = "pending"
	TaskCompleted = "completed"
)

// Task is a scheduled piece of work belonging to a support request.
type Task struct {
	ID            string     `json:"id" bson:"_id,omitempty"`
	RequestID     string     `json:"requestId" bson:"requestId" validate:"required"`
	VolunteerID   string     `json:"volunteerId,omitempty" bson:"volunteerId,omitempty"`
	Title         string     `json:"title" bson:"title" validate:"required"`
	Description   string     `json:"description" bson:"description" validate:"required"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty" bson:"scheduledDate,omitempty"`
	CompletedDate *time.Time `json:"completedDate,omitempty" bson:"completedDate,omitempty"`
	Duration      int        `json:"duration,omitempty" bson:"duration,omitempty" validate:"min=0"`
	Status        string     `json:"status" bson:"status" validate:"required"`
	Feedback      string     `json:"feedback,omitempty" bson:"feedback,omitempty"`
	Rating        int        `json:"rating,omitempty" bson:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt" bson:"updatedAt"`
}
