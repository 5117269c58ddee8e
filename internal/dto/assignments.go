package dto

import (
	"time"

	"ENW_BACK-END/internal/models"
)

// AssignVolunteerRequest links a volunteer to a senior or support request.
type AssignVolunteerRequest struct {
	VolunteerID string `json:"volunteerId" validate:"required" msg:"Volunteer is required"`
	SeniorID    string `json:"seniorId,omitempty" validate:"required_without=RequestID" msg:"Either seniorId or requestId is required"`
	RequestID   string `json:"requestId,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// CreateTaskRequest schedules a task on a support request.
type CreateTaskRequest struct {
	VolunteerID   string     `json:"volunteerId,omitempty"`
	Title         string     `json:"title" validate:"required" msg:"Title is required"`
	Description   string     `json:"description" validate:"required" msg:"Description is required"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	Duration      int        `json:"duration,omitempty" validate:"min=0"`
}

// Task converts the payload for request requestID.
func (r *CreateTaskRequest) Task(requestID string) *models.Task {
	return &models.Task{
		RequestID:     requestID,
		VolunteerID:   r.VolunteerID,
		Title:         r.Title,
		Description:   r.Description,
		ScheduledDate: r.ScheduledDate,
		Duration:      r.Duration,
	}
}

// CompleteTaskRequest closes a task.
type CompleteTaskRequest struct {
	Feedback string `json:"feedback,omitempty"`
	Rating   int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5" msg:"Rating must be between 1 and 5"`
	Duration int    `json:"duration,omitempty" validate:"min=0"`
}

// TaskListResponse lists the tasks of a request.
type TaskListResponse struct {
	Success bool           `json:"success"`
	Data    []*models.Task `json:"data"`
	Total   int            `json:"total"`
}
