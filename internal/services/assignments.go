package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/dto"
	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/store"
)

// AssignmentService links volunteers to seniors and manages request tasks.
type AssignmentService struct {
	store           store.Store
	log             zerolog.Logger
	useTransactions bool
	now             func() time.Time
}

func NewAssignmentService(s store.Store, log zerolog.Logger, useTransactions bool) *AssignmentService {
	return &AssignmentService{store: s, log: log, useTransactions: useTransactions, now: time.Now}
}

// Assign creates an assignment. With a requestId the senior defaults to the
// request's senior and a PENDING request moves to ASSIGNED.
func (s *AssignmentService) Assign(ctx context.Context, in *dto.AssignVolunteerRequest) (*models.VolunteerAssignment, error) {
	if !s.store.ValidID(in.VolunteerID) {
		return nil, invalidParam("volunteerId", "Invalid volunteer id")
	}
	if in.RequestID != "" && !s.store.ValidID(in.RequestID) {
		return nil, invalidParam("requestId", "Invalid request id")
	}
	if in.SeniorID != "" && !s.store.ValidID(in.SeniorID) {
		return nil, invalidParam("seniorId", "Invalid senior id")
	}

	var out *models.VolunteerAssignment
	err := inTransaction(ctx, s.store, s.useTransactions, func(ctx context.Context, tx store.Store) error {
		if _, err := tx.Volunteers().Get(ctx, in.VolunteerID); err != nil {
			return notFound(err, "Volunteer")
		}

		seniorID := in.SeniorID
		var req *models.SupportRequest
		if in.RequestID != "" {
			r, err := tx.SupportRequests().Get(ctx, in.RequestID)
			if err != nil {
				return notFound(err, "Support request")
			}
			req = r
			if seniorID == "" {
				seniorID = r.SeniorID
			}
		}
		if _, err := tx.Seniors().Get(ctx, seniorID); err != nil {
			return notFound(err, "Senior")
		}

		a, err := tx.Assignments().Create(ctx, &models.VolunteerAssignment{
			VolunteerID: in.VolunteerID,
			SeniorID:    seniorID,
			RequestID:   in.RequestID,
			Notes:       in.Notes,
		})
		if err != nil {
			return err
		}
		out = a

		if req != nil && req.Status == models.StatusPending {
			if _, err := tx.SupportRequests().UpdateStatus(ctx, req.ID, models.StatusAssigned, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, withStack(err, "assign volunteer")
	}
	s.log.Info().Str("assignmentId", out.ID).Str("volunteerId", out.VolunteerID).Str("seniorId", out.SeniorID).Msg("volunteer assigned")
	return out, nil
}

// ListAssignments returns the assignments of a support request.
func (s *AssignmentService) ListAssignments(ctx context.Context, requestID string) ([]*models.VolunteerAssignment, error) {
	if err := s.requireRequest(ctx, requestID); err != nil {
		return nil, err
	}
	rows, err := s.store.Assignments().ListByRequest(ctx, requestID)
	return rows, withStack(err, "list assignments")
}

// CreateTask schedules a task on a support request.
func (s *AssignmentService) CreateTask(ctx context.Context, requestID string, in *dto.CreateTaskRequest) (*models.Task, error) {
	if err := s.requireRequest(ctx, requestID); err != nil {
		return nil, err
	}
	if in.VolunteerID != "" {
		if !s.store.ValidID(in.VolunteerID) {
			return nil, invalidParam("volunteerId", "Invalid volunteer id")
		}
		if _, err := s.store.Volunteers().Get(ctx, in.VolunteerID); err != nil {
			return nil, notFound(err, "Volunteer")
		}
	}
	t, err := s.store.Tasks().Create(ctx, in.Task(requestID))
	if err != nil {
		return nil, withStack(err, "create task")
	}
	return t, nil
}

// ListTasks returns the tasks of a support request.
func (s *AssignmentService) ListTasks(ctx context.Context, requestID string) ([]*models.Task, error) {
	if err := s.requireRequest(ctx, requestID); err != nil {
		return nil, err
	}
	rows, err := s.store.Tasks().ListByRequest(ctx, requestID)
	return rows, withStack(err, "list tasks")
}

// CompleteTask records feedback and marks the task completed.
func (s *AssignmentService) CompleteTask(ctx context.Context, id string, in *dto.CompleteTaskRequest) (*models.Task, error) {
	if !s.store.ValidID(id) {
		return nil, invalidParam("id", "Invalid task id")
	}
	t, err := s.store.Tasks().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "Task")
	}
	if t.Status == models.TaskCompleted {
		return nil, apperr.BadRequest("Task already completed")
	}

	now := s.now()
	t.CompletedDate = &now
	t.Status = models.TaskCompleted
	if in.Feedback != "" {
		t.Feedback = in.Feedback
	}
	if in.Rating != 0 {
		t.Rating = in.Rating
	}
	if in.Duration > 0 {
		t.Duration = in.Duration
	}

	updated, err := s.store.Tasks().Update(ctx, t)
	if err != nil {
		return nil, notFound(err, "Task")
	}
	return updated, nil
}

func (s *AssignmentService) requireRequest(ctx context.Context, requestID string) error {
	if !s.store.ValidID(requestID) {
		return invalidParam("id", "Invalid request id")
	}
	if _, err := s.store.SupportRequests().Get(ctx, requestID); err != nil {
		return notFound(err, "Support request")
	}
	return nil
}
