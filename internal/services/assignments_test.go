package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/dto"
	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/store"
	"ENW_BACK-END/internal/store/memory"
	"ENW_BACK-END/internal/store/storetest"
)

func TestVolunteerService(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	n := &recordingNotifier{}
	svc := NewVolunteerService(s, n, zerolog.Nop())

	v := storetest.Volunteer()
	v.Skills = []models.SupportType{models.SupportShopping, models.SupportShopping}
	created, err := svc.Create(ctx, v)
	require.NoError(t, err)
	assert.Equal(t, models.VolunteerPendingVerification, created.Status)
	assert.Equal(t, []models.SupportType{models.SupportShopping}, created.Skills)
	assert.Equal(t, 1, n.volunteers)

	dup := storetest.Volunteer()
	dup.Email = created.Email
	_, err = svc.Create(ctx, dup)
	assert.Equal(t, 409, apperr.Translate(err).Status)

	bad := storetest.Volunteer()
	bad.Motivation = "too short"
	_, err = svc.Create(ctx, bad)
	p := apperr.Translate(err)
	assert.Equal(t, 400, p.Status)
	assert.Contains(t, p.Errors, "motivation")

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)

	page, err := svc.List(ctx, models.VolunteerFilter{Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Limit)
	assert.EqualValues(t, 1, page.Total)
}

func TestPartnerService_NotifierFailureIgnored(t *testing.T) {
	ctx := context.Background()
	svc := NewPartnerService(memory.New(), &recordingNotifier{}, zerolog.Nop())

	p := storetest.Partner()
	p.IsActive = false
	created, err := svc.Create(ctx, p)
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.True(t, created.Consent)
}

func seedRequest(t *testing.T, s store.Store) *dto.IntakeResult {
	t.Helper()
	res, err := NewIntakeService(s, nil, zerolog.Nop(), true).SubmitSupportRequest(context.Background(), intake())
	require.NoError(t, err)
	return res
}

func TestAssignmentService_Assign(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	svc := NewAssignmentService(s, zerolog.Nop(), true)
	res := seedRequest(t, s)
	v, err := s.Volunteers().Create(ctx, storetest.Volunteer())
	require.NoError(t, err)

	a, err := svc.Assign(ctx, &dto.AssignVolunteerRequest{VolunteerID: v.ID, RequestID: res.RequestID, Notes: "Tuesdays"})
	require.NoError(t, err)
	assert.Equal(t, res.SeniorID, a.SeniorID)
	assert.Equal(t, "active", a.Status)
	assert.False(t, a.AssignedAt.IsZero())

	r, err := s.SupportRequests().Get(ctx, res.RequestID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, r.Status)

	_, err = svc.Assign(ctx, &dto.AssignVolunteerRequest{VolunteerID: v.ID, RequestID: res.RequestID})
	assert.Equal(t, 409, apperr.Translate(err).Status)

	list, err := svc.ListAssignments(ctx, res.RequestID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAssignmentService_AssignMissing(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	svc := NewAssignmentService(s, zerolog.Nop(), true)
	res := seedRequest(t, s)

	_, err := svc.Assign(ctx, &dto.AssignVolunteerRequest{VolunteerID: "00000000-0000-4000-8000-000000000000", RequestID: res.RequestID})
	assert.Equal(t, "Volunteer not found", apperr.Translate(err).Message)

	_, err = svc.Assign(ctx, &dto.AssignVolunteerRequest{VolunteerID: "nope", RequestID: res.RequestID})
	assert.Equal(t, "Invalid volunteer id", apperr.Translate(err).Errors["volunteerId"])
}

func TestAssignmentService_Tasks(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	svc := NewAssignmentService(s, zerolog.Nop(), true)
	res := seedRequest(t, s)

	task, err := svc.CreateTask(ctx, res.RequestID, &dto.CreateTaskRequest{Title: " Shopping run ", Description: "Weekly groceries", Duration: 45})
	require.NoError(t, err)
	assert.Equal(t, "Shopping run", task.Title)
	assert.Equal(t, models.TaskPending, task.Status)

	tasks, err := svc.ListTasks(ctx, res.RequestID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	done, err := svc.CompleteTask(ctx, task.ID, &dto.CompleteTaskRequest{Feedback: "Lovely", Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, models.TaskCompleted, done.Status)
	assert.NotNil(t, done.CompletedDate)
	assert.Equal(t, 5, done.Rating)
	assert.Equal(t, 45, done.Duration)

	_, err = svc.CompleteTask(ctx, task.ID, &dto.CompleteTaskRequest{})
	assert.Equal(t, "Task already completed", apperr.Translate(err).Message)

	_, err = svc.ListTasks(ctx, "00000000-0000-4000-8000-000000000000")
	assert.Equal(t, 404, apperr.Translate(err).Status)
}

func TestMaintenanceService(t *testing.T) {
	ctx := context.Background()
	svc := NewMaintenanceService(memory.New())

	idx, err := svc.EnsureIndexes(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, idx)

	groups, err := svc.FindDuplicateEmails(ctx, store.CollVolunteers)
	require.NoError(t, err)
	assert.Empty(t, groups)

	_, err = svc.FindDuplicateEmails(ctx, store.CollTasks)
	assert.Equal(t, 400, apperr.Translate(err).Status)
}
