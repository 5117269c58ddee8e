package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/dto"
	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/store"
	"ENW_BACK-END/internal/store/memory"
)

func intake() *dto.SupportRequestIntake {
	return &dto.SupportRequestIntake{
		FirstName:        "Marija",
		LastName:         "Petraitė",
		Email:            "  Marija@Example.COM ",
		Phone:            "+37060000000",
		Age:              78,
		Address:          "Pilies g. 12, Vilnius",
		EmergencyContact: "Jonas Petraitis",
		EmergencyPhone:   "+37060000001",
		SupportNeeds:     "Grocery shopping assistance",
		Consent:          true,
	}
}

// recordingNotifier counts confirmations.
type recordingNotifier struct {
	requests, volunteers, partners int
}

func (r *recordingNotifier) SupportRequestReceived(context.Context, *models.Senior, *models.SupportRequest) error {
	r.requests++
	return nil
}

func (r *recordingNotifier) VolunteerApplicationReceived(context.Context, *models.Volunteer) error {
	r.volunteers++
	return nil
}

func (r *recordingNotifier) PartnerApplicationReceived(context.Context, *models.Partner) error {
	r.partners++
	return errors.New("smtp down")
}

// failingRequests makes every support request insert fail.
type failingRequests struct{ store.SupportRequests }

func (failingRequests) Create(context.Context, *models.SupportRequest) (*models.SupportRequest, error) {
	return nil, errors.New("disk full")
}

type failingStore struct{ store.Store }

func (f failingStore) SupportRequests() store.SupportRequests {
	return failingRequests{f.Store.SupportRequests()}
}

func (f failingStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	return f.Store.WithTransaction(ctx, func(ctx context.Context, tx store.Store) error {
		return fn(ctx, failingStore{tx})
	})
}

func TestSupportTypeFor(t *testing.T) {
	tests := map[string]models.SupportType{
		"Grocery shopping assistance":    models.SupportShopping,
		"Transportation to appointments": models.SupportTransportation,
		"Regular companionship visits":   models.SupportCompanionship,
		"Light housework help":           models.SupportHousework,
		"Medication pickup":              models.SupportMedication,
		"Technology assistance":          models.SupportTechnology,
		"Other (please specify)":         models.SupportOther,
		"medication":                     models.SupportMedication,
		" technology ":                   models.SupportTechnology,
		"Gardening":                      models.SupportOther,
		"":                               models.SupportOther,
	}
	for in, want := range tests {
		assert.Equal(t, want, SupportTypeFor(in), in)
	}
}

func TestSubmitSupportRequest(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	n := &recordingNotifier{}
	svc := NewIntakeService(s, n, zerolog.Nop(), true)

	res, err := svc.SubmitSupportRequest(ctx, intake())
	require.NoError(t, err)
	assert.NotEmpty(t, res.SeniorID)
	assert.NotEmpty(t, res.RequestID)
	assert.Equal(t, models.StatusPending, res.Status)
	assert.Equal(t, 1, n.requests)

	senior, err := s.Seniors().Get(ctx, res.SeniorID)
	require.NoError(t, err)
	assert.Equal(t, "marija@example.com", senior.Email)

	req, err := s.SupportRequests().Get(ctx, res.RequestID)
	require.NoError(t, err)
	assert.Equal(t, res.SeniorID, req.SeniorID)
	assert.Equal(t, models.SupportShopping, req.SupportType)
	assert.Equal(t, models.UrgencyMedium, req.Urgency)
	assert.Equal(t, "Grocery shopping assistance", req.Description)
}

func TestSubmitSupportRequest_Description(t *testing.T) {
	ctx := context.Background()
	svc := NewIntakeService(memory.New(), nil, zerolog.Nop(), true)

	in := intake()
	in.AdditionalInfo = "  Needs help on Tuesdays  "
	res, err := svc.SubmitSupportRequest(ctx, in)
	require.NoError(t, err)

	req, err := svc.store.SupportRequests().Get(ctx, res.RequestID)
	require.NoError(t, err)
	assert.Equal(t, "Needs help on Tuesdays", req.Description)
}

func TestSubmitSupportRequest_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	svc := NewIntakeService(s, nil, zerolog.Nop(), true)

	_, err := svc.SubmitSupportRequest(ctx, intake())
	require.NoError(t, err)

	_, err = svc.SubmitSupportRequest(ctx, intake())
	var dup *apperr.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "email", dup.Field)
	assert.Equal(t, "marija@example.com", dup.Value)

	_, total, err := s.SupportRequests().List(ctx, models.SupportRequestFilter{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestSubmitSupportRequest_RollsBack(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	svc := NewIntakeService(failingStore{s}, nil, zerolog.Nop(), true)

	_, err := svc.SubmitSupportRequest(ctx, intake())
	require.Error(t, err)
	assert.Equal(t, 500, apperr.Translate(err).Status)

	_, err = s.Seniors().GetByEmail(ctx, "marija@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSubmitSupportRequest_WithoutTransactions(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	svc := NewIntakeService(failingStore{s}, nil, zerolog.Nop(), false)

	_, err := svc.SubmitSupportRequest(ctx, intake())
	require.Error(t, err)

	// Without a transaction the senior insert is not undone.
	_, err = s.Seniors().GetByEmail(ctx, "marija@example.com")
	assert.NoError(t, err)
}

func TestSupportRequestService(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	intakeSvc := NewIntakeService(s, nil, zerolog.Nop(), true)
	svc := NewSupportRequestService(s, zerolog.Nop())

	res, err := intakeSvc.SubmitSupportRequest(ctx, intake())
	require.NoError(t, err)

	t.Run("list clamps the window", func(t *testing.T) {
		page, err := svc.List(ctx, models.SupportRequestFilter{Limit: 500, Offset: -3})
		require.NoError(t, err)
		assert.Equal(t, MaxPageSize, page.Limit)
		assert.Equal(t, 0, page.Offset)
		require.Len(t, page.Data, 1)
		assert.EqualValues(t, 1, page.Total)
		require.NotNil(t, page.Data[0].Senior)
		assert.Equal(t, "Marija", page.Data[0].Senior.FirstName)
		assert.Empty(t, page.Data[0].Senior.Address)
	})

	t.Run("list filters by status", func(t *testing.T) {
		page, err := svc.List(ctx, models.SupportRequestFilter{Status: models.StatusCompleted, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, page.Data)
		assert.Zero(t, page.Total)
	})

	t.Run("detail carries address", func(t *testing.T) {
		d, err := svc.Get(ctx, res.RequestID)
		require.NoError(t, err)
		assert.Equal(t, "Pilies g. 12, Vilnius", d.Senior.Address)
	})

	t.Run("detail of malformed id", func(t *testing.T) {
		_, err := svc.Get(ctx, "not-an-id")
		p := apperr.Translate(err)
		assert.Equal(t, 400, p.Status)
		assert.Equal(t, "Invalid request id", p.Errors["id"])
	})

	t.Run("detail of missing id", func(t *testing.T) {
		_, err := svc.Get(ctx, "00000000-0000-4000-8000-000000000000")
		p := apperr.Translate(err)
		assert.Equal(t, 404, p.Status)
		assert.Equal(t, "Support request not found", p.Message)
	})

	t.Run("invalid status leaves record untouched", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, res.RequestID, "DONE")
		p := apperr.Translate(err)
		assert.Equal(t, 400, p.Status)
		assert.Equal(t, "Invalid status", p.Message)

		r, err := s.SupportRequests().Get(ctx, res.RequestID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, r.Status)
	})

	t.Run("completed stamps completedAt", func(t *testing.T) {
		r, err := svc.UpdateStatus(ctx, res.RequestID, "COMPLETED")
		require.NoError(t, err)
		require.NotNil(t, r.CompletedAt)
		first := *r.CompletedAt

		r, err = svc.UpdateStatus(ctx, res.RequestID, "IN_PROGRESS")
		require.NoError(t, err)
		require.NotNil(t, r.CompletedAt)
		assert.True(t, first.Equal(*r.CompletedAt))
	})
}
