package services

import (
	"context"

	"github.com/rs/zerolog"

	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/notify"
	"ENW_BACK-END/internal/store"
)

// VolunteerService handles volunteer applications.
type VolunteerService struct {
	store    store.Store
	notifier notify.Notifier
	log      zerolog.Logger
}

func NewVolunteerService(s store.Store, n notify.Notifier, log zerolog.Logger) *VolunteerService {
	if n == nil {
		n = notify.Noop{}
	}
	return &VolunteerService{store: s, notifier: n, log: log}
}

// Create stores an application. The volunteer schema applies the defaults
// and reports every violated constraint.
func (s *VolunteerService) Create(ctx context.Context, v *models.Volunteer) (*models.Volunteer, error) {
	created, err := s.store.Volunteers().Create(ctx, v)
	if err != nil {
		return nil, withStack(err, "create volunteer")
	}
	s.log.Info().Str("volunteerId", created.ID).Msg("volunteer application received")
	if err := s.notifier.VolunteerApplicationReceived(ctx, created); err != nil {
		s.log.Warn().Err(err).Str("volunteerId", created.ID).Msg("volunteer confirmation not sent")
	}
	return created, nil
}

func (s *VolunteerService) Get(ctx context.Context, id string) (*models.Volunteer, error) {
	if !s.store.ValidID(id) {
		return nil, invalidParam("id", "Invalid volunteer id")
	}
	v, err := s.store.Volunteers().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "Volunteer")
	}
	return v, nil
}

// VolunteerPage is one page of volunteers.
type VolunteerPage struct {
	Data   []*models.Volunteer
	Total  int64
	Limit  int
	Offset int
}

// List returns volunteers newest first.
func (s *VolunteerService) List(ctx context.Context, f models.VolunteerFilter) (*VolunteerPage, error) {
	f.Limit, f.Offset = clampPage(f.Limit, f.Offset, MaxPageSize)
	rows, total, err := s.store.Volunteers().List(ctx, f)
	if err != nil {
		return nil, withStack(err, "list volunteers")
	}
	return &VolunteerPage{Data: rows, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}
