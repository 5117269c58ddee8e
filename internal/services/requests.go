package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/store"
)

// SupportRequestService reads and transitions support requests.
type SupportRequestService struct {
	store store.Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewSupportRequestService(s store.Store, log zerolog.Logger) *SupportRequestService {
	return &SupportRequestService{store: s, log: log, now: time.Now}
}

// SupportRequestPage is one page of support requests with the applied window.
type SupportRequestPage struct {
	Data   []*models.SupportRequestDetail
	Total  int64
	Limit  int
	Offset int
}

// List returns requests newest first, each with a short senior projection.
func (s *SupportRequestService) List(ctx context.Context, f models.SupportRequestFilter) (*SupportRequestPage, error) {
	f.Limit, f.Offset = clampPage(f.Limit, f.Offset, MaxPageSize)

	rows, total, err := s.store.SupportRequests().List(ctx, f)
	if err != nil {
		return nil, withStack(err, "list support requests")
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.SeniorID)
	}
	seniors, err := s.store.Seniors().GetMany(ctx, ids)
	if err != nil {
		return nil, withStack(err, "load seniors")
	}

	out := make([]*models.SupportRequestDetail, 0, len(rows))
	for _, r := range rows {
		d := &models.SupportRequestDetail{SupportRequest: *r}
		if sn, ok := seniors[r.SeniorID]; ok {
			d.Senior = sn.Summary(false)
		}
		out = append(out, d)
	}
	return &SupportRequestPage{Data: out, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

// Get returns one request with the senior's contact details and address.
func (s *SupportRequestService) Get(ctx context.Context, id string) (*models.SupportRequestDetail, error) {
	if !s.store.ValidID(id) {
		return nil, invalidParam("id", "Invalid request id")
	}
	r, err := s.store.SupportRequests().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "Support request")
	}
	d := &models.SupportRequestDetail{SupportRequest: *r}
	sn, err := s.store.Seniors().Get(ctx, r.SeniorID)
	switch {
	case err == nil:
		d.Senior = sn.Summary(true)
	case !apperr.IsNotFound(err):
		return nil, withStack(err, "load senior")
	}
	return d, nil
}

// UpdateStatus moves a request to status. COMPLETED stamps completedAt on
// every transition; other statuses leave it untouched.
func (s *SupportRequestService) UpdateStatus(ctx context.Context, id, status string) (*models.SupportRequest, error) {
	if !s.store.ValidID(id) {
		return nil, invalidParam("id", "Invalid request id")
	}
	st := models.RequestStatus(status)
	if !st.Valid() {
		return nil, apperr.BadRequest("Invalid status")
	}

	var completedAt *time.Time
	if st == models.StatusCompleted {
		now := s.now()
		completedAt = &now
	}

	r, err := s.store.SupportRequests().UpdateStatus(ctx, id, st, completedAt)
	if err != nil {
		return nil, notFound(err, "Support request")
	}
	s.log.Info().Str("requestId", id).Str("status", status).Msg("support request status updated")
	return r, nil
}
