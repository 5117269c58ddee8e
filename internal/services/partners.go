package services

import (
	"context"

	"github.com/rs/zerolog"

	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/notify"
	"ENW_BACK-END/internal/store"
)

// PartnerService handles partnership applications.
type PartnerService struct {
	store    store.Store
	notifier notify.Notifier
	log      zerolog.Logger
}

func NewPartnerService(s store.Store, n notify.Notifier, log zerolog.Logger) *PartnerService {
	if n == nil {
		n = notify.Noop{}
	}
	return &PartnerService{store: s, notifier: n, log: log}
}

// Create stores an application. New partners start active.
func (s *PartnerService) Create(ctx context.Context, p *models.Partner) (*models.Partner, error) {
	p.IsActive = true
	created, err := s.store.Partners().Create(ctx, p)
	if err != nil {
		return nil, withStack(err, "create partner")
	}
	s.log.Info().Str("partnerId", created.ID).Str("organization", created.OrganizationName).Msg("partner application received")
	if err := s.notifier.PartnerApplicationReceived(ctx, created); err != nil {
		s.log.Warn().Err(err).Str("partnerId", created.ID).Msg("partner confirmation not sent")
	}
	return created, nil
}
