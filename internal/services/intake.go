package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/dto"
	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/notify"
	"ENW_BACK-END/internal/schema"
	"ENW_BACK-END/internal/store"
)

// supportNeedLabels maps the intake form's labels to support types.
var supportNeedLabels = map[string]models.SupportType{
	"Grocery shopping assistance":    models.SupportShopping,
	"Transportation to appointments": models.SupportTransportation,
	"Regular companionship visits":   models.SupportCompanionship,
	"Light housework help":           models.SupportHousework,
	"Medication pickup":              models.SupportMedication,
	"Technology assistance":          models.SupportTechnology,
	"Other (please specify)":         models.SupportOther,
}

const defaultRequestDescription = "Initial support request"

// SupportTypeFor resolves the support type of a free-form need: a known form
// label, else the upper-cased value when it names a type, else OTHER.
func SupportTypeFor(needs string) models.SupportType {
	needs = strings.TrimSpace(needs)
	if t, ok := supportNeedLabels[needs]; ok {
		return t
	}
	if t := models.SupportType(strings.ToUpper(needs)); t.Valid() {
		return t
	}
	return models.SupportOther
}

// IntakeService registers a senior together with their first support request.
type IntakeService struct {
	store           store.Store
	notifier        notify.Notifier
	log             zerolog.Logger
	useTransactions bool
}

// NewIntakeService creates an IntakeService. When useTransactions is false
// the two inserts run one after the other without atomicity.
func NewIntakeService(s store.Store, n notify.Notifier, log zerolog.Logger, useTransactions bool) *IntakeService {
	if n == nil {
		n = notify.Noop{}
	}
	return &IntakeService{store: s, notifier: n, log: log, useTransactions: useTransactions}
}

// SubmitSupportRequest stores the senior and the request, or neither.
func (s *IntakeService) SubmitSupportRequest(ctx context.Context, in *dto.SupportRequestIntake) (*dto.IntakeResult, error) {
	email := schema.NormalizeEmail(in.Email)

	existing, err := s.store.Seniors().GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, &apperr.DuplicateKeyError{Field: "email", Value: email}
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return nil, withStack(err, "look up senior by email")
	}

	senior := in.Senior()
	senior.Email = email

	description := in.AdditionalInfo
	if description == "" {
		description = in.SupportNeeds
	}
	if description == "" {
		description = defaultRequestDescription
	}

	var (
		createdSenior  *models.Senior
		createdRequest *models.SupportRequest
	)
	err = inTransaction(ctx, s.store, s.useTransactions, func(ctx context.Context, tx store.Store) error {
		var err error
		createdSenior, err = tx.Seniors().Create(ctx, senior)
		if err != nil {
			return err
		}
		createdRequest, err = tx.SupportRequests().Create(ctx, &models.SupportRequest{
			SeniorID:      createdSenior.ID,
			SupportType:   SupportTypeFor(in.SupportNeeds),
			Description:   strings.TrimSpace(description),
			Urgency:       models.UrgencyMedium,
			PreferredDate: in.PreferredDate,
		})
		return err
	})
	if err != nil {
		return nil, withStack(err, "submit support request")
	}

	s.log.Info().
		Str("seniorId", createdSenior.ID).
		Str("requestId", createdRequest.ID).
		Str("supportType", string(createdRequest.SupportType)).
		Msg("support request submitted")

	if err := s.notifier.SupportRequestReceived(ctx, createdSenior, createdRequest); err != nil {
		s.log.Warn().Err(err).Str("seniorId", createdSenior.ID).Msg("support request confirmation not sent")
	}

	return &dto.IntakeResult{
		SeniorID:  createdSenior.ID,
		RequestID: createdRequest.ID,
		Status:    createdRequest.Status,
	}, nil
}
