package services

import (
	"context"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/store"
)

// MaintenanceService exposes index management and data quality reports.
type MaintenanceService struct {
	store store.Store
}

func NewMaintenanceService(s store.Store) *MaintenanceService {
	return &MaintenanceService{store: s}
}

// EnsureIndexes creates any missing index and lists every managed one.
func (s *MaintenanceService) EnsureIndexes(ctx context.Context) ([]store.IndexInfo, error) {
	out, err := s.store.Maintenance().EnsureIndexes(ctx)
	return out, withStack(err, "ensure indexes")
}

// FindDuplicateEmails groups the documents of collection sharing an email.
func (s *MaintenanceService) FindDuplicateEmails(ctx context.Context, collection string) ([]store.DuplicateGroup, error) {
	if err := store.CheckEmailCollection(collection); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	out, err := s.store.Maintenance().DuplicateEmails(ctx, collection)
	if err != nil {
		return nil, withStack(err, "find duplicate emails")
	}
	if out == nil {
		out = []store.DuplicateGroup{}
	}
	return out, nil
}
