// Package services implements the use cases on top of store.Store. Services
// return apperr types for every expected failure; anything else is wrapped
// with a stack and surfaces as a 500.
package services

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/store"
)

// Page sizes for support request and volunteer listings.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// invalidParam reports a malformed path or query parameter the same way the
// request validators do.
func invalidParam(field, msg string) error {
	return &apperr.ValidationError{Fields: map[string]string{field: msg}, Message: "Validation failed"}
}

// notFound turns store.ErrNotFound into a NotFoundError for resource and
// attaches a stack to anything else.
func notFound(err error, resource string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(resource)
	}
	return pkgerrors.WithStack(err)
}

// withStack attaches a stack to unexpected errors. Typed apperr values pass
// through unchanged so callers can still match them.
func withStack(err error, msg string) error {
	if err == nil {
		return nil
	}
	var (
		dup *apperr.DuplicateKeyError
		val *apperr.ValidationError
		nf  *apperr.NotFoundError
		ae  *apperr.AppError
	)
	if errors.As(err, &dup) || errors.As(err, &val) || errors.As(err, &nf) || errors.As(err, &ae) {
		return err
	}
	return pkgerrors.Wrap(err, msg)
}

// inTransaction runs fn atomically when enabled; otherwise fn runs directly
// against s and a failure part way leaves earlier writes in place.
func inTransaction(ctx context.Context, s store.Store, enabled bool, fn func(ctx context.Context, tx store.Store) error) error {
	if !enabled {
		return fn(ctx, s)
	}
	return s.WithTransaction(ctx, fn)
}

// clampPage applies the listing defaults: limit in [1, max] and offset >= 0.
func clampPage(limit, offset, max int) (int, int) {
	return store.Page(limit, offset, max)
}
