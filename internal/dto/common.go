package dto

import (
	"errors"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/schema"
)

// SuccessResponse is the envelope for single-object responses.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ListResponse is the envelope for paged list responses.
type ListResponse struct {
	Success bool  `json:"success"`
	Data    any   `json:"data"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit,omitempty"`
	Offset  int   `json:"offset"`
}

// CollectionResponse is the envelope for unpaged collections.
type CollectionResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Total   int  `json:"total"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Field   string            `json:"field,omitempty"`
	Value   any               `json:"value,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Path    string            `json:"path,omitempty"`
	Error   *ErrorDetail      `json:"error,omitempty"`
}

// ErrorDetail carries the status and, outside production, the stack trace.
type ErrorDetail struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Stack      string `json:"stack,omitempty"`
}

// Validate runs the struct tags of a request payload. Failures are reported
// with the request-level summary message.
func Validate(v any) error {
	err := schema.Validate(v)
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		verr.Message = "Validation failed"
	}
	return err
}
