package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Problem is the normalized form of an error, ready to be rendered.
type Problem struct {
	Status  int
	Code    string
	Message string
	Field   string
	Value   any
	Errors  map[string]string
	// Operational is false for unexpected failures whose details must not
	// leak in production.
	Operational bool
	Cause       error
}

// Translate maps err onto the taxonomy. Unknown errors become a 500 Problem
// carrying the original error as Cause.
func Translate(err error) Problem {
	var (
		dup *DuplicateKeyError
		val *ValidationError
		nf  *NotFoundError
		ae  *AppError
	)
	switch {
	case err == nil:
		return Problem{Status: http.StatusOK, Operational: true}
	case errors.As(err, &dup):
		field := dup.Field
		if field == "" {
			field = "email"
		}
		return Problem{
			Status:      http.StatusConflict,
			Code:        CodeDuplicateKey,
			Message:     fmt.Sprintf("%s already exists.", field),
			Field:       field,
			Value:       dup.Value,
			Operational: true,
			Cause:       err,
		}
	case errors.As(err, &val):
		msg := "Validation failed."
		if val.Message != "" {
			msg = val.Message
		}
		return Problem{
			Status:      http.StatusBadRequest,
			Code:        CodeValidation,
			Message:     msg,
			Errors:      val.Fields,
			Operational: true,
			Cause:       err,
		}
	case errors.As(err, &nf):
		return Problem{
			Status:      http.StatusNotFound,
			Code:        CodeNotFound,
			Message:     capitalize(nf.Error()),
			Operational: true,
			Cause:       err,
		}
	case errors.As(err, &ae):
		return Problem{
			Status:      ae.StatusCode,
			Message:     ae.Message,
			Operational: true,
			Cause:       err,
		}
	case errors.Is(err, ErrNotFound):
		return Problem{Status: http.StatusNotFound, Code: CodeNotFound, Message: "Resource not found", Operational: true, Cause: err}
	default:
		return Problem{
			Status:  http.StatusInternalServerError,
			Code:    CodeInternal,
			Message: err.Error(),
			Cause:   err,
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
