package utils

import (
	"errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/dto"
)

const maskedMessage = "Something went wrong!"

// ErrorWriter renders errors as the JSON error envelope.
type ErrorWriter struct {
	// Production hides messages of unexpected errors and never sends stacks.
	Production bool
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Write translates err, logs it and writes the response. 5xx errors are
// logged at error level with their stack, everything else at info.
func (e ErrorWriter) Write(w http.ResponseWriter, r *http.Request, err error) {
	p := apperr.Translate(err)
	logger := zerolog.Ctx(r.Context())

	if p.Status >= http.StatusInternalServerError {
		if _, ok := err.(stackTracer); !ok {
			var st stackTracer
			if !errors.As(err, &st) {
				err = pkgerrors.WithStack(err)
			}
		}
		logger.Error().Stack().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", p.Status).
			Msg("request failed")
	} else {
		logger.Info().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", p.Status).
			Msg("request rejected")
	}

	WriteJSONResponse(w, p.Status, e.envelope(p, err))
}

func (e ErrorWriter) envelope(p apperr.Problem, err error) dto.ErrorResponse {
	switch p.Code {
	case apperr.CodeDuplicateKey:
		return dto.ErrorResponse{Message: p.Message, Field: p.Field, Value: p.Value, Code: p.Code}
	case apperr.CodeValidation:
		return dto.ErrorResponse{Message: p.Message, Errors: p.Errors, Code: p.Code}
	}

	message := p.Message
	if !p.Operational && e.Production {
		message = maskedMessage
	}
	detail := &dto.ErrorDetail{StatusCode: p.Status, Message: message}
	if !e.Production && !p.Operational {
		detail.Stack = fmt.Sprintf("%+v", err)
	}
	return dto.ErrorResponse{Message: message, Code: p.Code, Error: detail}
}

// WriteError writes err with development settings. Handlers normally go
// through the ErrorWriter configured on the router.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	ErrorWriter{}.Write(w, r, err)
}
