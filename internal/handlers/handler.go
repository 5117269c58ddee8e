package handlers

import (
	"net/http"
	"strings"

	"github.com/gosimple/slug"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/dto"
	"ENW_BACK-END/internal/utils"
)

// AppHandler is an HTTP handler that reports failures by returning them.
type AppHandler func(w http.ResponseWriter, r *http.Request) error

// Adapter turns AppHandlers into http.Handlers that render returned errors
// through one ErrorWriter.
type Adapter struct {
	Errors utils.ErrorWriter
}

// Wrap adapts h.
func (a Adapter) Wrap(h AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			a.Errors.Write(w, r, err)
		}
	}
}

type normalizer interface {
	Normalize()
}

// bind decodes the body into dst, normalizes it and runs its validation tags.
func bind(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := utils.DecodeJSONRequest(w, r, dst); err != nil {
		return err
	}
	if n, ok := dst.(normalizer); ok {
		n.Normalize()
	}
	return dto.Validate(dst)
}

func slugParam(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.PathValue("slug"))
	if !slug.IsSlug(s) {
		return "", &apperr.ValidationError{
			Fields:  map[string]string{"slug": "Invalid slug"},
			Message: "Validation failed",
		}
	}
	return s, nil
}
