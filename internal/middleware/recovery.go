package middleware

import (
	"net/http"
	"runtime/debug"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"

	"ENW_BACK-END/internal/utils"
)

// Recovery intercepts panics from downstream handlers, logs details, and
// answers through the regular error path as a 500.
func Recovery(errs utils.ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					zerolog.Ctx(r.Context()).Error().
						Interface("panic", rec).
						Str("method", r.Method).
						Str("url", r.URL.String()).
						Str("remote", r.RemoteAddr).
						Bytes("stack", debug.Stack()).
						Msg("panic recovered")

					errs.Write(w, r, pkgerrors.Errorf("panic: %v", rec))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
