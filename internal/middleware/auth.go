package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"ENW_BACK-END/internal/config"
	"ENW_BACK-END/internal/dto"
	"ENW_BACK-END/internal/utils"
)

type ctxKey int

const adminKey ctxKey = iota

// HashAPIKey returns the bcrypt hash stored in ADMIN_API_KEY_HASH.
func HashAPIKey(key string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	return string(b), err
}

// Admin returns the subject that authenticated the request, if any.
func Admin(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(adminKey).(string)
	return s, ok
}

// RequireAdmin guards admin routes. A request passes with a matching
// X-API-Key header or a bearer token carrying the admin role. With no
// credentials configured every request passes.
func RequireAdmin(cfg *config.AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.APIKey == "" && cfg.APIKeyHash == "" && cfg.JWTSecret == "" {
				next.ServeHTTP(w, r)
				return
			}

			subject, ok := authenticate(r, cfg)
			if !ok {
				zerolog.Ctx(r.Context()).Info().
					Str("path", r.URL.Path).
					Msg("admin authentication failed")
				utils.WriteJSONResponse(w, http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(r *http.Request, cfg *config.AuthConfig) (string, bool) {
	if key := r.Header.Get("X-API-Key"); key != "" {
		switch {
		case cfg.APIKey != "":
			if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.APIKey)) == 1 {
				return "api-key", true
			}
		case cfg.APIKeyHash != "":
			if bcrypt.CompareHashAndPassword([]byte(cfg.APIKeyHash), []byte(key)) == nil {
				return "api-key", true
			}
		}
	}

	if cfg.JWTSecret == "" {
		return "", false
	}
	// Extract token from "Bearer <token>"
	tokenParts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", false
	}
	claims, err := ValidateToken(tokenParts[1], cfg)
	if err != nil {
		return "", false
	}
	return claims.Subject, true
}
