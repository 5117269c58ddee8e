package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ENW_BACK-END/internal/config"
	"ENW_BACK-END/internal/middleware"
	"ENW_BACK-END/internal/notify"
)

func testConfig() *config.Config {
	return &config.Config{
		Database:  config.DatabaseConfig{Driver: config.DriverMemory, UseTransactions: true},
		App:       config.AppConfig{Environment: config.EnvTest, ClientURL: "http://localhost:5173"},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}, AllowedMethods: []string{"GET", "POST"}},
		RateLimit: config.RateLimitConfig{Enabled: true, Window: time.Minute, MaxRequests: 100},
	}
}

func TestOpenStore(t *testing.T) {
	s, err := OpenStore(context.Background(), &config.DatabaseConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	require.NoError(t, s.Ping(context.Background()))

	_, err = OpenStore(context.Background(), &config.DatabaseConfig{Driver: "sqlite"})
	assert.Error(t, err)
}

func TestNewNotifier(t *testing.T) {
	cfg := testConfig()
	assert.IsType(t, notify.Noop{}, NewNotifier(cfg, zerolog.Nop()))

	cfg.Email = config.EmailConfig{SMTPUsername: "u", SMTPPassword: "p", SendTimeout: time.Second}
	assert.IsType(t, &notify.Async{}, NewNotifier(cfg, zerolog.Nop()))
}

func TestNewLimiter_FallsBackToMemory(t *testing.T) {
	l, closeFn := NewLimiter(context.Background(), &config.RateLimitConfig{Window: time.Minute}, zerolog.Nop())
	assert.IsType(t, &middleware.MemoryLimiter{}, l)
	assert.NoError(t, closeFn())

	l, _ = NewLimiter(context.Background(), &config.RateLimitConfig{Window: time.Minute, RedisURL: "::not a url"}, zerolog.Nop())
	assert.IsType(t, &middleware.MemoryLimiter{}, l)
}

func TestNewHandler(t *testing.T) {
	cfg := testConfig()
	s, err := OpenStore(context.Background(), &cfg.Database)
	require.NoError(t, err)
	svc := NewServices(cfg, s, notify.Noop{}, zerolog.Nop())
	h := NewHandler(cfg, svc, s, middleware.NewMemoryLimiter(time.Minute), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/blog/posts", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "100", rec.Header().Get("RateLimit-Limit"))
}
