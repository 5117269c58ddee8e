// Package app assembles the storage, services and HTTP stack from config.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"ENW_BACK-END/internal/config"
	"ENW_BACK-END/internal/handlers"
	"ENW_BACK-END/internal/markdown"
	"ENW_BACK-END/internal/middleware"
	"ENW_BACK-END/internal/notify"
	"ENW_BACK-END/internal/routes"
	"ENW_BACK-END/internal/services"
	"ENW_BACK-END/internal/store"
	"ENW_BACK-END/internal/store/memory"
	"ENW_BACK-END/internal/store/mongostore"
	"ENW_BACK-END/internal/store/postgres"
	"ENW_BACK-END/internal/utils"
)

// notifyConcurrency bounds in-flight confirmation e-mails.
const notifyConcurrency = 8

// OpenStore connects the configured storage driver.
func OpenStore(ctx context.Context, cfg *config.DatabaseConfig) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		return mongostore.Open(ctx, mongostore.Config{
			URI:            cfg.MongoURI,
			Database:       cfg.MongoDatabase,
			ConnectTimeout: cfg.ConnTimeout,
		})
	case config.DriverPostgres:
		c := &config.Config{Database: *cfg}
		return postgres.Open(ctx, postgres.Config{
			DSN:              c.GetDSN(),
			MaxConns:         cfg.MaxConns,
			MinConns:         cfg.MinConns,
			MaxConnLifetime:  cfg.MaxLifetime,
			ConnectTimeout:   cfg.ConnTimeout,
			SimpleProtocol:   cfg.SimpleProtocol,
			StatementTimeout: cfg.QueryTimeout,
		})
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Services holds every domain service.
type Services struct {
	Intake      *services.IntakeService
	Requests    *services.SupportRequestService
	Volunteers  *services.VolunteerService
	Partners    *services.PartnerService
	Assignments *services.AssignmentService
	Blog        *services.BlogService
	Maintenance *services.MaintenanceService
}

// NewServices builds the services over s.
func NewServices(cfg *config.Config, s store.Store, n notify.Notifier, log zerolog.Logger) *Services {
	useTx := cfg.Database.UseTransactions
	return &Services{
		Intake:      services.NewIntakeService(s, n, log, useTx),
		Requests:    services.NewSupportRequestService(s, log),
		Volunteers:  services.NewVolunteerService(s, n, log),
		Partners:    services.NewPartnerService(s, n, log),
		Assignments: services.NewAssignmentService(s, log, useTx),
		Blog:        services.NewBlogService(s, markdown.NewRenderer(), log),
		Maintenance: services.NewMaintenanceService(s),
	}
}

// NewNotifier returns the asynchronous SMTP notifier, or a no-op one when
// SMTP credentials are missing.
func NewNotifier(cfg *config.Config, log zerolog.Logger) notify.Notifier {
	if !cfg.IsEmailConfigured() {
		log.Info().Msg("SMTP not configured, confirmation e-mails disabled")
		return notify.Noop{}
	}
	return notify.NewAsync(notify.NewEmailNotifier(&cfg.Email), log, notifyConcurrency, cfg.Email.SendTimeout)
}

// NewLimiter returns the Redis limiter when a reachable REDIS_URL is set and
// the in-process one otherwise. The returned close func is never nil.
func NewLimiter(ctx context.Context, cfg *config.RateLimitConfig, log zerolog.Logger) (middleware.Limiter, func() error) {
	if cfg.RedisURL == "" {
		return middleware.NewMemoryLimiter(cfg.Window), func() error { return nil }
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("invalid REDIS_URL, using in-process rate limiter")
		return middleware.NewMemoryLimiter(cfg.Window), func() error { return nil }
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, using in-process rate limiter")
		_ = client.Close()
		return middleware.NewMemoryLimiter(cfg.Window), func() error { return nil }
	}
	log.Info().Str("addr", opts.Addr).Msg("rate limiter backed by redis")
	return middleware.NewRedisLimiter(client, cfg.Window), client.Close
}

// NewHandler builds the complete HTTP handler: routes, admin guard, rate
// limit, CORS, request logging and panic recovery.
func NewHandler(cfg *config.Config, svc *Services, s store.Store, limiter middleware.Limiter, log zerolog.Logger) http.Handler {
	errs := utils.ErrorWriter{Production: cfg.IsProduction()}

	opts := routes.Options{
		Adapter: handlers.Adapter{Errors: errs},
		Admin:   middleware.RequireAdmin(&cfg.Auth),
	}
	if cfg.RateLimit.Enabled && limiter != nil {
		opts.API = middleware.RateLimit(limiter, cfg.RateLimit.MaxRequests, cfg.RateLimit.TrustProxy)
	}

	mux := routes.SetupRoutes(routes.Handlers{
		Health:     handlers.NewHealthHandler(s, cfg.App.Environment),
		Seniors:    handlers.NewSeniorHandler(svc.Intake, svc.Requests, svc.Assignments),
		Volunteers: handlers.NewVolunteerHandler(svc.Volunteers),
		Partners:   handlers.NewPartnerHandler(svc.Partners),
		Assign:     handlers.NewAssignmentHandler(svc.Assignments),
		Blog:       handlers.NewBlogHandler(svc.Blog),
	}, opts)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	return middleware.Chain(mux,
		middleware.RequestLogger(log),
		middleware.Recovery(errs),
		c.Handler,
	)
}
