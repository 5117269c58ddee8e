// @title ENW Backend API
// @version 1.0.0
// @description Elderly Neighbour Watch API: senior support intake, volunteers, partners and blog

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	_ "ENW_BACK-END/docs" // This is required for swagger
	"ENW_BACK-END/internal/app"
	"ENW_BACK-END/internal/config"
	"ENW_BACK-END/internal/logger"
	"ENW_BACK-END/internal/notify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	lg := logger.Setup(cfg.Log.Level, cfg.Log.Pretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage is opened once and closed on shutdown
	startCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	st, err := app.OpenStore(startCtx, &cfg.Database)
	cancel()
	if err != nil {
		lg.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("open storage")
	}
	lg.Info().Str("driver", cfg.Database.Driver).Msg("storage connected")

	n := app.NewNotifier(cfg, lg)
	limiter, closeLimiter := app.NewLimiter(ctx, &cfg.RateLimit, lg)
	svc := app.NewServices(cfg, st, n, lg)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           app.NewHandler(cfg, svc, st, limiter, lg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		lg.Info().Str("addr", srv.Addr).Str("environment", cfg.App.Environment).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal().Err(err).Msg("ListenAndServe")
		}
	}()

	<-ctx.Done()
	lg.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("server shutdown")
	}
	if a, ok := n.(*notify.Async); ok {
		a.Wait()
	}
	if err := closeLimiter(); err != nil {
		lg.Warn().Err(err).Msg("close rate limiter")
	}
	if err := st.Close(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("close storage")
	}
	lg.Info().Msg("server stopped")
}
