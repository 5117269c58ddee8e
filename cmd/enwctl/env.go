package main

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ENW_BACK-END/internal/app"
	"ENW_BACK-END/internal/config"
	"ENW_BACK-END/internal/logger"
	"ENW_BACK-END/internal/notify"
	"ENW_BACK-END/internal/store"
)

// env is what storage-backed commands run against.
type env struct {
	cfg   *config.Config
	log   zerolog.Logger
	store store.Store
	svc   *app.Services
}

func (e *env) close(ctx context.Context) {
	if err := e.store.Close(ctx); err != nil {
		e.log.Warn().Err(err).Msg("close storage")
	}
}

// openEnv loads configuration and connects storage. Confirmation e-mails
// are never sent from the CLI.
func openEnv(cmd *cobra.Command) (*env, error) {
	// Load validates the driver, so the override has to land first.
	if d, _ := cmd.Flags().GetString("driver"); d != "" {
		if err := os.Setenv("DB_DRIVER", strings.ToLower(d)); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Log.Level, true)

	s, err := app.OpenStore(cmd.Context(), &cfg.Database)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, store: s, svc: app.NewServices(cfg, s, notify.Noop{}, log)}, nil
}
