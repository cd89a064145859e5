package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mirandajandir7-prog/mitaller/internal/config"
	"github.com/mirandajandir7-prog/mitaller/internal/infra"
	"github.com/mirandajandir7-prog/mitaller/internal/repository"
	"github.com/mirandajandir7-prog/mitaller/internal/router"
	"github.com/mirandajandir7-prog/mitaller/internal/service"
	"github.com/mirandajandir7-prog/mitaller/internal/store"
	"github.com/mirandajandir7-prog/mitaller/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DataFile), 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create data directory")
	}
	db, err := store.Open(cfg.DataFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open data file")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userRepo := repository.NewUserRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)

	// Seed the default admin account on an empty store.
	authSvc := service.NewAuthService(userRepo, cfg)
	if err := authSvc.EnsureAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin user")
	}

	// Quotes written by older versions lack persisted totals; stamp them
	// once at startup so reads never have to recompute.
	patched, err := quoteRepo.BackfillTotals(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to backfill quote totals")
	}
	if patched > 0 {
		log.Info().Int("quotes", patched).Msg("backfilled quote totals")
	}

	// Async pool for email sends. Handlers are wired here (composition
	// root) so the pool has access to all infrastructure dependencies.
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher()
	workerHandlers := &worker.Handlers{
		Email: worker.NewEmailWorker(mailer),
	}
	worker.StartWorkerPool(ctx, dispatcher, workerHandlers, cfg.WorkerPoolSize)

	r := router.New(cfg, db, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("mitaller backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
