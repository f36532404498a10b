// Package main is the entry point for the custody schedule API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kaykas/alexandra-schedule/internal/api"
	"github.com/kaykas/alexandra-schedule/internal/config"
	"github.com/kaykas/alexandra-schedule/internal/custody"
	"github.com/kaykas/alexandra-schedule/internal/database"
	"github.com/kaykas/alexandra-schedule/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.Setup(cfg)

	log.Info("starting custody schedule API",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("log_level", cfg.LogLevel),
	)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()

	// =========================================================================
	// Database: calendar revisions
	// =========================================================================
	db, err := database.Open(database.DefaultConfig(cfg.DatabasePath), log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Calendar facts: built once, immutable afterwards
	// =========================================================================
	facts, err := loadFacts(ctx, db, log)
	if err != nil {
		return fmt.Errorf("load calendar facts: %w", err)
	}
	engine := custody.NewEngine(facts)

	// =========================================================================
	// HTTP server
	// =========================================================================
	handlers := api.NewHandlers(db, engine, cfg, log)
	router := api.SetupRoutes(handlers, cfg, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-stop:
		log.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

// loadFacts builds the calendar facts: the published district calendar plus
// any stored revisions. The facts are frozen here; revisions added later
// through the admin endpoint take effect at the next startup.
func loadFacts(ctx context.Context, db *database.DB, log *slog.Logger) (*custody.Facts, error) {
	facts := custody.DefaultFacts()

	revisions, err := db.ListRevisions(ctx)
	if err != nil {
		return nil, err
	}

	for _, rev := range revisions {
		d, err := custody.ParseDate(rev.Date)
		if err != nil {
			log.Warn("skipping revision with bad date",
				slog.String("date", rev.Date),
				slog.String("kind", string(rev.Kind)))
			continue
		}
		switch rev.Kind {
		case database.KindNoSchool:
			facts.ApplyNoInstructionDay(d)
		case database.KindMinimum:
			facts.ApplyMinimumDay(d)
		case database.KindInstruction:
			facts.ApplyInstructionDay(d)
		}
	}

	log.Info("calendar facts loaded", slog.Int("revisions", len(revisions)))
	return facts, nil
}
