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

	"github.com/anonto42/nano-forum/backend/internal/repositories"
	"github.com/anonto42/nano-forum/backend/internal/router"
	"github.com/anonto42/nano-forum/backend/internal/services"
	"github.com/anonto42/nano-forum/backend/internal/throttle"
	"github.com/anonto42/nano-forum/backend/internal/validators"
	"github.com/anonto42/nano-forum/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the metrics endpoint",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not migrate the schema on startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize databases: %w", err)
	}
	defer db.CloseDB()

	if !skipMigrate {
		if err := repositories.Migrate(db.SQL); err != nil {
			return fmt.Errorf("failed to auto migrate models: %w", err)
		}
	}

	svc := services.New(repositories.NewStore(db.SQL), services.Options{
		Throttle: newThrottle(cfg, db),
	})

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	config.SetupMiddleware(e)
	router.SetupRoutes(e, svc, cfg)

	metricsSrv := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("Metrics server listening", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("API server listening", "port", cfg.Port, "env", cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("Metrics server shutdown", "error", err)
	}
	return e.Shutdown(shutdownCtx)
}

func newThrottle(cfg *config.Config, db *config.DB) throttle.Throttle {
	if cfg.ThrottleBackend == "redis" && db.Redis != nil {
		return throttle.NewRedis(db.Redis, cfg.ThrottleCooldown)
	}
	return throttle.NewMemory(cfg.ThrottleCooldown, time.Now)
}
