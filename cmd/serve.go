package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/Shivanand-hulikatti/eventos/internal/config"
	"github.com/Shivanand-hulikatti/eventos/internal/handler"
	"github.com/Shivanand-hulikatti/eventos/internal/metrics"
	"github.com/Shivanand-hulikatti/eventos/internal/model"
	"github.com/Shivanand-hulikatti/eventos/internal/repository"
	"github.com/Shivanand-hulikatti/eventos/internal/service"
	"github.com/Shivanand-hulikatti/eventos/internal/telemetry"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if logFormat != "" {
			cfg.Logging.Format = logFormat
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg)
	},
}

func serve(ctx context.Context, cfg config.Config) error {
	logger := config.NewLogger(cfg.Logging)
	logger.Info().Str("version", Version).Str("environment", cfg.Environment).Msg("starting eventos")
	metrics.AppInfo.WithLabelValues(Version).Set(1)

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.Tracing, Version)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error().Err(err).Msg("tracing shutdown error")
		}
	}()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// ── Wire up layers ────────────────────────────────────────────────────
	var seed []model.Event
	if cfg.SeedDemo {
		seed = repository.DemoEvents()
	}
	eventRepo := repository.NewEventRepository(seed...)
	eventSvc := service.NewEventService(eventRepo, logger, service.WithLocation(loc))
	logger.Info().Int("events", eventRepo.Count()).Msg("catalog ready")

	router := handler.NewRouter(eventSvc, logger, handler.RouterConfig{
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		WritesPerMinute: cfg.RateLimit.WritesPerMinute,
		CSRFKey:         []byte(cfg.CSRF.Key),
		CSRFSecure:      cfg.CSRF.Secure,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return shutdown(srv, cfg.Server, logger)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func shutdown(srv *http.Server, cfg config.ServerConfig, logger zerolog.Logger) error {
	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
