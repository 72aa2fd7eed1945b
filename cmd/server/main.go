package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/profiles/internal/config"
	"github.com/JonMunkholm/profiles/internal/core"
	"github.com/JonMunkholm/profiles/internal/countries"
	"github.com/JonMunkholm/profiles/internal/logging"
	"github.com/JonMunkholm/profiles/internal/metrics"
	"github.com/JonMunkholm/profiles/internal/web"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"countries_enabled", cfg.Countries.Enabled,
		"session_ttl", cfg.Session.TTL,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Country list source
	var provider core.CountryProvider = countries.Static{}
	if cfg.Countries.Enabled {
		provider = countries.NewClient(cfg.Countries.URL, cfg.Countries.Timeout)
		slog.Info("country list source", "url", cfg.Countries.URL)
	} else {
		slog.Info("country list fetching disabled")
	}

	sessions := core.NewSessionManager(m.InstrumentProvider(provider), cfg.Session.TTL)
	m.TrackSessions(sessions.Len)

	server := web.NewServer(cfg, sessions, m, reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Start(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Background jobs
	g.Go(func() error {
		sessions.StartSweeper(gctx, cfg.Session.SweepInterval)
		return nil
	})
	g.Go(func() error {
		server.RunMaintenance(gctx)
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	sessions.CloseAll()
	if err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
