package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"apichain/internal/api"
	"apichain/internal/config"
	"apichain/internal/history"
	"apichain/internal/logging"
	"apichain/internal/metrics"
	"apichain/internal/notify"
	"apichain/internal/scheduler"
	"apichain/internal/source"
	"apichain/internal/workflow"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Parse command line flags
	envFile := flag.String("env", "", "Path to .env file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Configuration loading failed: %v", err)
	}

	logger := logging.New(cfg.Log)
	logger.Info().
		Int("max_depth", cfg.Workflow.MaxDepth).
		Int("interval_s", cfg.Workflow.IntervalSecs).
		Float64("alert_threshold", cfg.Workflow.AlertThreshold).
		Str("seed", cfg.Workflow.SeedURL).
		Msg("starting workflow service")

	// Metrics are optional: without an OTLP endpoint the instruments stay nil
	// and record nothing.
	var m *metrics.Metrics
	if cfg.Metrics.OTLPEndpoint != "" {
		provider, err := metrics.InitProvider(ctx, cfg.Metrics.OTLPEndpoint)
		if err != nil {
			logger.Error().Err(err).Msg("metrics exporter unavailable, continuing without metrics")
		} else {
			defer func() {
				shutdownCtx, c := context.WithTimeout(context.Background(), 5*time.Second)
				defer c()
				if err := provider.Shutdown(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("metrics provider shutdown error")
				}
			}()
			if m, err = metrics.New(); err != nil {
				logger.Error().Err(err).Msg("metrics instruments unavailable")
			}
		}
	}

	// Notification sinks. A failed sheet authentication degrades that sink to
	// a no-op; it never blocks startup.
	sheetSink := notify.NewSheetSink(ctx, cfg.Sheet.CredentialsFile, cfg.Sheet.SpreadsheetID,
		logging.WithComponent(logger, "sheet"))
	if !sheetSink.Enabled() {
		logger.Warn().Msg("sheet sink disabled for process lifetime")
	}
	fanout := notify.NewFanout(logging.WithComponent(logger, "notify"), m,
		notify.NewEmailSink(notify.EmailConfig{
			From:     cfg.Email.From,
			To:       cfg.Email.To,
			Server:   cfg.Email.Server,
			Port:     cfg.Email.Port,
			User:     cfg.Email.User,
			Password: cfg.Email.Password,
		}),
		notify.NewSlackSink(cfg.Slack.WebhookURL),
		sheetSink,
	)

	// Workflow core
	store := history.NewMemoryStore()
	selector := workflow.NewSelector(workflow.Bands{
		Low:          cfg.Workflow.BandLow,
		High:         cfg.Workflow.BandHigh,
		EndpointLow:  cfg.Workflow.EndpointLow,
		EndpointMid:  cfg.Workflow.EndpointMid,
		EndpointHigh: cfg.Workflow.EndpointHigh,
	}, cfg.Workflow.MaxDepth)
	engine := workflow.NewEngine(
		source.NewHTTPClient(logging.WithComponent(logger, "source")),
		fanout, store, selector,
		cfg.Workflow.AlertThreshold,
		logging.WithComponent(logger, "workflow"),
		m,
	)

	// Background scheduler loop
	sched := scheduler.New(engine, cfg.Workflow.SeedURL,
		time.Duration(cfg.Workflow.IntervalSecs)*time.Second,
		logging.WithComponent(logger, "scheduler"))
	go sched.Start(ctx)

	// Create Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	api.NewHandler(store).Register(e)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown handling
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("address", addr).Msg("dashboard server starting")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("server error")
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
		cancel() // stops the scheduler loop

		shutdownCtx, c := context.WithTimeout(context.Background(), 30*time.Second)
		defer c()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server shutdown error")
			if err := server.Close(); err != nil {
				logger.Error().Err(err).Msg("server close error")
			}
		}
		logger.Info().Msg("server stopped gracefully")
	}
}
