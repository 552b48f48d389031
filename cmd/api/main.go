// cmd/api/main.go

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"brandpulse/internal/adapter/sheets"
	"brandpulse/internal/config"
	"brandpulse/internal/domain/social"
	"brandpulse/internal/logging"
	"brandpulse/internal/server"
	"brandpulse/internal/service/collector"
	"brandpulse/internal/service/insight"
	"brandpulse/internal/service/listening"
)

func main() {
	// Load .env if present
	godotenv.Load()

	logger := logging.NewLogger("brandpulse-api")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	natsConn, err := initNATS(cfg.NATS, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to NATS")
	}
	defer natsConn.Close()

	// Initialize services
	simulator := collector.NewSimulator(collector.Config{
		Days:       cfg.Collector.Days,
		Platforms:  cfg.Collector.Platforms,
		Sentiments: cfg.Collector.Sentiments,
		DataDir:    cfg.Collector.DataDir,
	}, logger)

	listeningService := listening.NewService(
		simulator,
		initInsights(cfg.Gemini, logger),
		natsConn,
		listening.ServiceConfig{EventsTopic: cfg.Events.SearchTopic},
		logger,
	)

	// Initialize the spreadsheet mirror. A missing Sheets configuration
	// degrades to running without mirroring rather than failing startup.
	mirrorWorker := initMirror(ctx, cfg, natsConn, logger)

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, natsConn, listeningService, cfg.Events.SearchTopic, logger)

	// Start HTTP server
	go func() {
		logger.WithFields(logrus.Fields{"host": cfg.Server.Host, "port": cfg.Server.Port}).Info("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("HTTP server error")
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	logger.Info("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("HTTP server shutdown error")
	}

	if mirrorWorker != nil {
		if err := mirrorWorker.Stop(); err != nil {
			logger.WithError(err).Error("Mirror worker shutdown error")
		}
	}

	logger.Info("Shutdown complete")
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig, logger logrus.FieldLogger) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.WithError(err).Warn("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.WithField("url", nc.ConnectedUrl()).Info("NATS reconnected")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	return nats.Connect(cfg.URL, options...)
}

// initInsights wires the Gemini insight generator when an API key is
// configured. Without one (the development default) searches degrade
// to the fixed fallback insight text instead of failing startup.
func initInsights(cfg config.GeminiConfig, logger logrus.FieldLogger) social.InsightGenerator {
	gemini, err := insight.NewGeminiService(insight.GeminiConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
		Retry: insight.RetryConfig{
			MaxAttempts: cfg.MaxAttempts,
			BaseDelay:   cfg.BaseDelay,
			MaxDelay:    cfg.MaxDelay,
		},
	}, logger)
	if err != nil {
		logger.WithError(err).Warn("AI insight generation disabled")
		return nil
	}
	return gemini
}

// initMirror wires the spreadsheet mirror worker when Sheets
// credentials are configured.
func initMirror(ctx context.Context, cfg config.Config, natsConn *nats.Conn, logger logrus.FieldLogger) *sheets.Worker {
	sheetsService, err := sheets.NewService(ctx, cfg.Sheets, logger)
	if err != nil {
		logger.WithError(err).Warn("Google Sheets mirroring disabled")
		return nil
	}

	worker := sheets.NewWorker(sheetsService, natsConn, sheets.WorkerConfig{
		SearchTopic:   cfg.Events.SearchTopic,
		MirrorTimeout: cfg.Events.MirrorTimeout,
	}, logger)

	if err := worker.Start(); err != nil {
		logger.WithError(err).Error("Failed to start mirror worker")
		return nil
	}

	return worker
}
