package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/krishisheba/agri-advisory/internal/adapter/http"
	kafkaadapter "github.com/krishisheba/agri-advisory/internal/adapter/kafka"
	"github.com/krishisheba/agri-advisory/internal/adapter/smsgateway"
	"github.com/krishisheba/agri-advisory/internal/config"
	"github.com/krishisheba/agri-advisory/internal/domain"
	"github.com/krishisheba/agri-advisory/internal/observability"
	"github.com/krishisheba/agri-advisory/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// SMS dispatch is feature-flagged via SMS_ENABLED / SMS_GATEWAY_TOKEN.
	// Alerts are always published to the alert topic either way.
	var sender domain.AlertSender
	if cfg.SMSEnabled {
		client := smsgateway.NewClient(cfg.SMSGatewayURL, cfg.SMSGatewayToken, cfg.SMSTimeout, metrics, logger)
		sender = smsgateway.NewDedupingSender(client, cfg.SMSDedupeSize, metrics)
		metrics.SMSEnabled.Set(1)
		logger.Info("sms alert dispatch enabled", "dedupe_size", cfg.SMSDedupeSize, "timeout", cfg.SMSTimeout)
	} else {
		logger.Info("sms alert dispatch disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(sender, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start advisory pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
