package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/cajun-local/ask-local/api/internal/asklocal/application"
	"github.com/cajun-local/ask-local/api/internal/config"
	"github.com/cajun-local/ask-local/api/internal/infrastructure/kafka"
	"github.com/cajun-local/ask-local/api/internal/infrastructure/metrics"
	"github.com/cajun-local/ask-local/api/internal/infrastructure/openai"
	"github.com/cajun-local/ask-local/api/internal/infrastructure/session"
	"github.com/cajun-local/ask-local/api/internal/logging"
	"github.com/cajun-local/ask-local/api/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	backend, err := server.OpenBackend(context.Background(), cfg.Store, logger)
	if err != nil {
		logger.Fatal("open directory store failed", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	askMetrics := metrics.NewAskMetrics(registry)

	var (
		impressions application.ImpressionPublisher
		closers     []func(context.Context) error
	)
	if cfg.KafkaEnabled() {
		publisher := kafka.NewImpressionPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		impressions = publisher
		closers = append(closers, func(context.Context) error { return publisher.Close() })
		logger.Info("featured impressions enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	service := application.NewService(application.Dependencies{
		Verifier:     session.NewJWTVerifier(cfg.Auth.JWTConfigs(), cfg.Auth.Audience, time.Now),
		Entitlements: backend.Entitlements,
		Directory:    backend.Directory,
		Promotions:   backend.Promotions,
		Provider: openai.NewStreamClient(openai.Config{
			BaseURL:               cfg.Provider.BaseURL,
			APIKey:                cfg.Provider.APIKey,
			Model:                 cfg.Provider.Model,
			ResponseHeaderTimeout: cfg.Provider.ResponseHeaderTimeout,
		}),
		Impressions: impressions,
		Location:    cfg.Location(),
		Logger:      logger,
	})

	app := server.New(cfg, server.Options{
		Logger:   logger,
		Backend:  backend,
		Asker:    service,
		Metrics:  askMetrics,
		Gatherer: registry,
		Closers:  closers,
	})
	if err := app.Run(); err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}
}
