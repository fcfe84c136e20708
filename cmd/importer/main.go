package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mento-labs/airdrop-allocator/internal/adapter"
	"github.com/mento-labs/airdrop-allocator/internal/config"
	"github.com/mento-labs/airdrop-allocator/internal/importer"
	"github.com/mento-labs/airdrop-allocator/internal/logger"
	"github.com/mento-labs/airdrop-allocator/internal/providers/analytics"
	"github.com/mento-labs/airdrop-allocator/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadImporterConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "importer",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Airdrop Importer")

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(cfg.Analytics.Timeout)
	redisAdapter := adapter.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	if err := redisAdapter.Ping(ctx); err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
	}
	logger.InfoCtx(ctx, "Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// Initialize store
	dataStore := store.NewRedisStore(redisAdapter, jsonAdapter, store.Config{
		AllocationTTL:    cfg.Airdrop.AllocationTTL,
		WriteChunkSize:   cfg.Airdrop.WriteChunkSize,
		WriteConcurrency: cfg.Airdrop.WriteConcurrency,
	})
	defer func() {
		if err := dataStore.Close(); err != nil {
			logger.Error(err, zap.String("component", "store"))
		}
	}()

	// Initialize analytics client
	analyticsClient := analytics.NewClient(httpClient, jsonAdapter, cfg.Analytics.APIURL, cfg.Analytics.APIKey)

	// Initialize worker
	worker := importer.NewWorker(dataStore, analyticsClient, importer.Config{
		MaxAllocation:    cfg.Airdrop.MaxAllocation,
		ForceSingleBatch: cfg.Airdrop.ForceSingleBatch,
	})

	// Initialize consumer
	consumer, err := importer.NewConsumer(importer.ConsumerConfig{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		ConsumerName:   cfg.NATS.ConsumerName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: "importer",
		AckWaitTimeout: cfg.NATS.AckWait,
		MaxDeliver:     cfg.NATS.MaxDeliver,
	}, adapter.NewNatsJetStream(), worker, jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer consumer.Close()
	logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))

	// Start the consumer in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "consumer"))
	}

	cancel()
	logger.Info("Importer stopped")
}
