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
	"github.com/mento-labs/airdrop-allocator/internal/logger"
	"github.com/mento-labs/airdrop-allocator/internal/providers/analytics"
	"github.com/mento-labs/airdrop-allocator/internal/providers/jetstream"
	"github.com/mento-labs/airdrop-allocator/internal/refresh"
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
	cfg, err := config.LoadRefresherConfig(*configFile, *envPath)
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
			"service": "refresher",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Airdrop Refresher")

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()
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

	// Initialize task dispatcher
	dispatcher, err := jetstream.NewDispatcher(jetstream.Config{
		URL:              cfg.NATS.URL,
		StreamName:       cfg.NATS.StreamName,
		MaxReconnects:    cfg.NATS.MaxReconnects,
		ReconnectWait:    cfg.NATS.ReconnectWait,
		ConnectionName:   "refresher",
		BatchSize:        cfg.Airdrop.BatchSize,
		ForceSingleBatch: cfg.Airdrop.ForceSingleBatch,
	}, adapter.NewNatsJetStream(), jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer dispatcher.Close()
	logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))

	// Initialize refresher and scheduler
	refresher := refresh.NewRefresher(dataStore, analyticsClient, dispatcher, clock, refresh.Config{
		AllocationQueryID: cfg.Analytics.AllocationQueryID,
		StatsQueryID:      cfg.Analytics.StatsQueryID,
		ImportStuckAfter:  cfg.Airdrop.ImportStuckAfter,
		StatsPollInterval: cfg.Airdrop.StatsPollInterval,
		StatsPollRetries:  cfg.Airdrop.StatsPollRetries,
		MaxAllocation:     cfg.Airdrop.MaxAllocation,
	})
	scheduler := refresh.NewScheduler(refresher, cfg.Interval)

	// Start the scheduler in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := scheduler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
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
		logger.ErrorCtx(ctx, err, zap.String("component", "scheduler"))
	}

	cancel()
	logger.Info("Refresher stopped")
}
