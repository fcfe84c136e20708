package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mento-labs/airdrop-allocator/internal/adapter"
	"github.com/mento-labs/airdrop-allocator/internal/api/server"
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
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
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
			"service": "allocation-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Airdrop Allocation API")

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

	// Initialize task dispatcher (used by the internal refresh trigger)
	dispatcher, err := jetstream.NewDispatcher(jetstream.Config{
		URL:              cfg.NATS.URL,
		StreamName:       cfg.NATS.StreamName,
		MaxReconnects:    cfg.NATS.MaxReconnects,
		ReconnectWait:    cfg.NATS.ReconnectWait,
		ConnectionName:   "allocation-api",
		BatchSize:        cfg.Airdrop.BatchSize,
		ForceSingleBatch: cfg.Airdrop.ForceSingleBatch,
	}, adapter.NewNatsJetStream(), jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer dispatcher.Close()
	logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))

	// Initialize refresher
	refresher := refresh.NewRefresher(dataStore, analyticsClient, dispatcher, clock, refresh.Config{
		AllocationQueryID: cfg.Analytics.AllocationQueryID,
		StatsQueryID:      cfg.Analytics.StatsQueryID,
		ImportStuckAfter:  cfg.Airdrop.ImportStuckAfter,
		StatsPollInterval: cfg.Airdrop.StatsPollInterval,
		StatsPollRetries:  cfg.Airdrop.StatsPollRetries,
		MaxAllocation:     cfg.Airdrop.MaxAllocation,
	})

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		APIKeys:      cfg.Auth.APIKeys,
	}

	// Create and start server
	srv := server.New(serverConfig, dataStore, refresher)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
