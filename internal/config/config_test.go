package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mento-labs/airdrop-allocator/internal/config"
)

func TestLoadAPIConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadAPIConfig("", t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 120, cfg.Server.IdleTimeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, "AIRDROP_IMPORTS", cfg.NATS.StreamName)
	assert.Equal(t, "importer", cfg.NATS.ConsumerName)
	assert.Equal(t, 5*time.Minute, cfg.NATS.AckWait)
	assert.Equal(t, 5, cfg.NATS.MaxDeliver)
	assert.Equal(t, "https://api.dune.com/api", cfg.Analytics.APIURL)
	assert.Equal(t, 60*time.Second, cfg.Analytics.Timeout)
	assert.Equal(t, int64(10000), cfg.Airdrop.BatchSize)
	assert.Equal(t, 1000, cfg.Airdrop.WriteChunkSize)
	assert.Equal(t, 8, cfg.Airdrop.WriteConcurrency)
	assert.Equal(t, 72*time.Hour, cfg.Airdrop.AllocationTTL)
	assert.Equal(t, 30*time.Minute, cfg.Airdrop.ImportStuckAfter)
	assert.Equal(t, time.Second, cfg.Airdrop.StatsPollInterval)
	assert.Equal(t, 5, cfg.Airdrop.StatsPollRetries)
	assert.False(t, cfg.Airdrop.ForceSingleBatch)
}

func TestLoadAPIConfig_EnvOverrides(t *testing.T) {
	t.Setenv("AIRDROP_DEBUG", "true")
	t.Setenv("AIRDROP_SERVER_PORT", "9090")
	t.Setenv("AIRDROP_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("AIRDROP_ANALYTICS_API_KEY", "test-key")
	t.Setenv("AIRDROP_AIRDROP_ALLOCATION_TTL", "24h")

	cfg, err := config.LoadAPIConfig("", t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, "test-key", cfg.Analytics.APIKey)
	assert.Equal(t, 24*time.Hour, cfg.Airdrop.AllocationTTL)
}

func TestLoadRefresherConfig(t *testing.T) {
	t.Setenv("AIRDROP_ANALYTICS_ALLOCATION_QUERY_ID", "4242")
	t.Setenv("AIRDROP_ANALYTICS_STATS_QUERY_ID", "7001")

	cfg, err := config.LoadRefresherConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, int64(4242), cfg.Analytics.AllocationQueryID)
	assert.Equal(t, int64(7001), cfg.Analytics.StatsQueryID)
	assert.Equal(t, 5*time.Minute, cfg.Interval)
}

func TestLoadRefresherConfig_RequiresQueryIDs(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing allocation query id",
			env:     map[string]string{"AIRDROP_ANALYTICS_STATS_QUERY_ID": "7001"},
			wantErr: "analytics.allocation_query_id is required",
		},
		{
			name:    "missing stats query id",
			env:     map[string]string{"AIRDROP_ANALYTICS_ALLOCATION_QUERY_ID": "4242"},
			wantErr: "analytics.stats_query_id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.LoadRefresherConfig("", t.TempDir())

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestLoadImporterConfig(t *testing.T) {
	t.Setenv("AIRDROP_NATS_CONSUMER_NAME", "importer-staging")
	t.Setenv("AIRDROP_AIRDROP_FORCE_SINGLE_BATCH", "true")

	cfg, err := config.LoadImporterConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "importer-staging", cfg.NATS.ConsumerName)
	assert.True(t, cfg.Airdrop.ForceSingleBatch)
	assert.Equal(t, int64(10000), cfg.Airdrop.BatchSize)
}
