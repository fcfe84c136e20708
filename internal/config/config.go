package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	AckWait        time.Duration `mapstructure:"ack_wait"`
	MaxDeliver     int           `mapstructure:"max_deliver"`
}

// AnalyticsConfig holds analytics query provider configuration
type AnalyticsConfig struct {
	APIURL            string        `mapstructure:"api_url"`
	APIKey            string        `mapstructure:"api_key"`
	AllocationQueryID int64         `mapstructure:"allocation_query_id"`
	StatsQueryID      int64         `mapstructure:"stats_query_id"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// AirdropConfig holds the campaign-level import tuning knobs
type AirdropConfig struct {
	BatchSize         int64         `mapstructure:"batch_size"`         // rows per import batch
	WriteChunkSize    int           `mapstructure:"write_chunk_size"`   // allocation rows per pipelined write
	WriteConcurrency  int           `mapstructure:"write_concurrency"`  // concurrent pipelined writes
	AllocationTTL     time.Duration `mapstructure:"allocation_ttl"`     // retention of per-address records
	ImportStuckAfter  time.Duration `mapstructure:"import_stuck_after"` // unfinished imports older than this are restarted
	StatsPollInterval time.Duration `mapstructure:"stats_poll_interval"`
	StatsPollRetries  int           `mapstructure:"stats_poll_retries"`
	MaxAllocation     float64       `mapstructure:"max_allocation"`     // campaign reward cap
	ForceSingleBatch  bool          `mapstructure:"force_single_batch"` // development override
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration for internal endpoints
type AuthConfig struct {
	APIKeys []string `mapstructure:"api_keys"`
}

// APIConfig holds configuration for the allocation API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Redis      RedisConfig     `mapstructure:"redis"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Analytics  AnalyticsConfig `mapstructure:"analytics"`
	Airdrop    AirdropConfig   `mapstructure:"airdrop"`
	Auth       AuthConfig      `mapstructure:"auth"`
}

// RefresherConfig holds configuration for the refresh scheduler
type RefresherConfig struct {
	BaseConfig `mapstructure:",squash"`
	Redis      RedisConfig     `mapstructure:"redis"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Analytics  AnalyticsConfig `mapstructure:"analytics"`
	Airdrop    AirdropConfig   `mapstructure:"airdrop"`
	Interval   time.Duration   `mapstructure:"interval"`
}

// ImporterConfig holds configuration for the import worker
type ImporterConfig struct {
	BaseConfig `mapstructure:",squash"`
	Redis      RedisConfig     `mapstructure:"redis"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Analytics  AnalyticsConfig `mapstructure:"analytics"`
	Airdrop    AirdropConfig   `mapstructure:"airdrop"`
}

// LoadAPIConfig loads configuration for the allocation API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	setSharedDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadRefresherConfig loads configuration for the refresh scheduler
func LoadRefresherConfig(configFile string, envPath string) (*RefresherConfig, error) {
	v := configureViper("refresher", configFile, envPath)

	// Set defaults
	v.SetDefault("interval", "5m")
	setSharedDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config RefresherConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Analytics.AllocationQueryID == 0 {
		return nil, errors.New("analytics.allocation_query_id is required")
	}
	if config.Analytics.StatsQueryID == 0 {
		return nil, errors.New("analytics.stats_query_id is required")
	}

	return &config, nil
}

// LoadImporterConfig loads configuration for the import worker
func LoadImporterConfig(configFile string, envPath string) (*ImporterConfig, error) {
	v := configureViper("importer", configFile, envPath)

	setSharedDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config ImporterConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// setSharedDefaults sets the defaults common to all three services
func setSharedDefaults(v *viper.Viper) {
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.stream_name", "AIRDROP_IMPORTS")
	v.SetDefault("nats.consumer_name", "importer")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.ack_wait", "5m")
	v.SetDefault("nats.max_deliver", 5)
	v.SetDefault("analytics.api_url", "https://api.dune.com/api")
	v.SetDefault("analytics.timeout", "60s")
	v.SetDefault("airdrop.batch_size", 10000)
	v.SetDefault("airdrop.write_chunk_size", 1000)
	v.SetDefault("airdrop.write_concurrency", 8)
	v.SetDefault("airdrop.allocation_ttl", "72h")
	v.SetDefault("airdrop.import_stuck_after", "30m")
	v.SetDefault("airdrop.stats_poll_interval", "1s")
	v.SetDefault("airdrop.stats_poll_retries", 5)
	v.SetDefault("airdrop.force_single_batch", false)
}

// readConfig reads the config file, tolerating a missing file so services can
// run on environment variables alone
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("AIRDROP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// This is required for viper to map env vars to config struct fields when no
// config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"interval",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		// Analytics
		"analytics.api_url",
		"analytics.api_key",
		"analytics.allocation_query_id",
		"analytics.stats_query_id",
		"analytics.timeout",
		// Airdrop
		"airdrop.batch_size",
		"airdrop.write_chunk_size",
		"airdrop.write_concurrency",
		"airdrop.allocation_ttl",
		"airdrop.import_stuck_after",
		"airdrop.stats_poll_interval",
		"airdrop.stats_poll_retries",
		"airdrop.max_allocation",
		"airdrop.force_single_batch",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.api_keys",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Shared base first, then local, then optional per-service local
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}
