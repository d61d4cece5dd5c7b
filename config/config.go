package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	Tracing    TracingConfig
	Metrics    MetricsConfig

	// Infrastructure
	Postgres PostgresConfig
	Storage  StorageConfig
	JWT      JWTConfig

	// Negotiation core
	Negotiation NegotiationConfig
	Pagination  PaginationConfig
	Sweeper     SweeperConfig
	Catalog     CatalogConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// TracingConfig points the OTLP/HTTP exporter at a collector. An empty
// Endpoint disables export.
type TracingConfig struct {
	Endpoint    string
	Insecure    bool
	ServiceName string
	SampleRatio float64
}

// MetricsConfig controls the Prometheus endpoint. cmd/api serves it on the
// HTTP server, cmd/sweeper on Addr.
type MetricsConfig struct {
	Enabled bool
	Addr    string
}

type PostgresConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsPath  string
}

type StorageConfig struct {
	Driver string
}

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type NegotiationConfig struct {
	LockAcquireTimeout time.Duration
}

type PaginationConfig struct {
	DefaultPageSize int
	PublicPageSize  int
	MaxPageSize     int
}

type SweeperConfig struct {
	// Embedded runs the sweeper inside cmd/api.
	Embedded         bool
	Interval         time.Duration
	BatchSize        int
	BatchesPerSecond float64
}

type CatalogConfig struct {
	CacheSize int
	CacheTTL  time.Duration
	Breaker   BreakerConfig
}

type BreakerConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.ShutdownTimeout = viper.GetDuration("http_server.shutdown_timeout")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.Tracing.Endpoint = viper.GetString("tracing.endpoint")
	cfg.Tracing.Insecure = viper.GetBool("tracing.insecure")
	cfg.Tracing.ServiceName = viper.GetString("tracing.service_name")
	cfg.Tracing.SampleRatio = viper.GetFloat64("tracing.sample_ratio")

	cfg.Metrics.Enabled = viper.GetBool("metrics.enabled")
	cfg.Metrics.Addr = viper.GetString("metrics.addr")

	// Infrastructure
	cfg.Postgres.DSN = viper.GetString("postgres.dsn")
	if dsn := viper.GetString("database_url"); dsn != "" {
		cfg.Postgres.DSN = dsn
	}
	cfg.Postgres.MaxOpenConns = viper.GetInt("postgres.max_open_conns")
	cfg.Postgres.MaxIdleConns = viper.GetInt("postgres.max_idle_conns")
	cfg.Postgres.ConnMaxLifetime = viper.GetDuration("postgres.conn_max_lifetime")
	cfg.Postgres.MigrationsPath = viper.GetString("postgres.migrations_path")

	cfg.Storage.Driver = strings.ToLower(viper.GetString("storage.driver"))

	cfg.JWT.Secret = viper.GetString("jwt.secret")
	cfg.JWT.Issuer = viper.GetString("jwt.issuer")
	cfg.JWT.TTL = viper.GetDuration("jwt.ttl")

	// Negotiation core
	cfg.Negotiation.LockAcquireTimeout = viper.GetDuration("negotiation.lock_acquire_timeout")

	cfg.Pagination.DefaultPageSize = viper.GetInt("pagination.default_page_size")
	cfg.Pagination.PublicPageSize = viper.GetInt("pagination.public_page_size")
	cfg.Pagination.MaxPageSize = viper.GetInt("pagination.max_page_size")

	cfg.Sweeper.Embedded = viper.GetBool("sweeper.embedded")
	cfg.Sweeper.Interval = viper.GetDuration("sweeper.interval")
	cfg.Sweeper.BatchSize = viper.GetInt("sweeper.batch_size")
	cfg.Sweeper.BatchesPerSecond = viper.GetFloat64("sweeper.batches_per_second")

	cfg.Catalog.CacheSize = viper.GetInt("catalog.cache_size")
	cfg.Catalog.CacheTTL = viper.GetDuration("catalog.cache_ttl")
	cfg.Catalog.Breaker.MaxRequests = viper.GetUint32("catalog.breaker.max_requests")
	cfg.Catalog.Breaker.Interval = viper.GetDuration("catalog.breaker.interval")
	cfg.Catalog.Breaker.Timeout = viper.GetDuration("catalog.breaker.timeout")
	cfg.Catalog.Breaker.MinRequests = viper.GetUint32("catalog.breaker.min_requests")
	cfg.Catalog.Breaker.FailureRatio = viper.GetFloat64("catalog.breaker.failure_ratio")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	switch cfg.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if cfg.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn is required for storage driver %q", StoragePostgres)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if cfg.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	if cfg.Pagination.MaxPageSize < cfg.Pagination.DefaultPageSize {
		return fmt.Errorf("pagination.max_page_size must be at least pagination.default_page_size")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.shutdown_timeout", "10s")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("tracing.service_name", "casebem")
	viper.SetDefault("tracing.sample_ratio", 1.0)
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.addr", ":9091")

	viper.SetDefault("postgres.max_open_conns", 20)
	viper.SetDefault("postgres.max_idle_conns", 5)
	viper.SetDefault("postgres.conn_max_lifetime", "30m")
	viper.SetDefault("postgres.migrations_path", "migrations")
	viper.SetDefault("storage.driver", StoragePostgres)

	viper.SetDefault("jwt.issuer", "casebem")
	viper.SetDefault("jwt.ttl", "24h")

	viper.SetDefault("negotiation.lock_acquire_timeout", "5s")

	viper.SetDefault("pagination.default_page_size", 10)
	viper.SetDefault("pagination.public_page_size", 12)
	viper.SetDefault("pagination.max_page_size", 100)

	viper.SetDefault("sweeper.embedded", false)
	viper.SetDefault("sweeper.interval", "1m")
	viper.SetDefault("sweeper.batch_size", 100)
	viper.SetDefault("sweeper.batches_per_second", 5)

	viper.SetDefault("catalog.cache_size", 1000)
	viper.SetDefault("catalog.cache_ttl", "30s")
	viper.SetDefault("catalog.breaker.max_requests", 3)
	viper.SetDefault("catalog.breaker.interval", "5s")
	viper.SetDefault("catalog.breaker.timeout", "10s")
	viper.SetDefault("catalog.breaker.min_requests", 5)
	viper.SetDefault("catalog.breaker.failure_ratio", 0.6)
}
