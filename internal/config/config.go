// Package config loads service settings from defaults, an optional YAML file,
// a .env file and the environment, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/light-bringer/foxshop-service/internal/pkg/database"
	"github.com/light-bringer/foxshop-service/internal/pkg/logger"
)

// Storage drivers.
const (
	DriverSpanner  = "spanner"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the root configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     logger.Config `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// Mode is the gin mode: debug, release or test.
	Mode string `mapstructure:"mode"`
}

// StorageConfig selects and configures the product store.
type StorageConfig struct {
	Driver             string        `mapstructure:"driver"`
	SpannerDatabase    string        `mapstructure:"spanner_database"`
	DSN                string        `mapstructure:"dsn"`
	MaxOpenConns       int           `mapstructure:"max_open_conns"`
	MaxIdleConns       int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `mapstructure:"conn_max_lifetime"`
	SlowQueryThreshold time.Duration `mapstructure:"slow_query_threshold"`
	LogQueries         bool          `mapstructure:"log_queries"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// envBindings maps config keys to the short environment names used in
// deployment manifests. Every key also answers to its SECTION_FIELD form.
var envBindings = map[string][]string{
	"server.port":              {"HTTP_PORT"},
	"server.mode":              {"GIN_MODE"},
	"storage.driver":           {"STORAGE_DRIVER"},
	"storage.spanner_database": {"SPANNER_DATABASE"},
	"storage.dsn":              {"DATABASE_DSN"},
	"log.level":                {"LOG_LEVEL"},
	"log.format":               {"LOG_FORMAT"},
}

// Load reads .env if present, then CONFIG_FILE if set, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envBindings {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the selected driver has what it needs.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid HTTP port: %q", c.Server.Port)
	}

	switch c.Storage.Driver {
	case DriverSpanner:
		if c.Storage.SpannerDatabase == "" {
			return fmt.Errorf("spanner_database is required for %s driver", c.Storage.Driver)
		}
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("database DSN is required for %s driver", c.Storage.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver: %q", c.Storage.Driver)
	}

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("metrics namespace is required when metrics are enabled")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

// Database returns the gorm pool settings.
func (s StorageConfig) Database() database.Config {
	return database.Config{
		DSN:                s.DSN,
		MaxOpenConns:       s.MaxOpenConns,
		MaxIdleConns:       s.MaxIdleConns,
		ConnMaxLifetime:    s.ConnMaxLifetime,
		SlowQueryThreshold: s.SlowQueryThreshold,
		LogQueries:         s.LogQueries,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.mode", "release")

	// Local development runs against the emulator
	v.SetDefault("storage.driver", DriverSpanner)
	v.SetDefault("storage.spanner_database", "projects/test-project/instances/dev-instance/databases/product-catalog-db")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.max_open_conns", 25)
	v.SetDefault("storage.max_idle_conns", 5)
	v.SetDefault("storage.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("storage.slow_query_threshold", 200*time.Millisecond)
	v.SetDefault("storage.log_queries", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file_path", "logs/foxshop.log")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 10)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("log.with_caller", false)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "foxshop")
}
