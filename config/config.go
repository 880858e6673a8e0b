package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	Redis         RedisConfig         `yaml:"redis"`
	HTTP          HTTPConfig          `yaml:"http"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN             string        `yaml:"dsn" env:"DATABASE_URL"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DATABASE_CONN_MAX_LIFETIME"`
}

// RedisConfig holds the ranking cache settings. An empty URL disables the
// cache.
type RedisConfig struct {
	URL        string        `yaml:"url" env:"REDIS_URL"`
	RankingTTL time.Duration `yaml:"ranking_ttl" env:"RANKING_CACHE_TTL"`
}

// HTTPConfig holds the API server settings.
type HTTPConfig struct {
	Addr            string        `yaml:"addr" env:"HTTP_ADDR"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" env:"HTTP_RATE_LIMIT_RPS"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" env:"HTTP_RATE_LIMIT_BURST"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"HTTP_REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	ServiceName    string `yaml:"service_name" env:"SERVICE_NAME"`
	Environment    string `yaml:"environment" env:"ENV"`
	LogLevel       string `yaml:"log_level" env:"LOG_LEVEL"`
	MetricsAddress string `yaml:"metrics_address" env:"METRICS_ADDRESS"` // empty serves /metrics on the API listener
}

// Default returns the settings used when neither the file nor the
// environment provide a value.
func Default() Config {
	return Config{
		Postgres: PostgresConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			RankingTTL: 5 * time.Minute,
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			RateLimitRPS:    5,
			RateLimitBurst:  10,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Observability: ObservabilityConfig{
			ServiceName: "wwtrail",
			Environment: "development",
			LogLevel:    "info",
		},
	}
}

// LoadConfig loads the configuration. A .env file in the working directory
// is read first, then the YAML file (optional), then environment variables
// override both.
func LoadConfig(filename string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return load(filename)
}

func load(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.Postgres.DSN == "" {
		return nil, errors.New("postgres dsn not set (DATABASE_URL)")
	}
	return &cfg, nil
}
