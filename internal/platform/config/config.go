package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"conveymed-analytics/internal/analytics/core/domain"
)

type Config struct {
	ServiceEnvironment string `envconfig:"SERVICE_ENVIRONMENT" required:"true"`
	ServiceAPIPort     string `envconfig:"SERVICE_API_PORT" default:"8080"`
	ServiceHost        string `envconfig:"SERVICE_HOST" default:"localhost:8080"`
	LogLevel           string `envconfig:"LOG_LEVEL" default:""`

	PostgresDSN                string `envconfig:"POSTGRES_DSN" required:"true"`
	PostgresMaxOpenConns       int    `envconfig:"POSTGRES_MAX_OPEN_CONNS" default:"20"`
	PostgresMaxIdleConns       int    `envconfig:"POSTGRES_MAX_IDLE_CONNS" default:"10"`
	PostgresConnMaxLifetimeMin int    `envconfig:"POSTGRES_CONN_MAX_LIFETIME_MIN" default:"30"`

	// Redis is optional; without it export state is kept per process.
	RedisAddr     string `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	ExportLockTTLSec        int `envconfig:"EXPORT_LOCK_TTL_SEC" default:"120"`
	DashboardMaxConcurrency int `envconfig:"DASHBOARD_MAX_CONCURRENCY" default:"4"`
	QueryTimeoutSec         int `envconfig:"QUERY_TIMEOUT_SEC" default:"15"`

	JWTSecret      string `envconfig:"JWT_SECRET" default:""`
	TimeframesFile string `envconfig:"TIMEFRAMES_FILE" default:""`
}

// Load reads an optional .env file and then the environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) ConnMaxLifetime() time.Duration {
	return time.Duration(c.PostgresConnMaxLifetimeMin) * time.Minute
}

func (c *Config) ExportLockTTL() time.Duration {
	return time.Duration(c.ExportLockTTLSec) * time.Second
}

func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutSec) * time.Second
}

type timeframesFile struct {
	Timeframes domain.Timeframes `yaml:"timeframes"`
}

// Timeframes returns the preset list: the YAML file when configured,
// otherwise the built-in presets.
func (c *Config) Timeframes() (domain.Timeframes, error) {
	if c.TimeframesFile == "" {
		return domain.DefaultTimeframes(), nil
	}
	data, err := os.ReadFile(c.TimeframesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read timeframes: %w", err)
	}
	return ParseTimeframes(data)
}

func ParseTimeframes(data []byte) (domain.Timeframes, error) {
	var f timeframesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse timeframes: %w", err)
	}
	if err := validateTimeframes(f.Timeframes); err != nil {
		return nil, err
	}
	return f.Timeframes, nil
}

func validateTimeframes(tfs domain.Timeframes) error {
	if len(tfs) == 0 {
		return errors.New("timeframes: at least one preset is required")
	}
	seen := make(map[string]bool, len(tfs))
	for i, tf := range tfs {
		switch {
		case tf.Key == "":
			return fmt.Errorf("timeframes[%d]: key is required", i)
		case tf.Key == domain.CustomTimeframe:
			return fmt.Errorf("timeframes[%d]: %q is reserved", i, tf.Key)
		case tf.Days < 0:
			return fmt.Errorf("timeframes[%d]: days must not be negative", i)
		case seen[tf.Key]:
			return fmt.Errorf("timeframes[%d]: duplicate key %q", i, tf.Key)
		}
		seen[tf.Key] = true
	}
	if !seen[domain.DefaultTimeframe] {
		return fmt.Errorf("timeframes: default preset %q is missing", domain.DefaultTimeframe)
	}
	return nil
}
