package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/piclink-games/piclink-backend/app/shared/observability"
)

// Config holds the application configuration.
type Config struct {
	Postgres      PostgresConfig       `yaml:"postgres"`
	Redis         RedisConfig          `yaml:"redis"`
	NATS          NATSConfig           `yaml:"nats"`
	HTTP          HTTPConfig           `yaml:"http"`
	Game          GameConfig           `yaml:"game"`
	Observability observability.Config `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// RedisConfig holds Redis configuration for the profile cache and the
// leaderboard ranked store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the API listener configuration.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// GameConfig holds tunable game-facing knobs. Scoring constants are not
// configurable; they live in the attempt domain package.
type GameConfig struct {
	ProfileCacheTTL time.Duration `yaml:"profile_cache_ttl"`
	DedupeTimeout   time.Duration `yaml:"dedupe_timeout"`
	PrefetchLimit   int           `yaml:"prefetch_limit"`
}

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables when the file is absent. Environment variables
// override file values either way.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Observability.Environment = v
	}

	cfg.applyDefaults()

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required (config file or DATABASE_URL)")
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = "piclink-backend"
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = "development"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.NATS.URL == "" {
		c.NATS.URL = "nats://localhost:4222"
	}
	if c.Game.ProfileCacheTTL == 0 {
		c.Game.ProfileCacheTTL = 5 * time.Minute
	}
	if c.Game.DedupeTimeout == 0 {
		c.Game.DedupeTimeout = 30 * time.Second
	}
	if c.Game.PrefetchLimit == 0 {
		c.Game.PrefetchLimit = 20
	}
}
