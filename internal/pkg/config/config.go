package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	SessionBackendRedis  = "redis"
	SessionBackendCookie = "cookie"
)

type Config struct {
	Port      string `env:"PORT,       default=1337"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	PublicDir string `env:"PUBLIC_DIR"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	Secret  string        `env:"SESSION_SECRET,  default=mySecretKey"`
	Name    string        `env:"SESSION_NAME,    default=beerlist.sid"`
	Backend string        `env:"SESSION_BACKEND, default=redis"`
	TTL     time.Duration `env:"SESSION_TTL,     default=0s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=beers"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through the given lookuper and validates it.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}

	switch cfg.Session.Backend {
	case SessionBackendRedis, SessionBackendCookie:
	default:
		return nil, fmt.Errorf("SESSION_BACKEND: unknown backend %q", cfg.Session.Backend)
	}
	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET must not be empty")
	}
	if cfg.Session.TTL < 0 {
		return nil, fmt.Errorf("SESSION_TTL must not be negative")
	}

	return &cfg, nil
}

// IsDevelopment reports whether the process runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
