package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all process configuration, loaded once at startup. JWT_SECRET
// and MONGO_URI have no defaults: the service cannot serve traffic without
// them, so their absence fails the load.
type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`

	// AllowedOrigins is the CORS allow-list (comma-separated). CORSAllowAll
	// opts into accepting any origin and must be enabled explicitly.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS, default=http://localhost:5173,http://localhost:3000"`
	CORSAllowAll   bool     `env:"CORS_ALLOW_ALL,  default=false"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, required"`
	Database string `env:"MONGO_DB,  default=planejaula"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
