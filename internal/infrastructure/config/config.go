package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=5000"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	CORSOrigins []string `env:"CORS_ORIGINS, default=http://localhost:3000,http://localhost:5173"`

	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=focus_tracker"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type RateLimitConfig struct {
	Window      time.Duration `env:"RATE_LIMIT_WINDOW,       default=15m"`
	GlobalLimit int64         `env:"RATE_LIMIT_GLOBAL_LIMIT, default=1000"`
	AuthLimit   int64         `env:"RATE_LIMIT_AUTH_LIMIT,   default=50"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether error responses must suppress causes.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
