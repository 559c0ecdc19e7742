package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SecretKey and JWTAlgorithm are required; the process refuses to start
	// without them.
	SecretKey    string `env:"SECRET_KEY,    required"`
	JWTAlgorithm string `env:"JWT_ALGORITHM, required"`
	EmailSalt    string `env:"EMAIL_SALT,    required"`

	AccessTokenExpireMinutes int `env:"ACCESS_TOKEN_EXPIRE_MINUTES, default=30"`
	RefreshTokenExpireDays   int `env:"REFRESH_TOKEN_EXPIRE_DAYS,   default=7"`

	RateLimit RateLimitConfig
	Upload    UploadConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type RateLimitConfig struct {
	Window time.Duration `env:"RATE_LIMIT_WINDOW,  default=60s"`
	Max    int           `env:"RATE_LIMIT_MAX,     default=30"`
	// Backend selects the limiter store: "memory" (single instance) or
	// "redis" (shared across instances).
	Backend string `env:"RATE_LIMIT_BACKEND, default=memory"`
}

type UploadConfig struct {
	TmpDir   string `env:"UPLOAD_TMP_DIR,   default=./uploads/tmp"`
	MaxBytes int64  `env:"UPLOAD_MAX_BYTES, default=10485760"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=crackit360"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// AccessTokenTTL returns the configured access-token lifetime.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// RefreshTokenTTL returns the configured refresh-token lifetime.
func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenExpireDays) * 24 * time.Hour
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
