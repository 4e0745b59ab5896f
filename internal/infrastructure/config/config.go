package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
	AllowOrigins    []string      `env:"CORS_ALLOW_ORIGINS, default=*"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Upload UploadConfig
	Users  UsersConfig
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI, required"`
	Database string        `env:"MONGO_DB,  default=user_service"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Enabled  bool          `env:"REDIS_ENABLED, default=false"`
	Addr     string        `env:"REDIS_ADDR,    default=localhost:6379"`
	DB       int           `env:"REDIS_DB,      default=0"`
	PoolSize int           `env:"REDIS_POOL_SIZE, default=10"`
	CacheTTL time.Duration `env:"CACHE_TTL,     default=5m"`
}

type UploadConfig struct {
	Dir   string `env:"UPLOAD_DIR,    default=uploads"`
	MaxMB int    `env:"UPLOAD_MAX_MB, default=10"`
}

// UsersConfig toggles the optional write-time rules for users.
type UsersConfig struct {
	RequirePhoto bool `env:"USERS_REQUIRE_PHOTO, default=false"`
	UniqueEmail  bool `env:"USERS_UNIQUE_EMAIL,  default=false"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Upload.MaxMB < 0 {
		return nil, fmt.Errorf("load config: UPLOAD_MAX_MB must not be negative, got %d", cfg.Upload.MaxMB)
	}
	return &cfg, nil
}
