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

	JWT   JWTConfig
	Admin AdminConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// JWTConfig carries the token signing settings. All four values are
// required; a missing one aborts startup.
type JWTConfig struct {
	Secret          string `env:"JWT_SECRET, required"`
	Issuer          string `env:"JWT_ISSUER, required"`
	AccessTTLHours  int    `env:"JWT_ACCESS_TTL_HOURS,  required"`
	RefreshTTLHours int    `env:"JWT_REFRESH_TTL_HOURS, required"`
}

func (j JWTConfig) AccessTTL() time.Duration {
	return time.Duration(j.AccessTTLHours) * time.Hour
}

func (j JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(j.RefreshTTLHours) * time.Hour
}

// AdminConfig describes the default admin account seeded at startup.
// Seeding is skipped when the password is empty.
type AdminConfig struct {
	Name     string `env:"ADMIN_NAME,  default=admin"`
	Email    string `env:"ADMIN_EMAIL, default=admin@randomknowledge.local"`
	Password string `env:"ADMIN_PASSWORD"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=random_knowledge"`
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
	if cfg.JWT.AccessTTLHours <= 0 || cfg.JWT.RefreshTTLHours <= 0 {
		return nil, fmt.Errorf("config: token TTLs must be positive")
	}
	return &cfg, nil
}
