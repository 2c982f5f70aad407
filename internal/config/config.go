package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const defaultJWTSecret = "default-secret-key-change-me"

type Config struct {
	Env      string   `env:"APP_ENV" env-default:"local"`
	HTTPAddr string   `env:"HTTP_ADDR" env-default:":8080"`
	GinMode  string   `env:"GIN_MODE" env-default:"debug"`
	CORS     []string `env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:4200"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`

	DB        DBConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

type DBConfig struct {
	Driver   string `env:"DB_DRIVER" env-default:"mysql"`
	Host     string `env:"DB_HOST" env-default:"localhost"`
	Port     string `env:"DB_PORT" env-default:"3306"`
	User     string `env:"DB_USER" env-default:"taskuser"`
	Password string `env:"DB_PASSWORD" env-default:"taskpassword"`
	Name     string `env:"DB_NAME" env-default:"project_tracker"`
	SSLMode  string `env:"DB_SSL_MODE" env-default:"disable"`
}

type JWTConfig struct {
	Secret      string        `env:"JWT_SECRET" env-default:"default-secret-key-change-me"`
	Issuer      string        `env:"JWT_ISSUER" env-default:"project-tracker-api"`
	TTL         time.Duration `env:"JWT_TTL" env-default:"24h"`
	RememberTTL time.Duration `env:"JWT_REMEMBER_TTL" env-default:"168h"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `env:"AUTH_RATE_LIMIT" env-default:"2"`
	Burst             int     `env:"AUTH_RATE_BURST" env-default:"5"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings that are unsafe or that the app cannot run with.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env: %s", c.Env)
	}

	switch c.DB.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.DB.Driver)
	}

	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.Env == EnvProd && c.JWT.Secret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.JWT.TTL <= 0 || c.JWT.RememberTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}

	return nil
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProd
}
