package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, EnvLocal, cfg.Env)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "mysql", cfg.DB.Driver)
	require.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	require.Equal(t, 7*24*time.Hour, cfg.JWT.RememberTTL)
	require.Equal(t, []string{"http://localhost:4200"}, cfg.CORS)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "http://a.example,http://b.example")
	t.Setenv("AUTH_RATE_BURST", "10")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, EnvDev, cfg.Env)
	require.Equal(t, "postgres", cfg.DB.Driver)
	require.Equal(t, "5432", cfg.DB.Port)
	require.Equal(t, 2*time.Hour, cfg.JWT.TTL)
	require.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS)
	require.Equal(t, 10, cfg.RateLimit.Burst)
}

func TestLoad_RejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)

	_, err := Load()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
}

func TestValidate_UnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	require.ErrorContains(t, err, "unsupported database driver")
}
