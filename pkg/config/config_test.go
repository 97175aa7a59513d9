package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "db.local")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.local", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.True(t, cfg.DB.Migrate)
	assert.True(t, cfg.Swagger)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_FlagsDesdeEnv(t *testing.T) {
	t.Setenv("DB_MIGRATE", "false")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.DB.Migrate)
	assert.False(t, cfg.Metrics)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.JWT.Enabled())
}

func TestLoad_PuertoInvalido(t *testing.T) {
	t.Setenv("HTTP_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "h", Port: 5433, User: "u", Password: "p@ss", DBName: "subs", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@h:5433/subs?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
