package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addressbook/internal/addressbook/config"
	"addressbook/pkg/logger"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "addressbook", cfg.Postgres.Database)
	assert.Equal(t, "migrations/addressbook", cfg.Postgres.MigrationsDir)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.GetAddress())
	assert.Equal(t, "pg_dump", cfg.Backup.Command)
	assert.Equal(t, 2*time.Minute, cfg.Backup.Timeout)
	assert.False(t, cfg.S3.Enabled())
	assert.Equal(t, "admin", cfg.Bootstrap.AdminUsername)
	assert.Equal(t, 8*time.Hour, cfg.JWT.GetAccessTokenTTL())
	assert.Equal(t, 5*time.Second, cfg.Shutdown.GetTimeout())
	assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv("ADDRESSBOOK_POSTGRES_HOST", "db.internal")
	t.Setenv("ADDRESSBOOK_HTTP_PORT", "9090")
	t.Setenv("ADDRESSBOOK_LOGGER_MODE", "production")
	t.Setenv("ADDRESSBOOK_S3_BUCKET", "backups")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
	assert.True(t, cfg.S3.Enabled())
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv("ADDRESSBOOK_HTTP_PORT", "not-a-number")

	cfg, err := config.Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("postgres:\n  host: yaml-host\n  port: 6543\nbackup:\n  dir: /var/backups\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv(config.EnvConfigPath, path)

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "yaml-host", cfg.Postgres.Host)
	assert.Equal(t, 6543, cfg.Postgres.Port)
	assert.Equal(t, "/var/backups", cfg.Backup.Dir)
	assert.Equal(t, "addressbook", cfg.Postgres.Database, "unset keys keep defaults")
}

func TestPostgresConfig_URLs(t *testing.T) {
	p := config.PostgresConfig{
		Host: "h", Port: 5432, User: "u", Password: "p@ss", Database: "d", SSLMode: "disable",
	}

	assert.Equal(t, "host=h port=5432 user=u password=p@ss dbname=d sslmode=disable", p.GetDSN())
	assert.Equal(t, "postgres://u:p%40ss@h:5432/d?sslmode=disable", p.GetConnectionURL())
}

func TestJWTConfig_InvalidTTLFallsBack(t *testing.T) {
	c := config.JWTConfig{AccessTokenTTL: "soon"}
	assert.Equal(t, 8*time.Hour, c.GetAccessTokenTTL())
}

func TestLoadFrom_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: 7070\n"), 0o600))
	t.Setenv(config.EnvConfigPath, "")

	cfg, err := config.LoadFrom(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.HTTP.Port)
}
