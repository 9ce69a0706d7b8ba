// Package config содержит конфигурацию сервиса адресной книги.
package config

import (
	"context"
	"os"

	"go.uber.org/zap"

	pkgconfig "addressbook/pkg/config"
	"addressbook/pkg/logger"
)

// ServiceName - имя сервиса в логах.
const ServiceName = "addressbook"

// EnvConfigPath задает путь к YAML-файлу конфигурации.
const EnvConfigPath = "ADDRESSBOOK_CONFIG_PATH"

// LogConfigLoaded - сообщение после загрузки конфигурации.
const LogConfigLoaded = "addressbook configuration loaded"

// Config представляет полную конфигурацию приложения.
type Config struct {
	Postgres  PostgresConfig  `yaml:"postgres"`
	HTTP      HTTPConfig      `yaml:"http"`
	Logging   LoggingConfig   `yaml:"logging"`
	Shutdown  ShutdownConfig  `yaml:"shutdown"`
	JWT       JWTConfig       `yaml:"jwt"`
	Redis     RedisConfig     `yaml:"redis"`
	Backup    BackupConfig    `yaml:"backup"`
	S3        S3Config        `yaml:"s3"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
}

// Load загружает конфигурацию из окружения или файла из ADDRESSBOOK_CONFIG_PATH.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, os.Getenv(EnvConfigPath))
}

// LoadFrom загружает конфигурацию из файла path; пустой path означает только окружение.
func LoadFrom(ctx context.Context, path string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, path)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("redis_address", cfg.Redis.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.String("backup_dir", cfg.Backup.Dir),
		zap.Bool("s3_enabled", cfg.S3.Enabled()),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}
