// Package config загружает конфигурацию сервиса из окружения или YAML-файла.
package config

import (
	"context"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"addressbook/pkg/logger"
)

const (
	msgLoadingConfiguration = "loading configuration"
	msgConfigurationLoaded  = "configuration loaded successfully"

	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
	attrSource  = "source"

	sourceEnv  = "env"
	sourceFile = "file"
)

// Load заполняет T из файла path (переменные окружения перекрывают файл)
// или, при пустом path, только из окружения.
func Load[T any](ctx context.Context, serviceName, path string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))

	var (
		cfg T
		err error
	)

	if path != "" {
		log.Info(ctx, msgLoadingConfiguration, zap.String(attrSource, sourceFile), zap.String(attrPath, path))
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		log.Info(ctx, msgLoadingConfiguration, zap.String(attrSource, sourceEnv))
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, errFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}
