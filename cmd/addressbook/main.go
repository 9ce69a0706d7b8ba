package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	httpServer "addressbook/internal/addressbook/adapters/http"
	"addressbook/internal/addressbook/adapters/http/health"
	"addressbook/internal/addressbook/adapters/session"
	"addressbook/internal/addressbook/bootstrap"
	"addressbook/internal/addressbook/config"
	"addressbook/pkg/db/redis"
	"addressbook/pkg/logger"
	"addressbook/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "ADDRESSBOOK_LOGGER_MODE"
	EnvLoggerLevel = "ADDRESSBOOK_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitComponents       = "failed to initialize address book components"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrBootstrapData        = "failed to bootstrap initial data"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "address book service started"
	LogServiceShutdownDone = "address book service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitCache           = "initializing session store"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		components, err := bootstrap.New(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrInitComponents, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitCache)
		redisClient, err := redis.NewClient(ctx, cfg.Redis.ClientConfig())
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			components.Close(ctx)
			exitCode = 1
			return
		}

		authUseCase := components.Auth(session.NewRedisStore(redisClient.RawClient(), cfg.Redis.KeyPrefix))

		if err := components.Seed(ctx, authUseCase, &cfg.Bootstrap); err != nil {
			log.Error(ctx, ErrBootstrapData, zap.Error(err))
			_ = redisClient.Close(ctx)
			components.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitHTTPServer)
		app := httpServer.NewApp(httpServer.ServerOptions{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			BodyLimit:    cfg.HTTP.BodyLimit,
		})

		httpServer.SetupRouter(app, httpServer.Dependencies{
			Auth:     authUseCase,
			Contacts: components.Contacts,
			Transfer: components.Transfer,
			Backup:   components.Backup,
			Health: map[string]health.Pinger{
				"postgres": components.DB,
				"redis":    redisClient,
			},
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := app.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// HTTP сервер останавливается раньше хранилищ, которыми он пользуется.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				httpErr := app.ShutdownWithContext(ctx)
				redisErr := redisClient.Close(ctx)
				components.Close(ctx)
				return errors.Join(httpErr, redisErr)
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
