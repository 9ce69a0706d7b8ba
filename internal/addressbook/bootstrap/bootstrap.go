// Package bootstrap собирает зависимости адресной книги из конфигурации.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"addressbook/internal/addressbook/adapters/backup"
	"addressbook/internal/addressbook/adapters/csvfile"
	"addressbook/internal/addressbook/adapters/postgres"
	"addressbook/internal/addressbook/adapters/services"
	"addressbook/internal/addressbook/app"
	"addressbook/internal/addressbook/config"
	"addressbook/internal/addressbook/db"
	"addressbook/internal/addressbook/ports/api"
	svc "addressbook/internal/addressbook/ports/services"
	"addressbook/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogInitRepositories = "initializing repositories"
	LogInitServices     = "initializing services"
	LogInitS3           = "initializing S3 uploader"
	LogAdminCreated     = "bootstrap admin account created"
	LogSamplesSeeded    = "sample contacts inserted"
)

// Константы для сообщений об ошибках.
const (
	ErrInitDatabase = "failed to initialize database"
	ErrInitS3       = "failed to create S3 client"
	ErrEnsureAdmin  = "failed to create bootstrap admin"
	ErrSeedSamples  = "failed to seed sample contacts"
)

// Components - собранные сценарии и ресурсы процесса.
type Components struct {
	DB       *db.DB
	Repos    *postgres.RepositoryFactory
	Services *services.ServiceFactory
	Contacts api.ContactUseCase
	Transfer api.TransferUseCase
	Backup   api.BackupUseCase
}

// New открывает базу и строит сценарии контактов, переноса и резервного копирования.
func New(ctx context.Context, cfg *config.Config) (*Components, error) {
	log := logger.Log(ctx)

	database, err := db.New(ctx, &cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrInitDatabase, err)
	}

	log.Info(ctx, LogInitRepositories)
	repos := postgres.NewRepositoryFactory(database.Pool())

	log.Info(ctx, LogInitServices)
	serviceFactory := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.GetAccessTokenTTL(), cfg.JWT.BCryptCost)

	uploader, err := newUploader(ctx, &cfg.S3)
	if err != nil {
		database.Close(ctx)
		return nil, err
	}

	codec := csvfile.NewCodec(time.Local)
	dumper := backup.NewPgDump(backup.PgDumpOptions{
		Command:  cfg.Backup.Command,
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Database: cfg.Postgres.Database,
		Timeout:  cfg.Backup.Timeout,
	})

	contactRepo := repos.ContactRepository()

	return &Components{
		DB:       database,
		Repos:    repos,
		Services: serviceFactory,
		Contacts: app.NewContactUseCase(contactRepo),
		Transfer: app.NewTransferUseCase(contactRepo, codec, codec),
		Backup:   app.NewBackupUseCase(dumper, uploader, cfg.Backup.Dir),
	}, nil
}

// Auth строит сценарий входа. sessions может быть nil.
func (c *Components) Auth(sessions svc.SessionStore) api.AuthUseCase {
	return app.NewAuthUseCase(
		c.Repos.UserRepository(),
		c.Services.PasswordService(),
		c.Services.TokenService(),
		sessions,
	)
}

// Seed заводит администратора в пустой таблице пользователей и, если включено,
// добавляет примеры контактов в пустую книгу.
func (c *Components) Seed(ctx context.Context, auth api.AuthUseCase, cfg *config.BootstrapConfig) error {
	log := logger.Log(ctx)

	created, err := auth.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrEnsureAdmin, err)
	}
	if created {
		log.Info(ctx, LogAdminCreated, zap.String("username", cfg.AdminUsername))
	}

	if !cfg.SeedSamples {
		return nil
	}

	inserted, err := c.Contacts.SeedSamples(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrSeedSamples, err)
	}
	if inserted > 0 {
		log.Info(ctx, LogSamplesSeeded, zap.Int("count", inserted))
	}
	return nil
}

// Close освобождает пул соединений.
func (c *Components) Close(ctx context.Context) {
	c.DB.Close(ctx)
}

// newUploader возвращает nil-интерфейс, если S3 не настроен.
func newUploader(ctx context.Context, cfg *config.S3Config) (svc.Uploader, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	logger.Log(ctx).Info(ctx, LogInitS3, zap.String("bucket", cfg.Bucket), zap.String("endpoint", cfg.Endpoint))
	client, err := backup.NewS3Client(ctx, backup.S3Options{
		Region:    cfg.Region,
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrInitS3, err)
	}
	return backup.NewS3Uploader(client, cfg.Bucket, cfg.Prefix), nil
}
