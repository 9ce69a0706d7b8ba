// Package db открывает базу адресной книги, предварительно применив миграции.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"addressbook/internal/addressbook/config"
	"addressbook/pkg/db/postgres"
	"addressbook/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing address book database"
	LogDBInitialized     = "address book database initialized successfully"
	LogMigrationStarting = "starting address book database migrations"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply address book database migrations"
	ErrDBConnection = "failed to connect to address book database"
)

// DB представляет соединение с базой адресной книги.
type DB struct {
	database *postgres.Database
}

// New применяет миграции из cfg.MigrationsDir и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	sourceURL, err := postgres.SourceURL(cfg.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", sourceURL))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), sourceURL); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, postgres.Options{
		DSN:            cfg.GetDSN(),
		MinConns:       cfg.MinConn,
		MaxConns:       cfg.MaxConn,
		ConnectTimeout: cfg.ConnectTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
