package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"addressbook/internal/addressbook/domain/services"
	"addressbook/internal/addressbook/ports/api"
	svc "addressbook/internal/addressbook/ports/services"
	"addressbook/pkg/logger"
)

const (
	methodBackup = "Backup"

	backupFilePrefix = "addressbook_backup_"
	backupFileExt    = ".sql"
	backupTimeLayout = "20060102_150405"
	backupDirPerm    = 0o750

	msgBackupStarted  = "starting database backup"
	msgBackupDone     = "database backup created"
	msgBackupUploaded = "database backup uploaded"

	msgErrCreateDir = "failed to create backup directory"
	msgErrDump      = "database dump failed"
	msgErrUpload    = "backup upload failed"

	errCtxCreatingBackupDir = "creating backup directory"
)

// BackupUseCaseImpl снимает дамп базы и, при наличии загрузчика, выгружает его.
type BackupUseCaseImpl struct {
	dumper   svc.Dumper
	uploader svc.Uploader
	dir      string
	now      func() time.Time
}

// NewBackupUseCase создает сценарий резервного копирования. uploader может быть nil.
func NewBackupUseCase(dumper svc.Dumper, uploader svc.Uploader, dir string) api.BackupUseCase {
	return &BackupUseCaseImpl{
		dumper:   dumper,
		uploader: uploader,
		dir:      dir,
		now:      time.Now,
	}
}

// Backup создает файл дампа с уникальным именем внутри каталога резервных копий.
func (b *BackupUseCaseImpl) Backup(ctx context.Context) (*services.BackupResult, error) {
	log := logger.Log(ctx).With(zap.String("method", methodBackup))

	if err := os.MkdirAll(b.dir, backupDirPerm); err != nil {
		log.Error(ctx, msgErrCreateDir, zap.Error(err), zap.String("dir", b.dir))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingBackupDir, err)
	}

	path := filepath.Join(b.dir, b.fileName())
	log = log.With(zap.String("file", path))
	log.Info(ctx, msgBackupStarted)

	if err := b.dumper.Dump(ctx, path); err != nil {
		log.Error(ctx, msgErrDump, zap.Error(err))
		return nil, fmt.Errorf("%w: %w", services.ErrDumpFailed, err)
	}

	result := &services.BackupResult{File: path}
	log.Info(ctx, msgBackupDone)

	if b.uploader == nil {
		return result, nil
	}

	key, err := b.uploader.Upload(ctx, path)
	if err != nil {
		log.Error(ctx, msgErrUpload, zap.Error(err))
		return result, fmt.Errorf("%w: %w", services.ErrUploadFailed, err)
	}
	result.ObjectKey = key

	log.Info(ctx, msgBackupUploaded, zap.String("key", key))
	return result, nil
}

func (b *BackupUseCaseImpl) fileName() string {
	suffix := uuid.NewString()[:8]
	return backupFilePrefix + b.now().UTC().Format(backupTimeLayout) + "_" + suffix + backupFileExt
}
