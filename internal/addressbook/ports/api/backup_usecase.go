package api

import (
	"context"

	"addressbook/internal/addressbook/domain/services"
)

// BackupUseCase определяет создание резервной копии базы.
type BackupUseCase interface {
	Backup(ctx context.Context) (*services.BackupResult, error)
}
