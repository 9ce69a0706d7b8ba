// Package backup содержит HTTP обработчик резервного копирования.
package backup

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"addressbook/internal/addressbook/adapters/http/dto"
	"addressbook/internal/addressbook/adapters/http/httperr"
	"addressbook/internal/addressbook/adapters/http/middleware"
	"addressbook/internal/addressbook/domain/services"
	"addressbook/internal/addressbook/ports/api"
	"addressbook/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerBackup  = "backup handler: create"
	ErrorBackupFailed = "backup failed"
)

// Handler содержит HTTP обработчик резервного копирования.
type Handler struct {
	backupUseCase api.BackupUseCase
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(backupUseCase api.BackupUseCase) *Handler {
	return &Handler{backupUseCase: backupUseCase}
}

// Create снимает дамп базы и возвращает имя файла.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerBackup)

	result, err := h.backupUseCase.Backup(requestCtx)
	if err != nil {
		log.Error(requestCtx, ErrorBackupFailed, zap.Error(err))
		if errors.Is(err, services.ErrUploadFailed) && result != nil {
			status, message := httperr.Status(err)
			return ctx.Status(status).JSON(fiber.Map{"error": message, "file": result.File})
		}
		return httperr.Handle(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.BackupResponse{
		File:      result.File,
		ObjectKey: result.ObjectKey,
	})
}
