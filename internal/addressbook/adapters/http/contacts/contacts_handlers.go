// Package contacts содержит HTTP обработчики для работы с контактами.
package contacts

import (
	"bytes"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"addressbook/internal/addressbook/adapters/http/dto"
	"addressbook/internal/addressbook/adapters/http/httperr"
	"addressbook/internal/addressbook/adapters/http/middleware"
	"addressbook/internal/addressbook/ports/api"
	"addressbook/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerCreate = "contacts handler: create"
	LogHandlerGet    = "contacts handler: get"
	LogHandlerList   = "contacts handler: list"
	LogHandlerUpdate = "contacts handler: update"
	LogHandlerDelete = "contacts handler: delete"
	LogHandlerExport = "contacts handler: export"
	LogHandlerImport = "contacts handler: import"

	ErrorCreateFailed = "failed to create contact"
	ErrorUpdateFailed = "failed to update contact"
	ErrorDeleteFailed = "failed to delete contact"
	ErrorExportFailed = "failed to export contacts"
	ErrorImportFailed = "failed to import contacts"
)

// ExportFileName - имя файла в заголовке Content-Disposition.
const ExportFileName = "contacts.csv"

// Handler содержит HTTP обработчики для контактов.
type Handler struct {
	contacts api.ContactUseCase
	transfer api.TransferUseCase
}

// NewHandler создает новый экземпляр обработчика контактов.
func NewHandler(contacts api.ContactUseCase, transfer api.TransferUseCase) *Handler {
	return &Handler{
		contacts: contacts,
		transfer: transfer,
	}
}

// List возвращает все контакты или результат поиска по параметру q.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	term := ctx.Query("q")
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerList, zap.String("term", term))

	return ctx.JSON(dto.FromContacts(h.contacts.Search(requestCtx, term)))
}

// Create создает новый контакт.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreate)

	var req dto.ContactRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, httperr.MsgInvalidRequest, zap.Error(err))
		return httperr.BadRequest(ctx, httperr.MsgInvalidRequest)
	}

	contact, err := h.contacts.Create(requestCtx, req.ToInput())
	if err != nil {
		log.Warn(requestCtx, ErrorCreateFailed, zap.Error(err))
		return httperr.Handle(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.FromContact(contact))
}

// Get возвращает контакт по идентификатору.
func (h *Handler) Get(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGet)

	id, ok := parseID(ctx)
	if !ok {
		return httperr.BadRequest(ctx, httperr.MsgInvalidID)
	}

	contact, err := h.contacts.Get(requestCtx, id)
	if err != nil {
		return httperr.Handle(ctx, err)
	}

	return ctx.JSON(dto.FromContact(contact))
}

// Update заменяет поля существующего контакта.
func (h *Handler) Update(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdate)

	id, ok := parseID(ctx)
	if !ok {
		return httperr.BadRequest(ctx, httperr.MsgInvalidID)
	}

	var req dto.ContactRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, httperr.MsgInvalidRequest, zap.Error(err))
		return httperr.BadRequest(ctx, httperr.MsgInvalidRequest)
	}

	contact, err := h.contacts.Update(requestCtx, id, req.ToInput())
	if err != nil {
		log.Warn(requestCtx, ErrorUpdateFailed, zap.Int64("id", id), zap.Error(err))
		return httperr.Handle(ctx, err)
	}

	return ctx.JSON(dto.FromContact(contact))
}

// Delete удаляет контакт.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDelete)

	id, ok := parseID(ctx)
	if !ok {
		return httperr.BadRequest(ctx, httperr.MsgInvalidID)
	}

	if err := h.contacts.Delete(requestCtx, id); err != nil {
		log.Warn(requestCtx, ErrorDeleteFailed, zap.Int64("id", id), zap.Error(err))
		return httperr.Handle(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// Export отдает все контакты в виде CSV файла.
func (h *Handler) Export(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerExport)

	var buf bytes.Buffer
	count, err := h.transfer.Export(requestCtx, &buf)
	if err != nil {
		log.Error(requestCtx, ErrorExportFailed, zap.Error(err))
		return httperr.Handle(ctx, err)
	}

	log.Info(requestCtx, "contacts exported", zap.Int("count", count))

	ctx.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+ExportFileName+`"`)
	return ctx.Send(buf.Bytes())
}

// Import загружает контакты из CSV файла в теле запроса.
func (h *Handler) Import(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerImport)

	result, err := h.transfer.Import(requestCtx, bytes.NewReader(ctx.Body()))
	if err != nil {
		log.Warn(requestCtx, ErrorImportFailed, zap.Error(err))
		return httperr.Handle(ctx, err)
	}

	return ctx.JSON(dto.FromImportResult(result))
}

func parseID(ctx fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
