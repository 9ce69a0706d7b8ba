// Package httperr переводит ошибки предметной области в HTTP ответы.
package httperr

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"addressbook/internal/addressbook/domain/entities"
	"addressbook/internal/addressbook/domain/services"
	"addressbook/internal/addressbook/domain/validation"
)

// Сообщения об ошибках в ответах.
const (
	MsgValidationFailed   = "validation failed"
	MsgInvalidRequest     = "invalid request body"
	MsgInvalidID          = "invalid contact id"
	MsgContactNotFound    = "contact not found"
	MsgDuplicateEmail     = "a contact with this email already exists"
	MsgInvalidCredentials = "invalid username or password"
	MsgUnauthorized       = "invalid or expired session"
	MsgInvalidCSV         = "invalid csv file"
	MsgBackupFailed       = "backup failed"
	MsgUploadFailed       = "backup created but upload failed"
	MsgUserExists         = "user already exists"
	MsgInternal           = "internal server error"
)

type mapping struct {
	target  error
	status  int
	message string
}

var mappings = []mapping{
	{entities.ErrInvalidID, fiber.StatusBadRequest, MsgInvalidID},
	{entities.ErrContactNotFound, fiber.StatusNotFound, MsgContactNotFound},
	{entities.ErrDuplicateEmail, fiber.StatusConflict, MsgDuplicateEmail},
	{entities.ErrUserAlreadyExists, fiber.StatusConflict, MsgUserExists},
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized, MsgInvalidCredentials},
	{services.ErrInvalidJWTToken, fiber.StatusUnauthorized, MsgUnauthorized},
	{services.ErrExpiredJWTToken, fiber.StatusUnauthorized, MsgUnauthorized},
	{services.ErrSessionRevoked, fiber.StatusUnauthorized, MsgUnauthorized},
	{services.ErrUnexpectedHead, fiber.StatusBadRequest, MsgInvalidCSV},
	{services.ErrMalformedCSV, fiber.StatusBadRequest, MsgInvalidCSV},
	{services.ErrDumpFailed, fiber.StatusInternalServerError, MsgBackupFailed},
	{services.ErrUploadFailed, fiber.StatusBadGateway, MsgUploadFailed},
}

// Status возвращает HTTP статус и сообщение для ошибки.
func Status(err error) (int, string) {
	var fieldErr *validation.FieldError
	if errors.As(err, &fieldErr) {
		return fiber.StatusBadRequest, MsgValidationFailed
	}

	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return m.status, m.message
		}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	return fiber.StatusInternalServerError, MsgInternal
}

// Handle пишет JSON ответ с ошибкой. Ошибки проверки полей дополняются
// именем поля и причиной.
func Handle(ctx fiber.Ctx, err error) error {
	status, message := Status(err)
	body := fiber.Map{"error": message}

	var fieldErr *validation.FieldError
	if errors.As(err, &fieldErr) {
		body["field"] = fieldErr.Field
		body["reason"] = fieldErr.Reason
	}

	return ctx.Status(status).JSON(body)
}

// BadRequest пишет ответ 400 с заданным сообщением.
func BadRequest(ctx fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}
