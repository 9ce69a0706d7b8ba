// Package auth содержит HTTP обработчики входа и выхода.
package auth

import (
	"strings"

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
	LogHandlerLogin   = "auth handler: login"
	LogHandlerLogout  = "auth handler: logout"
	LogHandlerSession = "auth handler: session"

	ErrorMissingCredentials = "username and password are required"
	ErrorLoginFailed        = "login failed"
	ErrorLogoutFailed       = "logout failed"

	tokenType = "Bearer"
)

// Handler содержит HTTP обработчики для авторизации.
type Handler struct {
	authUseCase api.AuthUseCase
}

// NewHandler создает новый экземпляр обработчика авторизации.
func NewHandler(authUseCase api.AuthUseCase) *Handler {
	return &Handler{authUseCase: authUseCase}
}

// Login проверяет учетные данные и выдает токен доступа.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, httperr.MsgInvalidRequest, zap.Error(err))
		return httperr.BadRequest(ctx, httperr.MsgInvalidRequest)
	}

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return httperr.BadRequest(ctx, ErrorMissingCredentials)
	}

	token, err := h.authUseCase.Login(requestCtx, req.Username, req.Password)
	if err != nil {
		log.Warn(requestCtx, ErrorLoginFailed, zap.String("username", req.Username), zap.Error(err))
		return httperr.Handle(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.LoginResponse{
		AccessToken: token.Token,
		TokenType:   tokenType,
		ExpiresAt:   token.ExpiresAt,
	})
}

// Logout отзывает текущий токен.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogout)

	token, _ := ctx.Locals(middleware.LocalAccessToken).(string)

	if err := h.authUseCase.Logout(requestCtx, token); err != nil {
		log.Error(requestCtx, ErrorLogoutFailed, zap.Error(err))
		return httperr.Handle(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// Session возвращает сведения о текущей сессии.
func (h *Handler) Session(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerSession)

	session, ok := middleware.SessionFromContext(requestCtx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": httperr.MsgUnauthorized})
	}

	return ctx.JSON(dto.SessionResponse{
		UserID:    session.UserID,
		Username:  session.Username,
		ExpiresAt: session.ExpiresAt,
	})
}
