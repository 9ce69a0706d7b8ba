package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"addressbook/internal/addressbook/ports/api"
	"addressbook/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorUnauthorized       = "invalid or expired session"
)

const bearerPrefix = "Bearer "

// NewAuthMiddleware проверяет токен Bearer и кладет сессию в контекст запроса.
func NewAuthMiddleware(authUseCase api.AuthUseCase) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": ErrorNoAuthHeader})
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": ErrorInvalidTokenFormat})
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))

		session, err := authUseCase.ValidateSession(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorUnauthorized, zap.Error(err))
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": ErrorUnauthorized})
		}

		ctx.Locals(LocalUserContext, WithSession(requestCtx, session))
		ctx.Locals(LocalAccessToken, token)

		return ctx.Next()
	}
}
