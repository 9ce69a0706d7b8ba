// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"addressbook/internal/addressbook/domain/services"
)

// Ключи fiber.Locals.
const (
	LocalUserContext = "userContext"
	LocalAccessToken = "accessToken"
)

type sessionKeyType struct{}

var sessionKey = sessionKeyType{}

// RequestContext возвращает контекст запроса, подготовленный промежуточным ПО.
func RequestContext(ctx fiber.Ctx) context.Context {
	if userCtx, ok := ctx.Locals(LocalUserContext).(context.Context); ok {
		return userCtx
	}
	return ctx.Context()
}

// WithSession кладет проверенную сессию в контекст.
func WithSession(ctx context.Context, session *services.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromContext извлекает сессию, положенную NewAuthMiddleware.
func SessionFromContext(ctx context.Context) (*services.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*services.Session)
	return session, ok && session != nil
}
