package middleware

import (
	"github.com/gofiber/fiber/v3"

	"addressbook/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLength = 128

// NewRequestIDMiddleware берет X-Request-ID клиента или генерирует новый
// и кладет его в контекст запроса и в ответ.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		id := ctx.Get(HeaderRequestID)
		if len(id) > maxRequestIDLength {
			id = ""
		}

		requestCtx := logger.NewRequestIDContext(ctx.Context(), id)
		id, _ = logger.GetRequestID(requestCtx)

		ctx.Locals(LocalUserContext, requestCtx)
		ctx.Set(HeaderRequestID, id)

		return ctx.Next()
	}
}
