// Package health содержит проверку готовности сервиса.
package health

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"addressbook/internal/addressbook/adapters/http/middleware"
	"addressbook/pkg/logger"
)

// Pinger - зависимость, доступность которой проверяется.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler отвечает на проверки готовности.
type Handler struct {
	checks map[string]Pinger
}

// NewHandler создает обработчик с именованными проверками.
func NewHandler(checks map[string]Pinger) *Handler {
	return &Handler{checks: checks}
}

// Check опрашивает все зависимости; 503, если хотя бы одна недоступна.
func (h *Handler) Check(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	status := fiber.Map{}
	healthy := true
	for name, check := range h.checks {
		if err := check.Ping(requestCtx); err != nil {
			logger.Log(requestCtx).Warn(requestCtx, "health check failed",
				zap.String("dependency", name), zap.Error(err))
			status[name] = "unavailable"
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "checks": status})
	}
	return ctx.JSON(fiber.Map{"status": "ok", "checks": status})
}
