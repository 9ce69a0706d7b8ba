// Package http содержит компоненты для HTTP сервера адресной книги.
package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"addressbook/internal/addressbook/adapters/http/auth"
	"addressbook/internal/addressbook/adapters/http/backup"
	"addressbook/internal/addressbook/adapters/http/contacts"
	"addressbook/internal/addressbook/adapters/http/health"
	"addressbook/internal/addressbook/adapters/http/middleware"
	"addressbook/internal/addressbook/ports/api"
)

// Dependencies - сценарии и проверки, обслуживаемые HTTP сервером.
type Dependencies struct {
	Auth     api.AuthUseCase
	Contacts api.ContactUseCase
	Transfer api.TransferUseCase
	Backup   api.BackupUseCase
	Health   map[string]health.Pinger
}

// ServerOptions - параметры fiber.App.
type ServerOptions struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

// NewApp создает fiber.App с обработчиком ошибок в формате JSON.
func NewApp(opts ServerOptions) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "addressbook",
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		BodyLimit:    opts.BodyLimit,
		ErrorHandler: errorHandler,
	})
}

func errorHandler(ctx fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}
	return ctx.Status(code).JSON(fiber.Map{"error": message})
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	authHandler := auth.NewHandler(deps.Auth)
	contactsHandler := contacts.NewHandler(deps.Contacts, deps.Transfer)
	backupHandler := backup.NewHandler(deps.Backup)
	healthHandler := health.NewHandler(deps.Health)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/healthz", healthHandler.Check)

	// API версии 1.
	apiV1 := app.Group("/api/v1")
	requireAuth := middleware.NewAuthMiddleware(deps.Auth)

	authRoutes := apiV1.Group("/auth")
	authRoutes.Use("/logout", requireAuth)
	authRoutes.Use("/session", requireAuth)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/session", authHandler.Session)

	// Защищенные маршруты.
	contactRoutes := apiV1.Group("/contacts", requireAuth)
	contactRoutes.Get("/", contactsHandler.List)
	contactRoutes.Post("/", contactsHandler.Create)
	contactRoutes.Get("/export", contactsHandler.Export)
	contactRoutes.Post("/import", contactsHandler.Import)
	contactRoutes.Get("/:id", contactsHandler.Get)
	contactRoutes.Put("/:id", contactsHandler.Update)
	contactRoutes.Delete("/:id", contactsHandler.Delete)

	backupRoutes := apiV1.Group("/backups", requireAuth)
	backupRoutes.Post("/", backupHandler.Create)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
