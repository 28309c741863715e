package handlers

import (
	"celebrity-booking-system/middleware"
	"celebrity-booking-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupMessageRoutes(app *fiber.App, messages *services.MessageService, events *services.EventStreamService, userCtx fiber.Handler) {
	app.Get("/api/messages", userCtx, messages.GetThreads)
	app.Get("/api/messages/:threadKey", userCtx, messages.GetThreadMessages)
	app.Post("/api/messages", userCtx, messages.SendMessage)
	app.Get("/api/events", userCtx, events.StreamEvents)

	app.Post("/api/admin/messages", userCtx, middleware.AdminOnly(), messages.SendAdminMessage)
}
