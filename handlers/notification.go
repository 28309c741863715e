package handlers

import (
	"celebrity-booking-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App, notifications *services.NotificationService, userCtx fiber.Handler) {
	app.Get("/api/notifications", userCtx, notifications.GetMyNotifications)
	app.Patch("/api/notifications/read-all", userCtx, notifications.MarkAllRead)
	app.Patch("/api/notifications/:id/read", userCtx, notifications.MarkRead)
}
