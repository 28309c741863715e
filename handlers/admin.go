package handlers

import (
	"celebrity-booking-system/middleware"
	"celebrity-booking-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App, admins *services.AdminService, userCtx fiber.Handler) {
	adminOnly := middleware.AdminOnly()
	app.Get("/api/admin/stats", userCtx, adminOnly, admins.GetStats)
	app.Get("/api/admin/users", userCtx, adminOnly, admins.GetUsers)
	app.Patch("/api/admin/users/:id", userCtx, adminOnly, admins.UpdateUser)
	app.Delete("/api/admin/users/:id", userCtx, adminOnly, admins.DeleteUser)
	app.Get("/api/admin/settings", userCtx, adminOnly, admins.GetSettings)
	app.Post("/api/admin/settings", userCtx, adminOnly, admins.UpdateSettings)
	app.Get("/api/admin/logs", userCtx, adminOnly, admins.GetLogs)
}
