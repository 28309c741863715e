package handlers

import (
	"celebrity-booking-system/middleware"
	"celebrity-booking-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCelebrityRoutes(app *fiber.App, celebrities *services.CelebrityService, userCtx fiber.Handler) {
	// Public catalog
	app.Get("/api/celebrities", celebrities.GetAllCelebrities)
	app.Get("/api/celebrities/:id", celebrities.GetCelebrity)

	adminOnly := middleware.AdminOnly()
	app.Post("/api/celebrities", userCtx, adminOnly, celebrities.CreateCelebrity)
	app.Patch("/api/celebrities/:id", userCtx, adminOnly, celebrities.UpdateCelebrity)
	app.Delete("/api/celebrities/:id", userCtx, adminOnly, celebrities.DeleteCelebrity)
}
