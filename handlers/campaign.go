package handlers

import (
	"celebrity-booking-system/middleware"
	"celebrity-booking-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCampaignRoutes(app *fiber.App, campaigns *services.CampaignService, userCtx fiber.Handler) {
	app.Get("/api/campaigns", userCtx, campaigns.GetMyCampaigns)
	app.Post("/api/campaigns", userCtx, campaigns.CreateCampaign)

	adminOnly := middleware.AdminOnly()
	app.Get("/api/admin/campaigns", userCtx, adminOnly, campaigns.GetAllCampaigns)
	app.Patch("/api/admin/campaigns/:id", userCtx, adminOnly, campaigns.UpdateCampaign)
}
