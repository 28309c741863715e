package handlers

import (
	"celebrity-booking-system/middleware"
	"celebrity-booking-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBookingRoutes(app *fiber.App, bookings *services.BookingService, userCtx fiber.Handler) {
	app.Get("/api/bookings", userCtx, bookings.GetMyBookings)
	app.Post("/api/bookings", userCtx, bookings.CreateBooking)

	adminOnly := middleware.AdminOnly()
	app.Get("/api/admin/bookings", userCtx, adminOnly, bookings.GetAllBookings)
	app.Patch("/api/admin/bookings/:id", userCtx, adminOnly, bookings.UpdateBookingStatus)
}
