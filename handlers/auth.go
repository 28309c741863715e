package handlers

import (
	"celebrity-booking-system/services"

	"github.com/gofiber/fiber/v2"
)

// Middleware is attached per route rather than as a Use on the shared /api
// prefix, so public routes registered by other Setup functions are never
// intercepted by the auth check.
func SetupAuthRoutes(app *fiber.App, auth *services.AuthService, userCtx fiber.Handler) {
	app.Post("/api/register", auth.Register)
	app.Post("/api/login", auth.Login)
	app.Post("/api/logout", auth.Logout)
	app.Post("/api/auth/forgot-password", auth.ForgotPassword)

	app.Get("/api/user", userCtx, auth.Me)
	app.Patch("/api/auth/profile", userCtx, auth.UpdateProfile)
}
