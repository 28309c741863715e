package handlers

import (
	"celebrity-booking-system/middleware"
	"celebrity-booking-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupWalletRoutes(app *fiber.App, deposits *services.DepositService, wallet *services.WalletService, admins *services.AdminService, userCtx fiber.Handler) {
	// Public: deposit quotes need prices and the platform addresses.
	app.Get("/api/crypto/prices", deposits.GetPrices)
	app.Get("/api/settings/wallets", admins.GetWalletAddresses)

	app.Get("/api/deposits", userCtx, deposits.GetMyDeposits)
	app.Post("/api/deposits", userCtx, deposits.CreateDeposit)
	app.Get("/api/wallet/ledger", userCtx, wallet.GetMyLedger)

	adminOnly := middleware.AdminOnly()
	app.Get("/api/admin/deposits", userCtx, adminOnly, deposits.GetAllDeposits)
	app.Patch("/api/admin/deposits/:id", userCtx, adminOnly, deposits.UpdateDepositStatus)
}
