package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"celebrity-booking-system/handlers"
	"celebrity-booking-system/middleware"
	"celebrity-booking-system/models"
	"celebrity-booking-system/services"
	"celebrity-booking-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, Cache-Control",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Celebrity{},
		&models.Booking{},
		&models.Campaign{},
		&models.Deposit{},
		&models.LedgerEntry{},
		&models.Thread{},
		&models.Message{},
		&models.Notification{},
		&models.Setting{},
		&models.AdminLog{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	priceFeed := workers.NewPriceFeed()

	walletService := services.NewWalletService(db)
	notificationService := services.NewNotificationService(db)
	messageService := services.NewMessageService(db, notificationService)
	bookingService := services.NewBookingService(db, walletService, notificationService, messageService)
	campaignService := services.NewCampaignService(db, notificationService, messageService)
	depositService := services.NewDepositService(db, walletService, notificationService, priceFeed)
	celebrityService := services.NewCelebrityService(db)
	authService := services.NewAuthService(db, messageService)
	adminService := services.NewAdminService(db)
	eventService := services.NewEventStreamService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go workers.PollPrices(ctx, priceFeed, 60*time.Second)

	bookingService.StartLifecycleScheduler()
	depositService.StartExpiryScheduler()

	userCtx := middleware.UserContext(db)

	handlers.SetupAuthRoutes(app, authService, userCtx)
	handlers.SetupCelebrityRoutes(app, celebrityService, userCtx)
	handlers.SetupBookingRoutes(app, bookingService, userCtx)
	handlers.SetupCampaignRoutes(app, campaignService, userCtx)
	handlers.SetupWalletRoutes(app, depositService, walletService, adminService, userCtx)
	handlers.SetupMessageRoutes(app, messageService, eventService, userCtx)
	handlers.SetupNotificationRoutes(app, notificationService, userCtx)
	handlers.SetupAdminRoutes(app, adminService, userCtx)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Price polling running (every 60s)")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
