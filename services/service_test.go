package services

import (
	"testing"

	"celebrity-booking-system/models"
	"celebrity-booking-system/workers"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database alive for the whole test
	// and forces concurrent transactions to serialize, the way row locks do
	// against Postgres.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
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
	))
	return db
}

type testServices struct {
	Wallet        *WalletService
	Notifications *NotificationService
	Messages      *MessageService
	Bookings      *BookingService
	Campaigns     *CampaignService
	Deposits      *DepositService
	Prices        *workers.PriceFeed
}

func newTestServices(db *gorm.DB) *testServices {
	prices := workers.NewPriceFeed()
	wallet := NewWalletService(db)
	notifications := NewNotificationService(db)
	messages := NewMessageService(db, notifications)
	return &testServices{
		Wallet:        wallet,
		Notifications: notifications,
		Messages:      messages,
		Bookings:      NewBookingService(db, wallet, notifications, messages),
		Campaigns:     NewCampaignService(db, notifications, messages),
		Deposits:      NewDepositService(db, wallet, notifications, prices),
		Prices:        prices,
	}
}

func seedUser(t *testing.T, db *gorm.DB, balance string) *models.User {
	t.Helper()
	user := &models.User{
		ID:         uuid.NewString(),
		Username:   "user-" + uuid.NewString()[:8],
		Password:   "irrelevant",
		Role:       models.RoleUser,
		Status:     models.UserStatusActive,
		BalanceUsd: mustDecimal(t, balance),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCelebrity(t *testing.T, db *gorm.DB, name, price string) *models.Celebrity {
	t.Helper()
	celebrity := &models.Celebrity{
		ID:       uuid.NewString(),
		Name:     name,
		Slug:     "slug-" + uuid.NewString()[:8],
		Category: "Music",
		PriceUsd: mustDecimal(t, price),
		Status:   models.CelebrityStatusActive,
	}
	require.NoError(t, db.Create(celebrity).Error)
	return celebrity
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func requireBalance(t *testing.T, db *gorm.DB, userID, want string) {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	require.True(t, user.BalanceUsd.Equal(mustDecimal(t, want)),
		"balance = %s, want %s", user.BalanceUsd, want)
}
