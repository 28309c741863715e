package services

import (
	"celebrity-booking-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalletService owns every balance mutation. Adjustments are expressed as
// relative SQL arithmetic so unrelated credits and debits can interleave, and
// each one writes an append-only ledger entry in the same transaction.
type WalletService struct {
	DB *gorm.DB
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{DB: db}
}

// Apply adjusts a user's balance by a signed amount and records the matching
// ledger entry. It must be called inside the caller's transaction; any
// threshold check (e.g. sufficient funds) is the caller's job, under its own
// row lock.
func (s *WalletService) Apply(tx *gorm.DB, userID string, amount decimal.Decimal, kind models.LedgerKind, referenceID string) error {
	res := tx.Model(&models.User{}).
		Where("id = ?", userID).
		Update("balance_usd", gorm.Expr("balance_usd + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}

	entry := models.LedgerEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      amount,
		Kind:        kind,
		ReferenceID: referenceID,
	}
	return tx.Create(&entry).Error
}

// LedgerSum totals a user's ledger entries. For a consistent wallet it always
// equals the user's balance column.
func (s *WalletService) LedgerSum(userID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := s.DB.Model(&models.LedgerEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// GetMyLedger returns the caller's balance plus their full ledger history.
func (s *WalletService) GetMyLedger(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		return fail(c, ErrUserNotFound)
	}

	var entries []models.LedgerEntry
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"balance_usd": user.BalanceUsd,
		"entries":     entries,
	})
}
