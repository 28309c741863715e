package services

import (
	"errors"
	"fmt"

	"celebrity-booking-system/models"
	"celebrity-booking-system/utils"
	"celebrity-booking-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DepositService struct {
	DB            *gorm.DB
	Wallet        *WalletService
	Notifications *NotificationService
	Prices        *workers.PriceFeed
}

func NewDepositService(db *gorm.DB, wallet *WalletService, notifications *NotificationService, prices *workers.PriceFeed) *DepositService {
	return &DepositService{DB: db, Wallet: wallet, Notifications: notifications, Prices: prices}
}

// Create opens a pending funding request. Nothing is credited here; the
// balance only moves when an admin approves the deposit.
func (s *DepositService) Create(userID string, amountUsd decimal.Decimal, coin models.Coin) (*models.Deposit, error) {
	if !coin.Valid() {
		return nil, ErrInvalidCoin
	}
	if !amountUsd.IsPositive() {
		return nil, ErrInvalidAmount
	}

	price := s.Prices.Price(coin)
	cryptoAmount := amountUsd.DivRound(price, 8)

	address := "WALLET_ADDRESS_NOT_SET"
	var setting models.Setting
	if err := s.DB.First(&setting, "key = ?", models.WalletSettingKey(coin)).Error; err == nil && setting.Value != "" {
		address = setting.Value
	}

	deposit := &models.Deposit{
		ID:                   uuid.NewString(),
		UserID:               userID,
		AmountUsd:            amountUsd,
		Coin:                 coin,
		CryptoAmountExpected: cryptoAmount,
		WalletAddress:        address,
		Status:               models.DepositStatusPending,
	}
	if err := s.DB.Create(deposit).Error; err != nil {
		return nil, err
	}

	s.Notifications.Notify(userID,
		"Deposit Created",
		fmt.Sprintf("Your deposit request for %s is pending approval.", utils.FormatUSD(amountUsd)),
		models.NotificationTypeDeposit)

	return deposit, nil
}

// UpdateStatus resolves a pending deposit. Approval credits the wallet in the
// same transaction as the status flip; the flip is a compare-and-set on the
// pending state, so an already-resolved deposit can never be credited again —
// re-approving one is a conflict, not a silent no-op.
func (s *DepositService) UpdateStatus(adminID, depositID string, next models.DepositStatus, txHash string) (*models.Deposit, error) {
	if !next.Valid() || next == models.DepositStatusPending {
		return nil, ErrInvalidStatus
	}

	var deposit models.Deposit
	if err := s.DB.First(&deposit, "id = ?", depositID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepositNotFound
		}
		return nil, err
	}
	if deposit.Status != models.DepositStatusPending {
		return nil, ErrDepositProcessed
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": next}
		if txHash != "" {
			updates["tx_hash"] = txHash
		}
		res := tx.Model(&models.Deposit{}).
			Where("id = ? AND status = ?", depositID, models.DepositStatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrDepositProcessed
		}
		if next == models.DepositStatusApproved {
			return s.Wallet.Apply(tx, deposit.UserID, deposit.AmountUsd, models.LedgerDepositCredit, deposit.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	deposit.Status = next
	if txHash != "" {
		deposit.TxHash = txHash
	}

	s.Notifications.Notify(deposit.UserID,
		fmt.Sprintf("Deposit %s", next),
		fmt.Sprintf("Your deposit of %s has been %s", utils.FormatUSD(deposit.AmountUsd), next),
		models.NotificationTypeDeposit)

	recordAdminAction(s.DB, adminID, "deposit_status_change", "deposit", deposit.ID, string(next))

	return &deposit, nil
}

type createDepositInput struct {
	AmountUsd string `json:"amount_usd" validate:"required"`
	Coin      string `json:"coin" validate:"required"`
}

func (s *DepositService) CreateDeposit(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var in createDepositInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := utils.ValidateStruct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	amount, err := decimal.NewFromString(in.AmountUsd)
	if err != nil {
		return fail(c, ErrInvalidAmount)
	}

	deposit, err := s.Create(userID, amount, models.Coin(in.Coin))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(deposit)
}

func (s *DepositService) GetMyDeposits(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var deposits []models.Deposit
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&deposits).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(deposits)
}

func (s *DepositService) GetAllDeposits(c *fiber.Ctx) error {
	var deposits []models.Deposit
	if err := s.DB.Preload("User").
		Order("created_at DESC").
		Find(&deposits).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(deposits)
}

type updateDepositInput struct {
	Status string `json:"status" validate:"required"`
	TxHash string `json:"tx_hash"`
}

func (s *DepositService) UpdateDepositStatus(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)

	var in updateDepositInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := utils.ValidateStruct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	deposit, err := s.UpdateStatus(adminID, c.Params("id"), models.DepositStatus(in.Status), in.TxHash)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(deposit)
}

// GetPrices exposes the simulated coin prices used for deposit quotes.
func (s *DepositService) GetPrices(c *fiber.Ctx) error {
	return c.JSON(s.Prices.Snapshot())
}
