package services

import (
	"log"
	"strings"

	"celebrity-booking-system/models"
	"celebrity-booking-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recordAdminAction appends to the moderation audit log. Best effort.
func recordAdminAction(db *gorm.DB, adminID, action, targetType, targetID, detail string) {
	entry := models.AdminLog{
		ID:         uuid.NewString(),
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Detail:     detail,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("[AdminLog] Failed to record %s on %s/%s: %v", action, targetType, targetID, err)
	}
}

type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

// GetStats serves the dashboard counters.
func (s *AdminService) GetStats(c *fiber.Ctx) error {
	var (
		totalUsers       int64
		totalCelebrities int64
		totalBookings    int64
		totalCampaigns   int64
		pendingBookings  int64
		pendingCampaigns int64
		pendingDeposits  int64
		totalRevenue     decimal.Decimal
	)

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&totalUsers, s.DB.Model(&models.User{})},
		{&totalCelebrities, s.DB.Model(&models.Celebrity{})},
		{&totalBookings, s.DB.Model(&models.Booking{})},
		{&totalCampaigns, s.DB.Model(&models.Campaign{})},
		{&pendingBookings, s.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusPending)},
		{&pendingCampaigns, s.DB.Model(&models.Campaign{}).Where("status = ?", models.CampaignStatusPending)},
		{&pendingDeposits, s.DB.Model(&models.Deposit{}).Where("status = ?", models.DepositStatusPending)},
	}
	for _, q := range counts {
		if err := q.query.Count(q.dest).Error; err != nil {
			return fail(c, err)
		}
	}

	if err := s.DB.Model(&models.Deposit{}).
		Where("status = ?", models.DepositStatusApproved).
		Select("COALESCE(SUM(amount_usd), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"total_users":       totalUsers,
		"total_celebrities": totalCelebrities,
		"total_bookings":    totalBookings,
		"total_campaigns":   totalCampaigns,
		"total_revenue":     totalRevenue,
		"pending_bookings":  pendingBookings,
		"pending_campaigns": pendingCampaigns,
		"pending_deposits":  pendingDeposits,
	})
}

func (s *AdminService) GetUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := s.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}

type adminUpdateUserInput struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Country   *string `json:"country"`
	Role      *string `json:"role"`
	Status    *string `json:"status"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
}

// UpdateUser applies admin edits, including role changes and password resets.
func (s *AdminService) UpdateUser(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)
	userID := c.Params("id")

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		return fail(c, ErrUserNotFound)
	}

	var in adminUpdateUserInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := utils.ValidateStruct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.FirstName != nil {
		updates["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		updates["last_name"] = *in.LastName
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Country != nil {
		updates["country"] = *in.Country
	}
	if in.Role != nil {
		role := models.Role(*in.Role)
		if !role.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unrecognized role"})
		}
		updates["role"] = role
	}
	if in.Status != nil {
		status := models.UserStatus(*in.Status)
		if status != models.UserStatusActive && status != models.UserStatusDeleted {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unrecognized status"})
		}
		updates["status"] = status
	}
	if in.Password != nil {
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return fail(c, err)
		}
		updates["password"] = hash
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&user).Updates(updates).Error; err != nil {
			return fail(c, err)
		}
	}

	recordAdminAction(s.DB, adminID, "user_update", "user", user.ID, "")

	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

// DeleteUser soft-deletes an account; rows referencing the user survive.
func (s *AdminService) DeleteUser(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)
	userID := c.Params("id")

	res := s.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("status", models.UserStatusDeleted)
	if res.Error != nil {
		return fail(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return fail(c, ErrUserNotFound)
	}

	recordAdminAction(s.DB, adminID, "user_delete", "user", userID, "")
	return c.JSON(fiber.Map{"success": true})
}

// GetWalletAddresses is the public read of the platform deposit addresses.
func (s *AdminService) GetWalletAddresses(c *fiber.Ctx) error {
	out := fiber.Map{}
	for _, coin := range models.AllCoins {
		var setting models.Setting
		value := ""
		if err := s.DB.First(&setting, "key = ?", models.WalletSettingKey(coin)).Error; err == nil {
			value = setting.Value
		}
		out[string(coin)] = value
	}
	return c.JSON(out)
}

type updateSettingsInput struct {
	BTCWallet  string `json:"BTC_WALLET"`
	ETHWallet  string `json:"ETH_WALLET"`
	USDTWallet string `json:"USDT_WALLET"`
}

func (s *AdminService) UpdateSettings(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)

	var in updateSettingsInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	pairs := map[string]string{
		models.WalletSettingKey(models.CoinBTC):  in.BTCWallet,
		models.WalletSettingKey(models.CoinETH):  in.ETHWallet,
		models.WalletSettingKey(models.CoinUSDT): in.USDTWallet,
	}
	for key, value := range pairs {
		if value == "" {
			continue
		}
		setting := models.Setting{Key: key, Value: value}
		if err := s.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&setting).Error; err != nil {
			return fail(c, err)
		}
	}

	recordAdminAction(s.DB, adminID, "settings_update", "settings", "", "")
	return c.JSON(fiber.Map{"success": true})
}

func (s *AdminService) GetSettings(c *fiber.Ctx) error {
	var settings []models.Setting
	if err := s.DB.Find(&settings).Error; err != nil {
		return fail(c, err)
	}
	out := fiber.Map{}
	for _, setting := range settings {
		out[strings.ToUpper(setting.Key)] = setting.Value
	}
	return c.JSON(out)
}

func (s *AdminService) GetLogs(c *fiber.Ctx) error {
	var logs []models.AdminLog
	if err := s.DB.Order("created_at DESC").Limit(100).Find(&logs).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(logs)
}
