package services

import (
	"log"

	"celebrity-booking-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// Notify writes a notification row. Fire-and-forget: a failure is logged and
// never blocks the state transition that triggered it.
func (s *NotificationService) Notify(userID, title, message string, typ models.NotificationType) {
	n := models.Notification{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
	}
	if err := s.DB.Create(&n).Error; err != nil {
		log.Printf("[Notify] Failed to create notification for user %s: %v", userID, err)
	}
}

func (s *NotificationService) GetMyNotifications(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var notifications []models.Notification
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(notifications)
}

func (s *NotificationService) MarkRead(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	id := c.Params("id")

	res := s.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return fail(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "notification not found"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (s *NotificationService) MarkAllRead(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
