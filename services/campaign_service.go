package services

import (
	"errors"
	"fmt"
	"log"

	"celebrity-booking-system/models"
	"celebrity-booking-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CampaignService struct {
	DB            *gorm.DB
	Notifications *NotificationService
	Messages      *MessageService
}

func NewCampaignService(db *gorm.DB, notifications *NotificationService, messages *MessageService) *CampaignService {
	return &CampaignService{DB: db, Notifications: notifications, Messages: messages}
}

type CreateCampaignInput struct {
	CelebrityID  string `json:"celebrity_id" validate:"required"`
	CampaignType string `json:"campaign_type" validate:"required"`
	Description  string `json:"description"`
}

// Create opens an unpriced campaign request. No funds move; pricing happens
// later through negotiation.
func (s *CampaignService) Create(userID string, in CreateCampaignInput) (*models.Campaign, error) {
	var celebrity models.Celebrity
	if err := s.DB.First(&celebrity, "id = ? AND status = ?", in.CelebrityID, models.CelebrityStatusActive).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCelebrityNotFound
		}
		return nil, err
	}

	campaign := &models.Campaign{
		ID:           uuid.NewString(),
		UserID:       userID,
		CelebrityID:  celebrity.ID,
		CampaignType: in.CampaignType,
		Description:  in.Description,
		Status:       models.CampaignStatusPending,
	}
	if err := s.DB.Create(campaign).Error; err != nil {
		return nil, err
	}

	s.Notifications.Notify(userID,
		"Campaign Request Sent",
		fmt.Sprintf("Request sent to %s. An agent will contact you shortly.", celebrity.Name),
		models.NotificationTypeCampaign)

	if _, _, err := s.Messages.Append(AppendMessageInput{
		ThreadType:   models.ThreadTypeCampaign,
		ReferenceID:  campaign.ID,
		Sender:       models.SenderUser,
		SenderUserID: userID,
		Text:         fmt.Sprintf("New Campaign Request: %s. Details: %s", in.CampaignType, in.Description),
	}); err != nil {
		log.Printf("[Campaign] Failed to open thread for campaign %s: %v", campaign.ID, err)
	}

	return campaign, nil
}

type UpdateCampaignInput struct {
	Status         *string `json:"status"`
	CustomPriceUsd *string `json:"custom_price_usd"`
}

// Update applies an admin edit: a status transition, a negotiated price, or
// both. The price is informational only and is never deducted automatically.
func (s *CampaignService) Update(adminID, campaignID string, in UpdateCampaignInput) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := s.DB.First(&campaign, "id = ?", campaignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}

	var next models.CampaignStatus
	if in.Status != nil {
		next = models.CampaignStatus(*in.Status)
		if !next.Valid() {
			return nil, ErrInvalidStatus
		}
		if !campaign.Status.CanTransitionTo(next) {
			return nil, ErrInvalidTransition
		}
		updates["status"] = next
	}
	if in.CustomPriceUsd != nil {
		price, err := decimal.NewFromString(*in.CustomPriceUsd)
		if err != nil || !price.IsPositive() {
			return nil, ErrInvalidAmount
		}
		updates["custom_price_usd"] = price
	}
	if len(updates) == 0 {
		return &campaign, nil
	}

	if err := s.DB.Model(&campaign).Updates(updates).Error; err != nil {
		return nil, err
	}

	if in.Status != nil {
		s.Notifications.Notify(campaign.UserID,
			fmt.Sprintf("Campaign Request %s", next),
			fmt.Sprintf("Your campaign request status is now: %s", next),
			models.NotificationTypeCampaign)
	}

	recordAdminAction(s.DB, adminID, "campaign_update", "campaign", campaign.ID,
		fmt.Sprintf("status=%v price=%v", in.Status != nil, in.CustomPriceUsd != nil))

	return &campaign, nil
}

func (s *CampaignService) CreateCampaign(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var in CreateCampaignInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := utils.ValidateStruct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	campaign, err := s.Create(userID, in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(campaign)
}

func (s *CampaignService) GetMyCampaigns(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var campaigns []models.Campaign
	if err := s.DB.Preload("Celebrity").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&campaigns).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(campaigns)
}

func (s *CampaignService) GetAllCampaigns(c *fiber.Ctx) error {
	var campaigns []models.Campaign
	if err := s.DB.Preload("User").Preload("Celebrity").
		Order("created_at DESC").
		Find(&campaigns).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(campaigns)
}

func (s *CampaignService) UpdateCampaign(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)

	var in UpdateCampaignInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	campaign, err := s.Update(adminID, c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(campaign)
}
