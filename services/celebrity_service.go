package services

import (
	"errors"
	"fmt"

	"celebrity-booking-system/models"
	"celebrity-booking-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CelebrityService struct {
	DB *gorm.DB
}

func NewCelebrityService(db *gorm.DB) *CelebrityService {
	return &CelebrityService{DB: db}
}

// uniqueSlug derives a URL slug from the celebrity name, suffixing a short id
// when the name collides with an existing profile.
func (s *CelebrityService) uniqueSlug(name string) string {
	base := slug.Make(name)
	candidate := base
	for i := 0; i < 3; i++ {
		var count int64
		s.DB.Model(&models.Celebrity{}).Where("slug = ?", candidate).Count(&count)
		if count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%s", base, uuid.NewString()[:8])
	}
	return candidate
}

type createCelebrityInput struct {
	Name        string   `json:"name" validate:"required"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	PriceUsd    string   `json:"price_usd" validate:"required"`
	Images      []string `json:"images"`
}

func (s *CelebrityService) CreateCelebrity(c *fiber.Ctx) error {
	var in createCelebrityInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := utils.ValidateStruct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	price, err := decimal.NewFromString(in.PriceUsd)
	if err != nil || !price.IsPositive() {
		return fail(c, ErrInvalidAmount)
	}

	celebrity := models.Celebrity{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Slug:        s.uniqueSlug(in.Name),
		Category:    in.Category,
		Description: in.Description,
		PriceUsd:    price,
		Images:      in.Images,
		Status:      models.CelebrityStatusActive,
	}
	if len(in.Images) > 0 {
		celebrity.ImageURL = in.Images[0]
	}

	if err := s.DB.Create(&celebrity).Error; err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(celebrity)
}

type updateCelebrityInput struct {
	Name        *string   `json:"name"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	PriceUsd    *string   `json:"price_usd"`
	Images      *[]string `json:"images"`
}

func (s *CelebrityService) UpdateCelebrity(c *fiber.Ctx) error {
	var celebrity models.Celebrity
	if err := s.DB.First(&celebrity, "id = ?", c.Params("id")).Error; err != nil {
		return fail(c, ErrCelebrityNotFound)
	}

	var in updateCelebrityInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.PriceUsd != nil {
		price, err := decimal.NewFromString(*in.PriceUsd)
		if err != nil || !price.IsPositive() {
			return fail(c, ErrInvalidAmount)
		}
		// Existing bookings keep their snapshotted price.
		updates["price_usd"] = price
	}

	if err := s.DB.Model(&celebrity).Updates(updates).Error; err != nil {
		return fail(c, err)
	}
	if in.Images != nil {
		celebrity.Images = *in.Images
		if len(*in.Images) > 0 {
			celebrity.ImageURL = (*in.Images)[0]
		}
		if err := s.DB.Model(&celebrity).Select("images", "image_url").Updates(&celebrity).Error; err != nil {
			return fail(c, err)
		}
	}

	if err := s.DB.First(&celebrity, "id = ?", celebrity.ID).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(celebrity)
}

// DeleteCelebrity soft-deletes; historical bookings keep resolving.
func (s *CelebrityService) DeleteCelebrity(c *fiber.Ctx) error {
	res := s.DB.Model(&models.Celebrity{}).
		Where("id = ?", c.Params("id")).
		Update("status", models.CelebrityStatusDeleted)
	if res.Error != nil {
		return fail(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return fail(c, ErrCelebrityNotFound)
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetAllCelebrities lists the active catalog, newest first.
func (s *CelebrityService) GetAllCelebrities(c *fiber.Ctx) error {
	var celebrities []models.Celebrity
	if err := s.DB.Where("status = ?", models.CelebrityStatusActive).
		Order("created_at DESC").
		Find(&celebrities).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(celebrities)
}

// GetCelebrity resolves a profile by id or slug.
func (s *CelebrityService) GetCelebrity(c *fiber.Ctx) error {
	idOrSlug := c.Params("id")

	var celebrity models.Celebrity
	err := s.DB.First(&celebrity, "id = ? OR slug = ?", idOrSlug, idOrSlug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, ErrCelebrityNotFound)
		}
		return fail(c, err)
	}
	return c.JSON(celebrity)
}
