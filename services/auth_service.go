package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"celebrity-booking-system/models"
	"celebrity-booking-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AuthService struct {
	DB       *gorm.DB
	Messages *MessageService
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(db *gorm.DB, messages *MessageService) *AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}
	return &AuthService{
		DB:       db,
		Messages: messages,
		secret:   secret,
		tokenTTL: 24 * time.Hour,
	}
}

type registerInput struct {
	Username  string `json:"username" validate:"required,min=3,max=64"`
	Password  string `json:"password" validate:"required,min=6"`
	Email     string `json:"email" validate:"omitempty,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Country   string `json:"country"`
}

func (s *AuthService) Register(c *fiber.Ctx) error {
	var in registerInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := utils.ValidateStruct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing models.User
	err := s.DB.First(&existing, "username = ?", in.Username).Error
	if err == nil {
		return fail(c, ErrUsernameTaken)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, err)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return fail(c, err)
	}

	user := models.User{
		ID:         uuid.NewString(),
		Username:   in.Username,
		Password:   hash,
		Email:      in.Email,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Phone:      in.Phone,
		Country:    in.Country,
		Role:       models.RoleUser,
		Status:     models.UserStatusActive,
		BalanceUsd: decimal.Zero,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return fail(c, err)
	}

	token, err := utils.GenerateToken(s.secret, user.ID, user.Role, s.tokenTTL)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user, "token": token})
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *AuthService) Login(c *fiber.Ctx) error {
	var in loginInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := utils.ValidateStruct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := s.DB.First(&user, "username = ?", in.Username).Error; err != nil {
		return fail(c, ErrInvalidCredentials)
	}
	if user.Status == models.UserStatusDeleted || !utils.CheckPassword(user.Password, in.Password) {
		return fail(c, ErrInvalidCredentials)
	}

	token, err := utils.GenerateToken(s.secret, user.ID, user.Role, s.tokenTTL)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"user": user, "token": token})
}

// Logout is stateless; the client discards its token.
func (s *AuthService) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}

func (s *AuthService) Me(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	return c.JSON(user)
}

type updateProfileInput struct {
	Email           *string `json:"email" validate:"omitempty,email"`
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	Phone           *string `json:"phone"`
	Country         *string `json:"country"`
	ProfileImageURL *string `json:"profile_image_url"`
}

func (s *AuthService) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var in updateProfileInput
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
	if in.ProfileImageURL != nil {
		updates["profile_image_url"] = *in.ProfileImageURL
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			return fail(c, err)
		}
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

type forgotPasswordInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// ForgotPassword files a support-thread request for an agent to handle. It
// always reports success so callers cannot probe which usernames exist; when
// the account is unknown there is nothing to attach the request to, so the
// no-op is only logged.
func (s *AuthService) ForgotPassword(c *fiber.Ctx) error {
	var in forgotPasswordInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := utils.ValidateStruct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	err := s.DB.First(&user, "username = ?", in.Username).Error
	switch {
	case err == nil:
		text := fmt.Sprintf(
			"[SYSTEM] Password reset request.\nUsername: %s\nEmail: %s\nPhone: %s\nPlease review and contact the user manually.",
			in.Username, in.Email, in.Phone)
		if _, _, err := s.Messages.Append(AppendMessageInput{
			ThreadType:   models.ThreadTypeSupport,
			ReferenceID:  user.ID,
			Sender:       models.SenderUser,
			SenderUserID: user.ID,
			Text:         text,
		}); err != nil {
			log.Printf("[Auth] Failed to file reset request for %s: %v", in.Username, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Printf("[Auth] Password reset requested for non-existent user: %s", in.Username)
	default:
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Request received. An agent will contact you."})
}
