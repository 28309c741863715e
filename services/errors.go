package services

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrInvalidAmount       = errors.New("amount must be a positive number")
	ErrInvalidCoin         = errors.New("unsupported coin")
	ErrInvalidStatus       = errors.New("unrecognized status value")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrDepositProcessed    = errors.New("deposit has already been processed")
	ErrEmptyMessage        = errors.New("message content (text or image) is required")
	ErrInvalidThreadType   = errors.New("unrecognized thread type")
	ErrNotThreadOwner      = errors.New("thread belongs to another user")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrInvalidCredentials  = errors.New("incorrect username or password")

	ErrUserNotFound      = errors.New("user not found")
	ErrCelebrityNotFound = errors.New("celebrity not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrDepositNotFound   = errors.New("deposit not found")
	ErrThreadNotFound    = errors.New("thread not found")
	ErrReferenceNotFound = errors.New("referenced booking or campaign not found")
)

// fail maps service errors onto HTTP statuses and a JSON error body.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInsufficientBalance),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidCoin),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrEmptyMessage),
		errors.Is(err, ErrInvalidThreadType),
		errors.Is(err, ErrUsernameTaken):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrDepositProcessed):
		status = fiber.StatusConflict
	case errors.Is(err, ErrNotThreadOwner):
		status = fiber.StatusForbidden
	case errors.Is(err, ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrCelebrityNotFound),
		errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrCampaignNotFound),
		errors.Is(err, ErrDepositNotFound),
		errors.Is(err, ErrThreadNotFound),
		errors.Is(err, ErrReferenceNotFound):
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
