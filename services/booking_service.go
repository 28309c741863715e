package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"celebrity-booking-system/models"
	"celebrity-booking-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingService struct {
	DB            *gorm.DB
	Wallet        *WalletService
	Notifications *NotificationService
	Messages      *MessageService
}

func NewBookingService(db *gorm.DB, wallet *WalletService, notifications *NotificationService, messages *MessageService) *BookingService {
	return &BookingService{DB: db, Wallet: wallet, Notifications: notifications, Messages: messages}
}

type CreateBookingInput struct {
	CelebrityID  string     `json:"celebrity_id" validate:"required"`
	EventDate    *time.Time `json:"event_date"`
	EventDetails string     `json:"event_details"`
}

// Create books a celebrity at their current price and debits the user's
// wallet. The balance check and debit run under a row lock on the user, so
// concurrent bookings against the same wallet serialize and at most the
// covered ones succeed. Balance change and booking row commit together or not
// at all.
func (s *BookingService) Create(userID string, in CreateBookingInput) (*models.Booking, error) {
	var celebrity models.Celebrity
	if err := s.DB.First(&celebrity, "id = ? AND status = ?", in.CelebrityID, models.CelebrityStatusActive).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCelebrityNotFound
		}
		return nil, err
	}

	booking := &models.Booking{
		ID:           uuid.NewString(),
		UserID:       userID,
		CelebrityID:  celebrity.ID,
		PriceUsd:     celebrity.PriceUsd,
		Status:       models.BookingStatusPending,
		EventDate:    in.EventDate,
		EventDetails: in.EventDetails,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if user.BalanceUsd.LessThan(booking.PriceUsd) {
			return ErrInsufficientBalance
		}
		if err := s.Wallet.Apply(tx, userID, booking.PriceUsd.Neg(), models.LedgerBookingDebit, booking.ID); err != nil {
			return err
		}
		return tx.Create(booking).Error
	})
	if err != nil {
		return nil, err
	}

	s.Notifications.Notify(userID,
		"Booking Request Sent",
		fmt.Sprintf("Your booking request for %s has been sent.", celebrity.Name),
		models.NotificationTypeBooking)

	if _, _, err := s.Messages.Append(AppendMessageInput{
		ThreadType:   models.ThreadTypeBooking,
		ReferenceID:  booking.ID,
		Sender:       models.SenderUser,
		SenderUserID: userID,
		Text:         "Booking Request Details: " + in.EventDetails,
	}); err != nil {
		log.Printf("[Booking] Failed to open thread for booking %s: %v", booking.ID, err)
	}

	return booking, nil
}

// UpdateStatus applies an admin status transition. Moving into cancelled or
// rejected while funds are still held (prior status pending/confirmed)
// refunds the snapshotted price exactly once: the transition itself is a
// compare-and-set on the prior status, so a repeated call cannot re-enter the
// refund branch.
func (s *BookingService) UpdateStatus(adminID, bookingID string, next models.BookingStatus) (*models.Booking, error) {
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	var booking models.Booking
	if err := s.DB.Preload("Celebrity").First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	prior := booking.Status
	if !prior.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	refund := (next == models.BookingStatusCancelled || next == models.BookingStatusRejected) &&
		prior.Refundable()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", bookingID, prior).
			Update("status", next)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Someone else moved the booking first.
			return ErrInvalidTransition
		}
		if refund {
			return s.Wallet.Apply(tx, booking.UserID, booking.PriceUsd, models.LedgerBookingRefund, booking.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	booking.Status = next

	if refund {
		s.Notifications.Notify(booking.UserID,
			"Booking Refunded",
			fmt.Sprintf("Your booking for %s was %s. %s has been refunded to your wallet.",
				booking.Celebrity.Name, next, utils.FormatUSD(booking.PriceUsd)),
			models.NotificationTypeWallet)
	}
	s.Notifications.Notify(booking.UserID,
		fmt.Sprintf("Booking %s", next),
		fmt.Sprintf("Your booking status has been updated to %s", next),
		models.NotificationTypeBooking)

	recordAdminAction(s.DB, adminID, "booking_status_change", "booking", booking.ID,
		fmt.Sprintf("%s -> %s", prior, next))

	return &booking, nil
}

func (s *BookingService) CreateBooking(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var in CreateBookingInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := utils.ValidateStruct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := s.Create(userID, in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}

func (s *BookingService) GetMyBookings(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var bookings []models.Booking
	if err := s.DB.Preload("Celebrity").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(bookings)
}

func (s *BookingService) GetAllBookings(c *fiber.Ctx) error {
	var bookings []models.Booking
	if err := s.DB.Preload("User").Preload("Celebrity").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(bookings)
}

type updateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

func (s *BookingService) UpdateBookingStatus(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)

	var in updateStatusInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := utils.ValidateStruct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := s.UpdateStatus(adminID, c.Params("id"), models.BookingStatus(in.Status))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(booking)
}
