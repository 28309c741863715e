package services

import (
	"fmt"
	"log"
	"time"

	"celebrity-booking-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartLifecycleScheduler completes confirmed bookings once their event date
// has passed. Completed is terminal, so no refund can follow.
func (s *BookingService) StartLifecycleScheduler() {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("[Scheduler] Failed to create booking scheduler: %v", err)
		return
	}
	if _, err := sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() { s.completePastBookings(time.Now()) }),
	); err != nil {
		log.Printf("[Scheduler] Failed to schedule booking completion job: %v", err)
		return
	}
	sched.Start()
}

func (s *BookingService) completePastBookings(now time.Time) {
	var bookings []models.Booking
	err := s.DB.Where("status = ? AND event_date IS NOT NULL AND event_date <= ?",
		models.BookingStatusConfirmed, now).
		Find(&bookings).Error
	if err != nil {
		log.Printf("[Scheduler] DB error: %v", err)
		return
	}

	for _, b := range bookings {
		res := s.DB.Model(&models.Booking{}).
			Where("id = ? AND status = ?", b.ID, models.BookingStatusConfirmed).
			Update("status", models.BookingStatusCompleted)
		if res.Error != nil {
			log.Printf("[Scheduler] Failed to complete booking %s: %v", b.ID, res.Error)
			continue
		}
		if res.RowsAffected == 0 {
			continue
		}
		s.Notifications.Notify(b.UserID,
			"Booking Completed",
			"Your booking event date has passed and the booking is now completed.",
			models.NotificationTypeBooking)
		log.Printf("[Scheduler] Completed booking %s", b.ID)
	}
}

// depositExpiry is how long a pending deposit waits for funds before it is
// rejected automatically.
const depositExpiry = 7 * 24 * time.Hour

// StartExpiryScheduler rejects pending deposits that never received funds.
// No ledger movement: nothing was credited for a pending deposit.
func (s *DepositService) StartExpiryScheduler() {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("[Scheduler] Failed to create deposit scheduler: %v", err)
		return
	}
	if _, err := sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() { s.expireStaleDeposits(time.Now()) }),
	); err != nil {
		log.Printf("[Scheduler] Failed to schedule deposit expiry job: %v", err)
		return
	}
	sched.Start()
}

func (s *DepositService) expireStaleDeposits(now time.Time) {
	cutoff := now.Add(-depositExpiry)
	var deposits []models.Deposit
	err := s.DB.Where("status = ? AND created_at <= ?", models.DepositStatusPending, cutoff).
		Find(&deposits).Error
	if err != nil {
		log.Printf("[Scheduler] DB error: %v", err)
		return
	}

	for _, d := range deposits {
		res := s.DB.Model(&models.Deposit{}).
			Where("id = ? AND status = ?", d.ID, models.DepositStatusPending).
			Update("status", models.DepositStatusRejected)
		if res.Error != nil || res.RowsAffected == 0 {
			continue
		}
		s.Notifications.Notify(d.UserID,
			"Deposit Expired",
			fmt.Sprintf("Your deposit request of $%s was not received in time and has been rejected.", d.AmountUsd.StringFixed(2)),
			models.NotificationTypeDeposit)
		log.Printf("[Scheduler] Expired deposit %s", d.ID)
	}
}
