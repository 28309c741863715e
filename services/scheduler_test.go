package services

import (
	"testing"
	"time"

	"celebrity-booking-system/models"

	"github.com/stretchr/testify/require"
)

func TestCompletePastBookings(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	user := seedUser(t, db, "1000")
	celebrity := seedCelebrity(t, db, "Ava Stone", "300")

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	pastBooking, err := svc.Bookings.Create(user.ID, CreateBookingInput{
		CelebrityID: celebrity.ID,
		EventDate:   &past,
	})
	require.NoError(t, err)
	_, err = svc.Bookings.UpdateStatus("admin-1", pastBooking.ID, models.BookingStatusConfirmed)
	require.NoError(t, err)

	futureBooking, err := svc.Bookings.Create(user.ID, CreateBookingInput{
		CelebrityID: celebrity.ID,
		EventDate:   &future,
	})
	require.NoError(t, err)
	_, err = svc.Bookings.UpdateStatus("admin-1", futureBooking.ID, models.BookingStatusConfirmed)
	require.NoError(t, err)

	svc.Bookings.completePastBookings(time.Now())

	var stored models.Booking
	require.NoError(t, db.First(&stored, "id = ?", pastBooking.ID).Error)
	require.Equal(t, models.BookingStatusCompleted, stored.Status)

	stored = models.Booking{}
	require.NoError(t, db.First(&stored, "id = ?", futureBooking.ID).Error)
	require.Equal(t, models.BookingStatusConfirmed, stored.Status)

	// Completion holds the funds; no refund entry may appear.
	var refunds int64
	require.NoError(t, db.Model(&models.LedgerEntry{}).
		Where("kind = ?", models.LedgerBookingRefund).
		Count(&refunds).Error)
	require.Zero(t, refunds)

	var notif models.Notification
	require.NoError(t, db.First(&notif, "user_id = ? AND title = ?", user.ID, "Booking Completed").Error)
}

func TestExpireStaleDeposits(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	user := seedUser(t, db, "0")

	stale, err := svc.Deposits.Create(user.ID, mustDecimal(t, "500"), models.CoinBTC)
	require.NoError(t, err)
	fresh, err := svc.Deposits.Create(user.ID, mustDecimal(t, "200"), models.CoinETH)
	require.NoError(t, err)

	// Backdate the first deposit past the expiry window.
	require.NoError(t, db.Model(&models.Deposit{}).
		Where("id = ?", stale.ID).
		Update("created_at", time.Now().Add(-depositExpiry-time.Hour)).Error)

	svc.Deposits.expireStaleDeposits(time.Now())

	var stored models.Deposit
	require.NoError(t, db.First(&stored, "id = ?", stale.ID).Error)
	require.Equal(t, models.DepositStatusRejected, stored.Status)

	stored = models.Deposit{}
	require.NoError(t, db.First(&stored, "id = ?", fresh.ID).Error)
	require.Equal(t, models.DepositStatusPending, stored.Status)

	// Nothing was ever credited, so nothing moves on expiry.
	requireBalance(t, db, user.ID, "0")

	// An expired deposit can no longer be approved.
	_, err = svc.Deposits.UpdateStatus("admin-1", stale.ID, models.DepositStatusApproved, "")
	require.ErrorIs(t, err, ErrDepositProcessed)
}
