package services

import (
	"sync"
	"testing"

	"celebrity-booking-system/models"

	"github.com/stretchr/testify/require"
)

func TestCreateBookingDebitsWallet(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	user := seedUser(t, db, "500")
	celebrity := seedCelebrity(t, db, "Ava Stone", "300")

	booking, err := svc.Bookings.Create(user.ID, CreateBookingInput{
		CelebrityID:  celebrity.ID,
		EventDetails: "Birthday shout-out",
	})
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusPending, booking.Status)
	require.True(t, booking.PriceUsd.Equal(celebrity.PriceUsd))

	requireBalance(t, db, user.ID, "200")

	var entry models.LedgerEntry
	require.NoError(t, db.First(&entry, "user_id = ? AND kind = ?", user.ID, models.LedgerBookingDebit).Error)
	require.True(t, entry.Amount.Equal(mustDecimal(t, "-300")))
	require.Equal(t, booking.ID, entry.ReferenceID)

	// First contact opens the conversation thread for the booking.
	var thread models.Thread
	require.NoError(t, db.First(&thread, "key = ?", models.ThreadKey(models.ThreadTypeBooking, booking.ID)).Error)
	require.Equal(t, user.ID, thread.UserID)
}

func TestCreateBookingInsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	user := seedUser(t, db, "100")
	celebrity := seedCelebrity(t, db, "Ava Stone", "300")

	_, err := svc.Bookings.Create(user.ID, CreateBookingInput{CelebrityID: celebrity.ID})
	require.ErrorIs(t, err, ErrInsufficientBalance)

	requireBalance(t, db, user.ID, "100")

	var bookings int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&bookings).Error)
	require.Zero(t, bookings)

	var entries int64
	require.NoError(t, db.Model(&models.LedgerEntry{}).Count(&entries).Error)
	require.Zero(t, entries)
}

func TestCreateBookingDeletedCelebrity(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	user := seedUser(t, db, "500")
	celebrity := seedCelebrity(t, db, "Ava Stone", "300")
	require.NoError(t, db.Model(celebrity).Update("status", models.CelebrityStatusDeleted).Error)

	_, err := svc.Bookings.Create(user.ID, CreateBookingInput{CelebrityID: celebrity.ID})
	require.ErrorIs(t, err, ErrCelebrityNotFound)
}

func TestConcurrentBookingsSingleSuccess(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	user := seedUser(t, db, "500")
	celebrity := seedCelebrity(t, db, "Ava Stone", "300")

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Bookings.Create(user.ID, CreateBookingInput{CelebrityID: celebrity.ID})
		}(i)
	}
	wg.Wait()

	var succeeded, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case err == ErrInsufficientBalance:
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, insufficient)

	requireBalance(t, db, user.ID, "200")
}

func TestRejectBookingRefundsOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	user := seedUser(t, db, "500")
	celebrity := seedCelebrity(t, db, "Ava Stone", "300")

	booking, err := svc.Bookings.Create(user.ID, CreateBookingInput{CelebrityID: celebrity.ID})
	require.NoError(t, err)
	requireBalance(t, db, user.ID, "200")

	_, err = svc.Bookings.UpdateStatus("admin-1", booking.ID, models.BookingStatusRejected)
	require.NoError(t, err)
	requireBalance(t, db, user.ID, "500")

	var refund models.LedgerEntry
	require.NoError(t, db.First(&refund, "user_id = ? AND kind = ?", user.ID, models.LedgerBookingRefund).Error)
	require.True(t, refund.Amount.Equal(mustDecimal(t, "300")))

	// A repeated rejection must not credit the wallet again.
	_, err = svc.Bookings.UpdateStatus("admin-1", booking.ID, models.BookingStatusRejected)
	require.ErrorIs(t, err, ErrInvalidTransition)
	requireBalance(t, db, user.ID, "500")
}

func TestCancelConfirmedBookingRefunds(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	user := seedUser(t, db, "500")
	celebrity := seedCelebrity(t, db, "Ava Stone", "300")

	booking, err := svc.Bookings.Create(user.ID, CreateBookingInput{CelebrityID: celebrity.ID})
	require.NoError(t, err)

	_, err = svc.Bookings.UpdateStatus("admin-1", booking.ID, models.BookingStatusConfirmed)
	require.NoError(t, err)
	requireBalance(t, db, user.ID, "200")

	_, err = svc.Bookings.UpdateStatus("admin-1", booking.ID, models.BookingStatusCancelled)
	require.NoError(t, err)
	requireBalance(t, db, user.ID, "500")
}

func TestCompletedBookingNeverRefunds(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	user := seedUser(t, db, "500")
	celebrity := seedCelebrity(t, db, "Ava Stone", "300")

	booking, err := svc.Bookings.Create(user.ID, CreateBookingInput{CelebrityID: celebrity.ID})
	require.NoError(t, err)
	_, err = svc.Bookings.UpdateStatus("admin-1", booking.ID, models.BookingStatusConfirmed)
	require.NoError(t, err)
	_, err = svc.Bookings.UpdateStatus("admin-1", booking.ID, models.BookingStatusCompleted)
	require.NoError(t, err)

	requireBalance(t, db, user.ID, "200")

	// Completed is terminal.
	_, err = svc.Bookings.UpdateStatus("admin-1", booking.ID, models.BookingStatusCancelled)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateBookingStatusValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	user := seedUser(t, db, "500")
	celebrity := seedCelebrity(t, db, "Ava Stone", "300")

	booking, err := svc.Bookings.Create(user.ID, CreateBookingInput{CelebrityID: celebrity.ID})
	require.NoError(t, err)

	_, err = svc.Bookings.UpdateStatus("admin-1", booking.ID, models.BookingStatus("archived"))
	require.ErrorIs(t, err, ErrInvalidStatus)

	// Pending cannot jump straight to completed.
	_, err = svc.Bookings.UpdateStatus("admin-1", booking.ID, models.BookingStatusCompleted)
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Bookings.UpdateStatus("admin-1", "missing", models.BookingStatusConfirmed)
	require.ErrorIs(t, err, ErrBookingNotFound)
}
