package services

import (
	"testing"

	"celebrity-booking-system/models"

	"github.com/stretchr/testify/require"
)

// The ledger is the audit trail for the balance column: after any sequence of
// credits, debits and refunds, summing a user's entries must reproduce their
// balance exactly.
func TestLedgerSumMatchesBalance(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	user := seedUser(t, db, "0")
	celebrity := seedCelebrity(t, db, "Ava Stone", "300")

	deposit, err := svc.Deposits.Create(user.ID, mustDecimal(t, "1000"), models.CoinBTC)
	require.NoError(t, err)
	_, err = svc.Deposits.UpdateStatus("admin-1", deposit.ID, models.DepositStatusApproved, "")
	require.NoError(t, err)

	booking, err := svc.Bookings.Create(user.ID, CreateBookingInput{CelebrityID: celebrity.ID})
	require.NoError(t, err)

	_, err = svc.Bookings.Create(user.ID, CreateBookingInput{CelebrityID: celebrity.ID})
	require.NoError(t, err)

	_, err = svc.Bookings.UpdateStatus("admin-1", booking.ID, models.BookingStatusRejected)
	require.NoError(t, err)

	// 1000 credited, two 300 debits, one 300 refund.
	requireBalance(t, db, user.ID, "700")

	sum, err := svc.Wallet.LedgerSum(user.ID)
	require.NoError(t, err)
	require.True(t, sum.Equal(mustDecimal(t, "700")), "ledger sum = %s", sum)

	var entries []models.LedgerEntry
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&entries).Error)
	require.Len(t, entries, 4)

	kinds := map[models.LedgerKind]int{}
	for _, e := range entries {
		kinds[e.Kind]++
	}
	require.Equal(t, 1, kinds[models.LedgerDepositCredit])
	require.Equal(t, 2, kinds[models.LedgerBookingDebit])
	require.Equal(t, 1, kinds[models.LedgerBookingRefund])
}

func TestApplyUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)

	err := svc.Wallet.Apply(db, "missing", mustDecimal(t, "10"), models.LedgerDepositCredit, "ref")
	require.ErrorIs(t, err, ErrUserNotFound)

	var entries int64
	require.NoError(t, db.Model(&models.LedgerEntry{}).Count(&entries).Error)
	require.Zero(t, entries)
}
