package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type LedgerKind string

const (
	LedgerBookingDebit  LedgerKind = "booking_debit"
	LedgerBookingRefund LedgerKind = "booking_refund"
	LedgerDepositCredit LedgerKind = "deposit_credit"
)

// LedgerEntry is an append-only signed record written beside every balance
// mutation, in the same transaction. Invariant: for every user,
// sum(ledger_entries.amount) == users.balance_usd.
type LedgerEntry struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	UserID      string          `json:"user_id" gorm:"not null;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Kind        LedgerKind      `json:"kind" gorm:"not null"`
	ReferenceID string          `json:"reference_id" gorm:"index"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
}
