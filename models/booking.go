package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled,
		BookingStatusRejected, BookingStatusCompleted:
		return true
	}
	return false
}

// bookingTransitions is the forward-only status machine. Terminal states
// (cancelled, rejected, completed) have no outgoing edges.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled, BookingStatusRejected},
	BookingStatusConfirmed: {BookingStatusCancelled, BookingStatusRejected, BookingStatusCompleted},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Refundable reports whether funds are still held for a booking in this
// status. Only these states may trigger a refund when moving to cancelled or
// rejected, which is what makes the refund idempotent.
func (s BookingStatus) Refundable() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// Booking snapshots the celebrity price at creation time; later price changes
// never affect an existing booking.
type Booking struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	UserID      string          `json:"user_id" gorm:"not null;index"`
	CelebrityID string          `json:"celebrity_id" gorm:"not null;index"`
	PriceUsd    decimal.Decimal `json:"price_usd" gorm:"type:decimal(12,2);not null"`
	Status      BookingStatus   `json:"status" gorm:"default:'pending';index"`
	EventDate   *time.Time      `json:"event_date,omitempty"`
	EventDetails string         `json:"event_details" gorm:"type:text"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Celebrity Celebrity `json:"celebrity,omitempty" gorm:"foreignKey:CelebrityID"`
}
