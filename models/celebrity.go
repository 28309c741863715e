package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CelebrityStatus string

const (
	CelebrityStatusActive  CelebrityStatus = "active"
	CelebrityStatusDeleted CelebrityStatus = "deleted"
)

// Celebrity is soft-deleted via Status, never hard-removed, so historical
// bookings keep a resolvable reference.
type Celebrity struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"not null"`
	Slug        string          `json:"slug" gorm:"uniqueIndex"`
	Category    string          `json:"category" gorm:"index"`
	Description string          `json:"description" gorm:"type:text"`
	PriceUsd    decimal.Decimal `json:"price_usd" gorm:"type:decimal(12,2);not null"`
	ImageURL    string          `json:"image_url"`
	Images      []string        `json:"images" gorm:"serializer:json"`
	Status      CelebrityStatus `json:"status" gorm:"default:'active';index"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}
