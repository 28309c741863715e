package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CampaignStatus string

const (
	CampaignStatusPending     CampaignStatus = "pending"
	CampaignStatusNegotiating CampaignStatus = "negotiating"
	CampaignStatusApproved    CampaignStatus = "approved"
	CampaignStatusRejected    CampaignStatus = "rejected"
	CampaignStatusCancelled   CampaignStatus = "cancelled"
	CampaignStatusCompleted   CampaignStatus = "completed"
)

func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusPending, CampaignStatusNegotiating, CampaignStatusApproved,
		CampaignStatusRejected, CampaignStatusCancelled, CampaignStatusCompleted:
		return true
	}
	return false
}

var campaignTransitions = map[CampaignStatus][]CampaignStatus{
	CampaignStatusPending:     {CampaignStatusNegotiating, CampaignStatusApproved, CampaignStatusRejected, CampaignStatusCancelled},
	CampaignStatusNegotiating: {CampaignStatusApproved, CampaignStatusRejected, CampaignStatusCancelled},
	CampaignStatusApproved:    {CampaignStatusCompleted, CampaignStatusCancelled},
}

func (s CampaignStatus) CanTransitionTo(next CampaignStatus) bool {
	for _, t := range campaignTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Campaign holds no funds at creation; the price is negotiated afterwards via
// messaging and recorded by an admin as CustomPriceUsd (informational only,
// never deducted automatically).
type Campaign struct {
	ID             string              `json:"id" gorm:"primaryKey"`
	UserID         string              `json:"user_id" gorm:"not null;index"`
	CelebrityID    string              `json:"celebrity_id" gorm:"not null;index"`
	CampaignType   string              `json:"campaign_type" gorm:"not null"`
	Description    string              `json:"description" gorm:"type:text"`
	CustomPriceUsd decimal.NullDecimal `json:"custom_price_usd" gorm:"type:decimal(12,2)"`
	Status         CampaignStatus      `json:"status" gorm:"default:'pending';index"`
	CreatedAt      time.Time           `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time           `json:"updated_at" gorm:"autoUpdateTime"`

	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Celebrity Celebrity `json:"celebrity,omitempty" gorm:"foreignKey:CelebrityID"`
}
