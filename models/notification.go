package models

import "time"

type NotificationType string

const (
	NotificationTypeBooking  NotificationType = "booking"
	NotificationTypeCampaign NotificationType = "campaign"
	NotificationTypeDeposit  NotificationType = "deposit"
	NotificationTypeWallet   NotificationType = "wallet"
	NotificationTypeMessage  NotificationType = "message"
)

// Notification rows are the durable record; SSE delivery is best-effort on
// top of them.
type Notification struct {
	ID        string           `json:"id" gorm:"primaryKey"`
	UserID    string           `json:"user_id" gorm:"not null;index"`
	Title     string           `json:"title" gorm:"not null"`
	Message   string           `json:"message" gorm:"type:text"`
	Type      NotificationType `json:"type" gorm:"not null"`
	IsRead    bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime;index"`
}
