package models

import "time"

// AdminLog records moderation actions (status changes, user edits) for audit.
type AdminLog struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	AdminID    string    `json:"admin_id" gorm:"not null;index"`
	Action     string    `json:"action" gorm:"not null"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id" gorm:"index"`
	Detail     string    `json:"detail" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}
