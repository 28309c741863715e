package models

import (
	"fmt"
	"time"
)

type ThreadType string

const (
	ThreadTypeBooking  ThreadType = "booking"
	ThreadTypeCampaign ThreadType = "campaign"
	// ThreadTypeSupport references a user directly (password resets and other
	// account requests that have no booking or campaign behind them).
	ThreadTypeSupport ThreadType = "support"
)

func (t ThreadType) Valid() bool {
	return t == ThreadTypeBooking || t == ThreadTypeCampaign || t == ThreadTypeSupport
}

type Sender string

const (
	SenderUser  Sender = "user"
	SenderAdmin Sender = "admin"
)

// ThreadKey builds the client-facing conversation key, e.g. "booking-<id>".
func ThreadKey(t ThreadType, referenceID string) string {
	return fmt.Sprintf("%s-%s", t, referenceID)
}

// Thread is a first-class conversation row. One thread per
// (type, reference_id) pair; Key keeps the legacy string form so the HTTP
// surface is unchanged.
type Thread struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	Key           string     `json:"key" gorm:"uniqueIndex;not null"`
	Type          ThreadType `json:"type" gorm:"not null;uniqueIndex:idx_threads_ref"`
	ReferenceID   string     `json:"reference_id" gorm:"not null;uniqueIndex:idx_threads_ref"`
	UserID        string     `json:"user_id" gorm:"not null;index"`
	CelebrityID   string     `json:"celebrity_id" gorm:"index"`
	LastMessageAt time.Time  `json:"last_message_at" gorm:"index"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`

	Messages []Message `json:"messages,omitempty" gorm:"foreignKey:ThreadID"`
}

// Message rows are append-only; a message carries text, an image URL, or both.
type Message struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	ThreadID     string    `json:"thread_id" gorm:"not null;index"`
	ThreadKey    string    `json:"thread_key" gorm:"index"`
	Sender       Sender    `json:"sender" gorm:"not null"`
	SenderUserID string    `json:"sender_user_id" gorm:"index"`
	Text         string    `json:"text" gorm:"type:text"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}
