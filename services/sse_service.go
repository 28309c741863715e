package services

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"celebrity-booking-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EventStreamService is the best-effort push channel. Each authenticated
// client holds one SSE connection; the stream polls the database and emits
// `notification` and `new_message` events created after the connection
// opened. A dropped client simply stops receiving — the rows remain the
// durable record and are re-fetched on reconnect.
type EventStreamService struct {
	DB *gorm.DB
}

func NewEventStreamService(db *gorm.DB) *EventStreamService {
	return &EventStreamService{DB: db}
}

type newMessageEvent struct {
	ThreadKey string         `json:"thread_key"`
	Message   models.Message `json:"message"`
}

// StreamEvents serves the per-user SSE connection.
func (s *EventStreamService) StreamEvents(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // nginx

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		lastNotifAt := time.Now()
		lastMsgAt := lastNotifAt

		// Start the cursors from the newest existing rows so only events
		// created during this connection stream out.
		var latestNotif models.Notification
		if err := s.DB.Where("user_id = ?", userID).
			Order("created_at DESC").
			First(&latestNotif).Error; err == nil {
			lastNotifAt = latestNotif.CreatedAt
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[SSE] Init error for user %s: %v", userID, err)
		}

		var latestMsg models.Message
		if err := s.userMessages(userID).
			Order("created_at DESC").
			First(&latestMsg).Error; err == nil {
			lastMsgAt = latestMsg.CreatedAt
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[SSE] Init error for user %s: %v", userID, err)
		}

		// Initial keepalive comment.
		w.WriteString(":\n\n")
		w.Flush()

		for {
			select {
			case <-ticker.C:
				var notifications []models.Notification
				if err := s.DB.Where("user_id = ? AND created_at > ?", userID, lastNotifAt).
					Order("created_at ASC").
					Find(&notifications).Error; err != nil {
					log.Printf("[SSE] Notification query error for user %s: %v", userID, err)
					continue
				}
				for _, n := range notifications {
					payload, _ := json.Marshal(n)
					fmt.Fprintf(w, "event: notification\ndata: %s\n\n", payload)
					lastNotifAt = n.CreatedAt
				}

				var messages []models.Message
				if err := s.userMessages(userID).
					Where("messages.created_at > ?", lastMsgAt).
					Order("created_at ASC").
					Find(&messages).Error; err != nil {
					log.Printf("[SSE] Message query error for user %s: %v", userID, err)
					continue
				}
				for _, m := range messages {
					payload, _ := json.Marshal(newMessageEvent{ThreadKey: m.ThreadKey, Message: m})
					fmt.Fprintf(w, "event: new_message\ndata: %s\n\n", payload)
					lastMsgAt = m.CreatedAt
				}

				if err := w.Flush(); err != nil {
					// Client disconnected.
					return
				}

			case <-c.Context().Done():
				return
			}
		}
	})

	return nil
}

// userMessages scopes to agent replies inside the user's threads.
func (s *EventStreamService) userMessages(userID string) *gorm.DB {
	threadIDs := s.DB.Model(&models.Thread{}).Select("id").Where("user_id = ?", userID)
	return s.DB.Model(&models.Message{}).
		Where("sender = ? AND thread_id IN (?)", models.SenderAdmin, threadIDs)
}
