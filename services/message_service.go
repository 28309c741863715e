package services

import (
	"errors"
	"log"
	"time"

	"celebrity-booking-system/models"
	"celebrity-booking-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageService struct {
	DB            *gorm.DB
	Notifications *NotificationService
}

func NewMessageService(db *gorm.DB, notifications *NotificationService) *MessageService {
	return &MessageService{DB: db, Notifications: notifications}
}

type AppendMessageInput struct {
	ThreadType   models.ThreadType
	ReferenceID  string
	Sender       models.Sender
	SenderUserID string
	Text         string
	ImageURL     string
}

// Append adds a message to the thread identified by (type, reference),
// creating the thread row on first contact. The reference must resolve to an
// existing booking, campaign or user; orphaned threads are rejected.
func (s *MessageService) Append(in AppendMessageInput) (*models.Message, *models.Thread, error) {
	if in.Text == "" && in.ImageURL == "" {
		return nil, nil, ErrEmptyMessage
	}
	if !in.ThreadType.Valid() {
		return nil, nil, ErrInvalidThreadType
	}

	thread, err := s.findOrCreateThread(in.ThreadType, in.ReferenceID)
	if err != nil {
		return nil, nil, err
	}

	msg := &models.Message{
		ID:           uuid.NewString(),
		ThreadID:     thread.ID,
		ThreadKey:    thread.Key,
		Sender:       in.Sender,
		SenderUserID: in.SenderUserID,
		Text:         in.Text,
		ImageURL:     in.ImageURL,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Thread{}).
			Where("id = ?", thread.ID).
			Update("last_message_at", time.Now()).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return msg, thread, nil
}

func (s *MessageService) findOrCreateThread(threadType models.ThreadType, referenceID string) (*models.Thread, error) {
	var thread models.Thread
	err := s.DB.First(&thread, "type = ? AND reference_id = ?", threadType, referenceID).Error
	if err == nil {
		return &thread, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var ownerID, celebrityID string
	switch threadType {
	case models.ThreadTypeBooking:
		var booking models.Booking
		if err := s.DB.First(&booking, "id = ?", referenceID).Error; err != nil {
			return nil, ErrReferenceNotFound
		}
		ownerID, celebrityID = booking.UserID, booking.CelebrityID
	case models.ThreadTypeCampaign:
		var campaign models.Campaign
		if err := s.DB.First(&campaign, "id = ?", referenceID).Error; err != nil {
			return nil, ErrReferenceNotFound
		}
		ownerID, celebrityID = campaign.UserID, campaign.CelebrityID
	case models.ThreadTypeSupport:
		var user models.User
		if err := s.DB.First(&user, "id = ?", referenceID).Error; err != nil {
			return nil, ErrReferenceNotFound
		}
		ownerID = user.ID
	}

	thread = models.Thread{
		ID:            uuid.NewString(),
		Key:           models.ThreadKey(threadType, referenceID),
		Type:          threadType,
		ReferenceID:   referenceID,
		UserID:        ownerID,
		CelebrityID:   celebrityID,
		LastMessageAt: time.Now(),
	}
	if err := s.DB.Create(&thread).Error; err != nil {
		// Lost a race on the (type, reference_id) unique index; use the winner.
		var existing models.Thread
		if ferr := s.DB.First(&existing, "type = ? AND reference_id = ?", threadType, referenceID).Error; ferr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &thread, nil
}

type ThreadCelebrity struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// ThreadView is one conversation in an inbox listing: the thread identity,
// its newest message, and the counterparty context.
type ThreadView struct {
	ThreadID    string            `json:"thread_id"`
	ThreadKey   string            `json:"thread_key"`
	ThreadType  models.ThreadType `json:"thread_type"`
	ReferenceID string            `json:"reference_id"`
	LastMessage *models.Message   `json:"last_message"`
	User        *models.User      `json:"user,omitempty"`
	Celebrity   *ThreadCelebrity  `json:"celebrity,omitempty"`
}

// ListForUser returns the user's threads, newest activity first, each
// annotated with the celebrity it concerns.
func (s *MessageService) ListForUser(userID string) ([]ThreadView, error) {
	var threads []models.Thread
	if err := s.DB.Where("user_id = ?", userID).
		Order("last_message_at DESC").
		Find(&threads).Error; err != nil {
		return nil, err
	}
	return s.buildViews(threads, false)
}

// ListAll is the admin inbox: every thread, annotated with both the owning
// user and the celebrity.
func (s *MessageService) ListAll() ([]ThreadView, error) {
	var threads []models.Thread
	if err := s.DB.Order("last_message_at DESC").Find(&threads).Error; err != nil {
		return nil, err
	}
	return s.buildViews(threads, true)
}

func (s *MessageService) buildViews(threads []models.Thread, includeUser bool) ([]ThreadView, error) {
	views := make([]ThreadView, 0, len(threads))
	for _, thread := range threads {
		view := ThreadView{
			ThreadID:    thread.ID,
			ThreadKey:   thread.Key,
			ThreadType:  thread.Type,
			ReferenceID: thread.ReferenceID,
		}

		var last models.Message
		if err := s.DB.Where("thread_id = ?", thread.ID).
			Order("created_at DESC").
			First(&last).Error; err == nil {
			view.LastMessage = &last
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		if thread.CelebrityID != "" {
			var celebrity models.Celebrity
			if err := s.DB.First(&celebrity, "id = ?", thread.CelebrityID).Error; err == nil {
				view.Celebrity = &ThreadCelebrity{Name: celebrity.Name, ImageURL: celebrity.ImageURL}
			}
		}

		if includeUser {
			var user models.User
			if err := s.DB.First(&user, "id = ?", thread.UserID).Error; err == nil {
				view.User = &user
			}
		}

		views = append(views, view)
	}
	return views, nil
}

// Messages returns a thread's messages oldest first. Non-admin callers may
// only read their own threads.
func (s *MessageService) Messages(threadKey, requesterID string, isAdmin bool) ([]models.Message, error) {
	var thread models.Thread
	if err := s.DB.First(&thread, "key = ?", threadKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, err
	}
	if !isAdmin && thread.UserID != requesterID {
		return nil, ErrNotThreadOwner
	}

	var messages []models.Message
	err := s.DB.Where("thread_id = ?", thread.ID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

type SendMessageInput struct {
	ThreadType  string `json:"thread_type" validate:"required"`
	ReferenceID string `json:"reference_id" validate:"required"`
	Text        string `json:"text"`
	ImageURL    string `json:"image_url"`
}

// GetThreads serves the inbox; admins see every thread, users their own.
func (s *MessageService) GetThreads(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("user_role").(models.Role)

	var (
		views []ThreadView
		err   error
	)
	if role == models.RoleAdmin {
		views, err = s.ListAll()
	} else {
		views, err = s.ListForUser(userID)
	}
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(views)
}

func (s *MessageService) GetThreadMessages(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("user_role").(models.Role)

	messages, err := s.Messages(c.Params("threadKey"), userID, role == models.RoleAdmin)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(messages)
}

// SendMessage appends a user message to one of the caller's threads.
func (s *MessageService) SendMessage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var in SendMessageInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := utils.ValidateStruct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	threadType := models.ThreadType(in.ThreadType)
	if !threadType.Valid() {
		return fail(c, ErrInvalidThreadType)
	}
	owner, err := s.resolveOwner(threadType, in.ReferenceID)
	if err != nil {
		return fail(c, err)
	}
	if owner != userID {
		return fail(c, ErrNotThreadOwner)
	}

	msg, _, err := s.Append(AppendMessageInput{
		ThreadType:   threadType,
		ReferenceID:  in.ReferenceID,
		Sender:       models.SenderUser,
		SenderUserID: userID,
		Text:         in.Text,
		ImageURL:     in.ImageURL,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// resolveOwner finds who a (type, reference) conversation belongs to without
// creating anything.
func (s *MessageService) resolveOwner(threadType models.ThreadType, referenceID string) (string, error) {
	switch threadType {
	case models.ThreadTypeBooking:
		var booking models.Booking
		if err := s.DB.First(&booking, "id = ?", referenceID).Error; err != nil {
			return "", ErrReferenceNotFound
		}
		return booking.UserID, nil
	case models.ThreadTypeCampaign:
		var campaign models.Campaign
		if err := s.DB.First(&campaign, "id = ?", referenceID).Error; err != nil {
			return "", ErrReferenceNotFound
		}
		return campaign.UserID, nil
	case models.ThreadTypeSupport:
		return referenceID, nil
	}
	return "", ErrInvalidThreadType
}

// SendAdminMessage appends an agent reply and notifies the thread owner.
func (s *MessageService) SendAdminMessage(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)

	var in SendMessageInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := utils.ValidateStruct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	msg, thread, err := s.Append(AppendMessageInput{
		ThreadType:   models.ThreadType(in.ThreadType),
		ReferenceID:  in.ReferenceID,
		Sender:       models.SenderAdmin,
		SenderUserID: adminID,
		Text:         in.Text,
		ImageURL:     in.ImageURL,
	})
	if err != nil {
		return fail(c, err)
	}

	if thread.UserID != "" && thread.UserID != adminID {
		s.Notifications.Notify(thread.UserID,
			"New Message from Agent",
			"You have a new message regarding your "+string(thread.Type)+" request.",
			models.NotificationTypeMessage)
	} else {
		log.Printf("[Messages] Admin message on thread %s has no user to notify", thread.Key)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
