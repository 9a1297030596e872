// services/message_service.go - Group chat persistence and delivery
package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"collegeconnect/models"
)

// dedupWindow is how close together two identical messages must land to be
// treated as duplicate deliveries of the same send.
const dedupWindow = time.Second

// MessageService persists group chat messages and fans them out to live
// subscribers through the hub. Persistence is the source of truth: a message
// is stored before any broadcast, so a subscriber that misses the live frame
// still sees it in history.
type MessageService struct {
	db  *gorm.DB
	hub *Hub
}

func NewMessageService(db *gorm.DB, hub *Hub) *MessageService {
	return &MessageService{db: db, hub: hub}
}

// SendMessageInput carries the client-supplied fields of a new message.
type SendMessageInput struct {
	Content     string              `json:"content"`
	MessageType models.MessageType  `json:"message_type"`
	Attachments []models.Attachment `json:"attachments"`
	ReplyToID   *uint               `json:"reply_to_id"`
}

// SendMessage stores a message in a group's channel and broadcasts it to
// subscribers. Only members may post.
func (s *MessageService) SendMessage(senderID, groupID uint, input SendMessageInput) (*models.Message, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	var group models.Group
	if err := s.db.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	member, err := isGroupMember(s.db, groupID, senderID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}

	msgType := input.MessageType
	if msgType == "" {
		msgType = models.MessageTypeText
	}

	message := models.Message{
		SenderID:    senderID,
		GroupID:     &groupID,
		Content:     content,
		MessageType: msgType,
		Attachments: input.Attachments,
		ReplyToID:   input.ReplyToID,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}

	// Reload with sender so live subscribers get the same shape as history.
	if err := s.db.Preload("Sender").First(&message, message.ID).Error; err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Broadcast(groupID, "newMessage", &message)
	}
	return &message, nil
}

// GetGroupMessages returns a group's history in chronological order. Only
// members may read it.
func (s *MessageService) GetGroupMessages(userID, groupID uint, limit int) ([]models.Message, error) {
	var group models.Group
	if err := s.db.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	member, err := isGroupMember(s.db, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}

	if limit <= 0 || limit > 500 {
		limit = 200
	}

	var messages []models.Message
	err = s.db.Preload("Sender").Preload("ReplyTo").
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// DeleteMessage removes a message. Only the sender may delete; subscribers
// are told so they can drop it from view.
func (s *MessageService) DeleteMessage(userID, messageID uint) error {
	var message models.Message
	if err := s.db.First(&message, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return err
	}
	if message.SenderID != userID {
		return ErrNotAuthorized
	}

	if err := s.db.Delete(&message).Error; err != nil {
		return err
	}

	if s.hub != nil && message.GroupID != nil {
		s.hub.Broadcast(*message.GroupID, "messageDeleted", message.ID)
	}
	return nil
}

// Deduplicate drops duplicate deliveries from a message stream. Two messages
// are duplicates when they share an id, or when they carry identical content
// and land within one second of each other. The content heuristic means two
// genuinely distinct sends of the same text inside the window collapse to
// one; that is the accepted trade-off.
func Deduplicate(messages []models.Message) []models.Message {
	seen := make(map[uint]struct{}, len(messages))
	lastByContent := make(map[string]time.Time)

	result := make([]models.Message, 0, len(messages))
	for _, m := range messages {
		if m.ID != 0 {
			if _, dup := seen[m.ID]; dup {
				continue
			}
		}
		if prev, ok := lastByContent[m.Content]; ok {
			delta := m.CreatedAt.Sub(prev)
			if delta < 0 {
				delta = -delta
			}
			if delta < dedupWindow {
				continue
			}
		}
		if m.ID != 0 {
			seen[m.ID] = struct{}{}
		}
		lastByContent[m.Content] = m.CreatedAt
		result = append(result, m)
	}
	return result
}

func isGroupMember(db *gorm.DB, groupID, userID uint) (bool, error) {
	var count int64
	err := db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}
