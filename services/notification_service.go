// services/notification_service.go - In-app notification fan-out
package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"collegeconnect/models"
)

// NotificationService persists in-app notifications and pushes them over the
// live channel when the recipient is connected. Notification writes are
// best-effort: a failure is logged, never surfaced to the caller, so the
// triggering operation still succeeds.
type NotificationService struct {
	db  *gorm.DB
	hub *Hub
}

func NewNotificationService(db *gorm.DB, hub *Hub) *NotificationService {
	return &NotificationService{db: db, hub: hub}
}

// create inserts the notification on the given handle (a transaction when the
// caller is mid-transaction) and pushes it to the recipient's connection.
func (s *NotificationService) create(tx *gorm.DB, n *models.Notification) {
	if tx == nil {
		tx = s.db
	}
	if err := tx.Create(n).Error; err != nil {
		log.Printf("⚠️ Failed to create notification for user %d: %v", n.RecipientID, err)
		return
	}
	s.push(n)
}

func (s *NotificationService) push(n *models.Notification) {
	if s.hub == nil {
		return
	}
	if client, ok := s.hub.FindClient(n.RecipientID); ok {
		client.Queue(SocketEvent{Type: "notification", Payload: n})
	}
}

// NotifyJoinRequest tells a group creator that someone asked to join.
func (s *NotificationService) NotifyJoinRequest(tx *gorm.DB, creatorID, requesterID, groupID uint, groupName string) {
	s.create(tx, &models.Notification{
		RecipientID: creatorID,
		SenderID:    &requesterID,
		Type:        models.NotifyGroupJoin,
		Title:       "New join request",
		Message:     fmt.Sprintf("Someone requested to join %s", groupName),
		Data:        models.NotificationData{GroupID: &groupID},
	})
}

// NotifyRequestApproved tells a requester their join request went through.
func (s *NotificationService) NotifyRequestApproved(tx *gorm.DB, requesterID, groupID uint, groupName string) {
	s.create(tx, &models.Notification{
		RecipientID: requesterID,
		Type:        models.NotifyGroupJoin,
		Title:       "Request approved",
		Message:     fmt.Sprintf("You are now a member of %s", groupName),
		Data:        models.NotificationData{GroupID: &groupID},
	})
}

// NotifyAnnouncement fans an announcement out to every recipient.
func (s *NotificationService) NotifyAnnouncement(senderID uint, recipientIDs []uint, announcementID uint, title string, priority models.AnnouncementPriority) {
	for _, rid := range recipientIDs {
		if rid == senderID {
			continue
		}
		s.create(nil, &models.Notification{
			RecipientID: rid,
			SenderID:    &senderID,
			Type:        models.NotifyAnnouncement,
			Title:       "New announcement",
			Message:     title,
			Priority:    priority,
			Data:        models.NotificationData{AnnouncementID: &announcementID},
		})
	}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(userID uint, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	q := s.db.Preload("Sender").
		Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Limit(limit)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := q.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications for the user.
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks one of the user's notifications as read. Marking an already
// read notification is a no-op.
func (s *NotificationService) MarkRead(userID, notificationID uint) error {
	now := time.Now()
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification for the user as read.
func (s *NotificationService) MarkAllRead(userID uint) error {
	now := time.Now()
	return s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
}

// Delete removes one of the user's notifications.
func (s *NotificationService) Delete(userID, notificationID uint) error {
	result := s.db.Where("id = ? AND recipient_id = ?", notificationID, userID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
