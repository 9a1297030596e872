// models/notification.go
package models

import "time"

type NotificationType string

const (
	NotifyGroupInvite  NotificationType = "group_invite"
	NotifyGroupJoin    NotificationType = "group_join"
	NotifyGroupMessage NotificationType = "group_message"
	NotifyEventInvite  NotificationType = "event_invite"
	NotifyAnnouncement NotificationType = "announcement"
	NotifySystem       NotificationType = "system"
)

// NotificationData carries optional entity references for deep links.
type NotificationData struct {
	GroupID        *uint  `json:"group_id,omitempty"`
	EventID        *uint  `json:"event_id,omitempty"`
	ResourceID     *uint  `json:"resource_id,omitempty"`
	AnnouncementID *uint  `json:"announcement_id,omitempty"`
	MessageID      *uint  `json:"message_id,omitempty"`
	URL            string `json:"url,omitempty"`
}

type Notification struct {
	ID          uint  `gorm:"primaryKey" json:"id"`
	RecipientID uint  `gorm:"not null;index:idx_notifications_recipient" json:"recipient_id"`
	SenderID    *uint `json:"sender_id,omitempty"`
	Sender      *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`

	Type    NotificationType `gorm:"not null;index" json:"type"`
	Title   string           `gorm:"not null" json:"title"`
	Message string           `gorm:"not null" json:"message"`
	Data    NotificationData `gorm:"serializer:json" json:"data"`

	IsRead   bool                 `gorm:"default:false;index" json:"is_read"`
	ReadAt   *time.Time           `json:"read_at,omitempty"`
	Priority AnnouncementPriority `gorm:"default:'Medium'" json:"priority"`

	CreatedAt time.Time `gorm:"index:idx_notifications_recipient,sort:desc" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
