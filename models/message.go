// models/message.go
package models

import "time"

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeFile  MessageType = "file"
	MessageTypeLink  MessageType = "link"
)

type Attachment struct {
	URL  string `json:"url"`
	Type string `json:"type"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Message is a chat message. Exactly one of GroupID and RecipientID is set:
// GroupID for group chat, RecipientID for direct messages (the model keeps
// the direct-message column even though only the group path is routed).
type Message struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	SenderID uint  `gorm:"not null;index:idx_messages_sender" json:"sender_id"`
	Sender   *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`

	GroupID     *uint `gorm:"index:idx_messages_group" json:"group_id,omitempty"`
	RecipientID *uint `gorm:"index" json:"recipient_id,omitempty"`

	Content     string       `gorm:"type:text;not null" json:"content"`
	MessageType MessageType  `gorm:"default:'text'" json:"message_type"`
	Attachments []Attachment `gorm:"serializer:json" json:"attachments"`

	ReplyToID *uint    `json:"reply_to_id,omitempty"`
	ReplyTo   *Message `gorm:"foreignKey:ReplyToID" json:"reply_to,omitempty"`

	// Edit bookkeeping exists in the schema; no update endpoint is exposed.
	IsEdited bool       `gorm:"default:false" json:"is_edited"`
	EditedAt *time.Time `json:"edited_at,omitempty"`

	CreatedAt time.Time `gorm:"index:idx_messages_group,sort:desc" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
