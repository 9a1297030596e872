// models/announcement.go
package models

import "time"

type AnnouncementPriority string

const (
	PriorityLow    AnnouncementPriority = "Low"
	PriorityMedium AnnouncementPriority = "Medium"
	PriorityHigh   AnnouncementPriority = "High"
	PriorityUrgent AnnouncementPriority = "Urgent"
)

type Announcement struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null;size:150" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Category string `gorm:"default:'General';index" json:"category"`

	AuthorID uint  `gorm:"not null;index" json:"author_id"`
	Author   *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	Priority AnnouncementPriority `gorm:"default:'Medium'" json:"priority"`
	IsPinned bool                 `gorm:"default:false;index" json:"is_pinned"`

	Comments []AnnouncementComment `gorm:"foreignKey:AnnouncementID" json:"comments,omitempty"`
	Reads    []AnnouncementRead    `gorm:"foreignKey:AnnouncementID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Announcement) TableName() string {
	return "announcements"
}

type AnnouncementComment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AnnouncementID uint      `gorm:"not null;index" json:"announcement_id"`
	UserID         uint      `gorm:"not null" json:"user_id"`
	User           *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Text           string    `gorm:"type:text;not null" json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

func (AnnouncementComment) TableName() string {
	return "announcement_comments"
}

// AnnouncementRead records that a user has seen an announcement; used for
// the unread counter on the dashboard.
type AnnouncementRead struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AnnouncementID uint      `gorm:"not null;uniqueIndex:idx_announcement_user" json:"announcement_id"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_announcement_user" json:"user_id"`
	ReadAt         time.Time `json:"read_at"`
}

func (AnnouncementRead) TableName() string {
	return "announcement_reads"
}
