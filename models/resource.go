// models/resource.go
package models

import "time"

type Resource struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null;size:150" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	CreatorID uint   `gorm:"not null;index" json:"creator_id"`
	Creator   *User  `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	GroupID   *uint  `gorm:"index" json:"group_id,omitempty"`
	Group     *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`

	Category string `gorm:"default:'Other';index" json:"category"`
	Subject  string `gorm:"default:'General'" json:"subject"`
	Type     string `gorm:"default:'File'" json:"type"`

	FileURL  string `gorm:"not null" json:"file_url"`
	FileSize int64  `json:"file_size,omitempty"`
	FileType string `json:"file_type,omitempty"`

	Tags      []string `gorm:"serializer:json" json:"tags"`
	IsPublic  bool     `gorm:"default:true;index" json:"is_public"`
	Downloads int      `gorm:"default:0" json:"downloads"`

	Likes    []ResourceLike    `gorm:"foreignKey:ResourceID" json:"likes,omitempty"`
	Comments []ResourceComment `gorm:"foreignKey:ResourceID" json:"comments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Resource) TableName() string {
	return "resources"
}

type ResourceLike struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ResourceID uint      `gorm:"not null;uniqueIndex:idx_resource_user" json:"resource_id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_resource_user" json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ResourceLike) TableName() string {
	return "resource_likes"
}

type ResourceComment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ResourceID uint      `gorm:"not null;index" json:"resource_id"`
	UserID     uint      `gorm:"not null" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ResourceComment) TableName() string {
	return "resource_comments"
}
