// models/user.go
package models

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Username string   `gorm:"uniqueIndex;not null" json:"username"`
	Email    string   `gorm:"uniqueIndex;not null" json:"email"`
	Password string   `gorm:"not null" json:"-"`
	Role     UserRole `gorm:"default:'user';index" json:"role"`

	// Campus profile
	CollegeName string   `json:"college_name"`
	Year        int      `json:"year"`
	Branch      string   `json:"branch"`
	Course      string   `json:"course"`
	RollNo      string   `json:"rollno"`
	Contact     string   `json:"contact"`
	Skills      []string `gorm:"serializer:json" json:"skills"`
	ProfilePic  string   `json:"profile_pic"`
	Resume      string   `json:"resume"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LastLogin time.Time `json:"last_login"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the global admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
