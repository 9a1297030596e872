// models/group.go
package models

import "time"

type GroupCategory string

const (
	CategoryAcademic  GroupCategory = "Academic"
	CategorySocial    GroupCategory = "Social"
	CategoryTechnical GroupCategory = "Technical"
	CategorySports    GroupCategory = "Sports"
	CategoryCultural  GroupCategory = "Cultural"
	CategoryOther     GroupCategory = "Other"
)

// ValidCategory reports whether c is one of the known group categories.
func ValidCategory(c GroupCategory) bool {
	switch c {
	case CategoryAcademic, CategorySocial, CategoryTechnical,
		CategorySports, CategoryCultural, CategoryOther:
		return true
	}
	return false
}

type GroupRole string

const (
	GroupRoleAdmin     GroupRole = "admin"
	GroupRoleModerator GroupRole = "moderator"
	GroupRoleMember    GroupRole = "member"
)

const DefaultMaxMembers = 100

type Group struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"not null;size:100;index" json:"name"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Category    GroupCategory `gorm:"not null;index" json:"category"`
	IsPrivate   bool          `gorm:"default:false" json:"is_private"`
	Tags        []string      `gorm:"serializer:json" json:"tags"`
	Rules       []string      `gorm:"serializer:json" json:"rules"`
	MaxMembers  int           `gorm:"default:100" json:"max_members"`
	CoverImage  string        `json:"cover_image,omitempty"`

	// CreatorID never changes after creation; there is no ownership transfer.
	CreatorID uint  `gorm:"not null;index" json:"creator_id"`
	Creator   *User `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`

	Members      []GroupMember      `gorm:"foreignKey:GroupID" json:"members,omitempty"`
	JoinRequests []GroupJoinRequest `gorm:"foreignKey:GroupID" json:"join_requests,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Group) TableName() string {
	return "groups"
}

// GroupMember is one row per (group, user) admission. The composite unique
// index keeps a user from appearing in a group's member list twice.
type GroupMember struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	GroupID  uint      `gorm:"not null;uniqueIndex:idx_group_user" json:"group_id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_group_user;index" json:"user_id"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role     GroupRole `gorm:"not null;default:'member'" json:"role"`
	JoinedAt time.Time `gorm:"not null" json:"joined_at"`
}

func (GroupMember) TableName() string {
	return "group_members"
}

// GroupJoinRequest is a pending admission record for a private group.
type GroupJoinRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	GroupID     uint      `gorm:"not null;uniqueIndex:idx_group_user_req" json:"group_id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_group_user_req" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RequestedAt time.Time `gorm:"not null" json:"requested_at"`
}

func (GroupJoinRequest) TableName() string {
	return "group_join_requests"
}

// GroupViewerStatus is the per-requester membership triple attached to group
// list responses. It is derived on every read, never stored.
type GroupViewerStatus struct {
	IsMember  bool `json:"is_member"`
	IsCreator bool `json:"is_creator"`
	CanJoin   bool `json:"can_join"`
}

// GroupWithStatus pairs a group with the viewer's derived status.
type GroupWithStatus struct {
	Group
	UserStatus GroupViewerStatus `json:"user_status"`
}
