// models/event.go
package models

import "time"

type EventCategory string

const (
	EventWorkshop    EventCategory = "Workshop"
	EventSeminar     EventCategory = "Seminar"
	EventMeetup      EventCategory = "Meetup"
	EventCompetition EventCategory = "Competition"
	EventCultural    EventCategory = "Cultural"
	EventSports      EventCategory = "Sports"
	EventOther       EventCategory = "Other"
)

type AttendeeStatus string

const (
	AttendeeGoing    AttendeeStatus = "going"
	AttendeeMaybe    AttendeeStatus = "maybe"
	AttendeeNotGoing AttendeeStatus = "not_going"
)

type EventLocation struct {
	Type        string `json:"type"` // Physical, Virtual, Hybrid
	Address     string `json:"address,omitempty"`
	VirtualLink string `json:"virtual_link,omitempty"`
}

type Event struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Title       string        `gorm:"not null;size:150" json:"title"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Category    EventCategory `gorm:"not null;index" json:"category"`

	OrganizerID uint   `gorm:"not null;index" json:"organizer_id"`
	Organizer   *User  `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	GroupID     *uint  `gorm:"index" json:"group_id,omitempty"`
	Group       *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`

	StartDate time.Time     `gorm:"not null;index" json:"start_date"`
	EndDate   time.Time     `gorm:"not null" json:"end_date"`
	Location  EventLocation `gorm:"serializer:json" json:"location"`

	Attendees    []EventAttendee `gorm:"foreignKey:EventID" json:"attendees,omitempty"`
	MaxAttendees int             `json:"max_attendees,omitempty"`
	IsPrivate    bool            `gorm:"default:false" json:"is_private"`
	Tags         []string        `gorm:"serializer:json" json:"tags"`
	Requirements []string        `gorm:"serializer:json" json:"requirements"`
	CoverImage   string          `json:"cover_image,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

type EventAttendee struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	EventID      uint           `gorm:"not null;uniqueIndex:idx_event_user" json:"event_id"`
	UserID       uint           `gorm:"not null;uniqueIndex:idx_event_user" json:"user_id"`
	User         *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status       AttendeeStatus `gorm:"not null;default:'going'" json:"status"`
	RegisteredAt time.Time      `gorm:"not null" json:"registered_at"`
}

func (EventAttendee) TableName() string {
	return "event_attendees"
}
