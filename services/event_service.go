// services/event_service.go - Campus events and RSVPs
package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"collegeconnect/models"
)

type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

type CreateEventInput struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Category     models.EventCategory `json:"category"`
	GroupID      *uint                `json:"group_id"`
	StartDate    time.Time            `json:"start_date"`
	EndDate      time.Time            `json:"end_date"`
	Location     models.EventLocation `json:"location"`
	MaxAttendees int                  `json:"max_attendees"`
	IsPrivate    bool                 `json:"is_private"`
	Tags         []string             `json:"tags"`
	Requirements []string             `json:"requirements"`
	CoverImage   string               `json:"cover_image"`
}

type EventFilter struct {
	Category models.EventCategory
	Search   string
	Upcoming bool
	Page     int
	PageSize int
}

// CreateEvent publishes a campus event. Only global admins may create events.
func (s *EventService) CreateEvent(in CreateEventInput, organizerID uint, organizerRole models.UserRole) (*models.Event, error) {
	if organizerRole != models.RoleAdmin {
		return nil, ErrNotAuthorized
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, errors.New("event title is required")
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, errors.New("event end date precedes start date")
	}
	if in.Category == "" {
		in.Category = models.EventOther
	}

	event := models.Event{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Category:     in.Category,
		OrganizerID:  organizerID,
		GroupID:      in.GroupID,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Location:     in.Location,
		MaxAttendees: in.MaxAttendees,
		IsPrivate:    in.IsPrivate,
		Tags:         in.Tags,
		Requirements: in.Requirements,
		CoverImage:   in.CoverImage,
	}
	if err := s.db.Create(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventService) GetEvent(eventID uint) (*models.Event, error) {
	var event models.Event
	err := s.db.Preload("Organizer").Preload("Attendees.User").First(&event, eventID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (s *EventService) ListEvents(f EventFilter) ([]models.Event, int64, error) {
	q := s.db.Model(&models.Event{}).Where("is_private = ?", false)

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if f.Upcoming {
		q = q.Where("start_date > ?", time.Now())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.PageSize <= 0 || f.PageSize > 100 {
		f.PageSize = 20
	}
	if f.Page < 1 {
		f.Page = 1
	}

	var events []models.Event
	err := q.Preload("Organizer").
		Order("start_date ASC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// Attend records or updates the caller's RSVP. Capacity counts "going"
// responses only.
func (s *EventService) Attend(eventID, userID uint, status models.AttendeeStatus) error {
	switch status {
	case models.AttendeeGoing, models.AttendeeMaybe, models.AttendeeNotGoing:
	default:
		return errors.New("invalid RSVP status")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		var existing models.EventAttendee
		err := tx.Where("event_id = ? AND user_id = ?", eventID, userID).First(&existing).Error
		if err == nil {
			return tx.Model(&existing).Update("status", status).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if status == models.AttendeeGoing && event.MaxAttendees > 0 {
			var going int64
			if err := tx.Model(&models.EventAttendee{}).
				Where("event_id = ? AND status = ?", eventID, models.AttendeeGoing).
				Count(&going).Error; err != nil {
				return err
			}
			if going >= int64(event.MaxAttendees) {
				return errors.New("event is full")
			}
		}

		return tx.Create(&models.EventAttendee{
			EventID:      eventID,
			UserID:       userID,
			Status:       status,
			RegisteredAt: time.Now(),
		}).Error
	})
}

type UpdateEventInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

// UpdateEvent changes event details; organizer or global admin only.
func (s *EventService) UpdateEvent(eventID, actorID uint, actorRole models.UserRole, in UpdateEventInput) (*models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if event.OrganizerID != actorID && actorRole != models.RoleAdmin {
		return nil, ErrNotAuthorized
	}

	updates := map[string]interface{}{}
	if strings.TrimSpace(in.Title) != "" {
		updates["title"] = strings.TrimSpace(in.Title)
	}
	if in.Description != "" {
		updates["description"] = in.Description
	}
	if !in.StartDate.IsZero() {
		updates["start_date"] = in.StartDate
	}
	if !in.EndDate.IsZero() {
		updates["end_date"] = in.EndDate
	}
	if len(updates) > 0 {
		if err := s.db.Model(&event).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &event, nil
}

// DeleteEvent removes an event and its RSVPs; organizer or global admin only.
func (s *EventService) DeleteEvent(eventID, actorID uint, actorRole models.UserRole) error {
	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if event.OrganizerID != actorID && actorRole != models.RoleAdmin {
		return ErrNotAuthorized
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&models.EventAttendee{}).Error; err != nil {
			return err
		}
		return tx.Delete(&event).Error
	})
}

// ListUserEvents returns events the user organizes or RSVP'd to.
func (s *EventService) ListUserEvents(userID uint) ([]models.Event, error) {
	var events []models.Event
	err := s.db.Preload("Organizer").
		Where("organizer_id = ?", userID).
		Or("id IN (?)", s.db.Model(&models.EventAttendee{}).Select("event_id").Where("user_id = ?", userID)).
		Order("start_date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
