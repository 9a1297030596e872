// services/announcement_service.go - Campus-wide announcements
package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"collegeconnect/models"
)

type AnnouncementService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewAnnouncementService(db *gorm.DB, notifier *NotificationService) *AnnouncementService {
	return &AnnouncementService{db: db, notifier: notifier}
}

type CreateAnnouncementInput struct {
	Title    string                      `json:"title"`
	Content  string                      `json:"content"`
	Category string                      `json:"category"`
	Priority models.AnnouncementPriority `json:"priority"`
	IsPinned bool                        `json:"is_pinned"`
}

// CreateAnnouncement publishes an announcement and notifies every user.
// Urgent/High fan-out is best-effort and runs outside the insert.
func (s *AnnouncementService) CreateAnnouncement(in CreateAnnouncementInput, authorID uint) (*models.Announcement, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, errors.New("announcement title and content are required")
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}

	announcement := models.Announcement{
		Title:    strings.TrimSpace(in.Title),
		Content:  in.Content,
		Category: in.Category,
		AuthorID: authorID,
		Priority: in.Priority,
		IsPinned: in.IsPinned,
	}
	if err := s.db.Create(&announcement).Error; err != nil {
		return nil, err
	}

	if s.notifier != nil && (in.Priority == models.PriorityHigh || in.Priority == models.PriorityUrgent) {
		var userIDs []uint
		if err := s.db.Model(&models.User{}).Pluck("id", &userIDs).Error; err == nil {
			s.notifier.NotifyAnnouncement(authorID, userIDs, announcement.ID, announcement.Title, announcement.Priority)
		}
	}
	return &announcement, nil
}

// GetAnnouncement returns one announcement and records the viewer's read.
func (s *AnnouncementService) GetAnnouncement(announcementID, viewerID uint) (*models.Announcement, error) {
	var announcement models.Announcement
	err := s.db.Preload("Author").Preload("Comments.User").First(&announcement, announcementID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}

	if viewerID != 0 {
		// Marking read twice just hits the unique index; ignore it.
		s.db.Where("announcement_id = ? AND user_id = ?", announcementID, viewerID).
			FirstOrCreate(&models.AnnouncementRead{
				AnnouncementID: announcementID,
				UserID:         viewerID,
				ReadAt:         time.Now(),
			})
	}
	return &announcement, nil
}

// ListAnnouncements returns announcements, pinned first then newest.
func (s *AnnouncementService) ListAnnouncements(category string) ([]models.Announcement, error) {
	q := s.db.Preload("Author")
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var announcements []models.Announcement
	err := q.Order("is_pinned DESC, created_at DESC").Find(&announcements).Error
	if err != nil {
		return nil, err
	}
	return announcements, nil
}

// UnreadCount returns how many announcements the user has not opened.
func (s *AnnouncementService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Announcement{}).
		Where("id NOT IN (?)", s.db.Model(&models.AnnouncementRead{}).
			Select("announcement_id").Where("user_id = ?", userID)).
		Count(&count).Error
	return count, err
}

func (s *AnnouncementService) AddComment(announcementID, userID uint, text string) (*models.AnnouncementComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyContent
	}

	var announcement models.Announcement
	if err := s.db.First(&announcement, announcementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}

	comment := models.AnnouncementComment{AnnouncementID: announcementID, UserID: userID, Text: text}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

type UpdateAnnouncementInput struct {
	Title    string                      `json:"title"`
	Content  string                      `json:"content"`
	Priority models.AnnouncementPriority `json:"priority"`
	IsPinned *bool                       `json:"is_pinned"`
}

// UpdateAnnouncement edits an announcement; author or global admin only.
func (s *AnnouncementService) UpdateAnnouncement(announcementID, actorID uint, actorRole models.UserRole, in UpdateAnnouncementInput) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := s.db.First(&announcement, announcementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	if announcement.AuthorID != actorID && actorRole != models.RoleAdmin {
		return nil, ErrNotAuthorized
	}

	updates := map[string]interface{}{}
	if strings.TrimSpace(in.Title) != "" {
		updates["title"] = strings.TrimSpace(in.Title)
	}
	if in.Content != "" {
		updates["content"] = in.Content
	}
	if in.Priority != "" {
		updates["priority"] = in.Priority
	}
	if in.IsPinned != nil {
		updates["is_pinned"] = *in.IsPinned
	}
	if len(updates) > 0 {
		if err := s.db.Model(&announcement).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &announcement, nil
}

// DeleteAnnouncement removes an announcement with its comments and read
// records; author or global admin only.
func (s *AnnouncementService) DeleteAnnouncement(announcementID, actorID uint, actorRole models.UserRole) error {
	var announcement models.Announcement
	if err := s.db.First(&announcement, announcementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}
	if announcement.AuthorID != actorID && actorRole != models.RoleAdmin {
		return ErrNotAuthorized
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("announcement_id = ?", announcementID).Delete(&models.AnnouncementComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("announcement_id = ?", announcementID).Delete(&models.AnnouncementRead{}).Error; err != nil {
			return err
		}
		return tx.Delete(&announcement).Error
	})
}
