// services/resource_service.go - Shared study resources
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"collegeconnect/models"
)

type ResourceService struct {
	db *gorm.DB
}

func NewResourceService(db *gorm.DB) *ResourceService {
	return &ResourceService{db: db}
}

type CreateResourceInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	GroupID     *uint    `json:"group_id"`
	Category    string   `json:"category"`
	Subject     string   `json:"subject"`
	Type        string   `json:"type"`
	FileURL     string   `json:"file_url"`
	FileSize    int64    `json:"file_size"`
	FileType    string   `json:"file_type"`
	Tags        []string `json:"tags"`
	IsPublic    *bool    `json:"is_public"`
}

func (s *ResourceService) CreateResource(in CreateResourceInput, creatorID uint) (*models.Resource, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errors.New("resource title is required")
	}
	if strings.TrimSpace(in.FileURL) == "" {
		return nil, errors.New("resource file URL is required")
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	resource := models.Resource{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		CreatorID:   creatorID,
		GroupID:     in.GroupID,
		Category:    in.Category,
		Subject:     in.Subject,
		Type:        in.Type,
		FileURL:     in.FileURL,
		FileSize:    in.FileSize,
		FileType:    in.FileType,
		Tags:        in.Tags,
		IsPublic:    isPublic,
	}
	if err := s.db.Create(&resource).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

func (s *ResourceService) GetResource(resourceID uint) (*models.Resource, error) {
	var resource models.Resource
	err := s.db.Preload("Creator").Preload("Comments.User").Preload("Likes").
		First(&resource, resourceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	return &resource, nil
}

func (s *ResourceService) ListResources(category, subject, search string) ([]models.Resource, error) {
	q := s.db.Where("is_public = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if subject != "" {
		q = q.Where("subject = ?", subject)
	}
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}

	var resources []models.Resource
	if err := q.Preload("Creator").Order("created_at DESC").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

// RecordDownload bumps the download counter and returns the file URL.
func (s *ResourceService) RecordDownload(resourceID uint) (string, error) {
	var resource models.Resource
	if err := s.db.First(&resource, resourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrResourceNotFound
		}
		return "", err
	}
	if err := s.db.Model(&resource).UpdateColumn("downloads", gorm.Expr("downloads + 1")).Error; err != nil {
		return "", err
	}
	return resource.FileURL, nil
}

// ToggleLike flips the caller's like. Returns true when the resource ends
// up liked.
func (s *ResourceService) ToggleLike(resourceID, userID uint) (bool, error) {
	var resource models.Resource
	if err := s.db.First(&resource, resourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrResourceNotFound
		}
		return false, err
	}

	result := s.db.Where("resource_id = ? AND user_id = ?", resourceID, userID).
		Delete(&models.ResourceLike{})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return false, nil
	}

	err := s.db.Create(&models.ResourceLike{ResourceID: resourceID, UserID: userID}).Error
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *ResourceService) AddComment(resourceID, userID uint, text string) (*models.ResourceComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyContent
	}

	var resource models.Resource
	if err := s.db.First(&resource, resourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}

	comment := models.ResourceComment{ResourceID: resourceID, UserID: userID, Text: text}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

type UpdateResourceInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Subject     string `json:"subject"`
}

// UpdateResource edits metadata; creator only.
func (s *ResourceService) UpdateResource(resourceID, actorID uint, in UpdateResourceInput) (*models.Resource, error) {
	var resource models.Resource
	if err := s.db.First(&resource, resourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	if resource.CreatorID != actorID {
		return nil, ErrNotAuthorized
	}

	updates := map[string]interface{}{}
	if strings.TrimSpace(in.Title) != "" {
		updates["title"] = strings.TrimSpace(in.Title)
	}
	if in.Description != "" {
		updates["description"] = in.Description
	}
	if in.Category != "" {
		updates["category"] = in.Category
	}
	if in.Subject != "" {
		updates["subject"] = in.Subject
	}
	if len(updates) > 0 {
		if err := s.db.Model(&resource).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &resource, nil
}

// DeleteResource removes a resource and its likes and comments; creator or
// global admin only.
func (s *ResourceService) DeleteResource(resourceID, actorID uint, actorRole models.UserRole) error {
	var resource models.Resource
	if err := s.db.First(&resource, resourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResourceNotFound
		}
		return err
	}
	if resource.CreatorID != actorID && actorRole != models.RoleAdmin {
		return ErrNotAuthorized
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("resource_id = ?", resourceID).Delete(&models.ResourceLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resource_id = ?", resourceID).Delete(&models.ResourceComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&resource).Error
	})
}

func (s *ResourceService) ListUserResources(userID uint) ([]models.Resource, error) {
	var resources []models.Resource
	err := s.db.Where("creator_id = ?", userID).Order("created_at DESC").Find(&resources).Error
	if err != nil {
		return nil, err
	}
	return resources, nil
}
