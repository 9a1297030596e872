// services/group_service.go - Group membership and access control
package services

import (
	"errors"
	"strings"
	"time"

	"collegeconnect/models"

	"gorm.io/gorm"
)

// GroupService owns the lifecycle of a group's member set, join-request
// queue, and role assignment. Per (user, group) pair exactly one of
// {non-member, pending, member-with-role} holds; every transition here moves
// between those states inside a single transaction.
type GroupService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewGroupService(db *gorm.DB, notifier *NotificationService) *GroupService {
	return &GroupService{db: db, notifier: notifier}
}

// JoinOutcome reports how a join call resolved: direct admission for public
// groups, a queued request for private ones.
type JoinOutcome string

const (
	JoinOutcomeJoined  JoinOutcome = "joined"
	JoinOutcomePending JoinOutcome = "pending"
)

type CreateGroupInput struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Category    models.GroupCategory `json:"category"`
	IsPrivate   bool                 `json:"is_private"`
	Tags        []string             `json:"tags"`
	Rules       []string             `json:"rules"`
	MaxMembers  int                  `json:"max_members"`
	CoverImage  string               `json:"cover_image"`
}

// CreateGroup creates a group with the creator as its first admin member.
// The creator never passes through the join-request queue.
func (s *GroupService) CreateGroup(in CreateGroupInput, creatorID uint) (*models.Group, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("group name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, errors.New("group description is required")
	}
	if !models.ValidCategory(in.Category) {
		return nil, errors.New("invalid group category")
	}
	if in.MaxMembers <= 0 {
		in.MaxMembers = models.DefaultMaxMembers
	}

	group := &models.Group{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Category:    in.Category,
		IsPrivate:   in.IsPrivate,
		Tags:        in.Tags,
		Rules:       in.Rules,
		MaxMembers:  in.MaxMembers,
		CoverImage:  in.CoverImage,
		CreatorID:   creatorID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}

		member := &models.GroupMember{
			GroupID:  group.ID,
			UserID:   creatorID,
			Role:     models.GroupRoleAdmin,
			JoinedAt: time.Now(),
		}
		return tx.Create(member).Error
	})

	if err != nil {
		return nil, err
	}

	return group, nil
}

// GetGroup retrieves a group with creator and members preloaded.
func (s *GroupService) GetGroup(groupID uint) (*models.Group, error) {
	var group models.Group
	err := s.db.
		Preload("Creator").
		Preload("Members").
		Preload("Members.User").
		First(&group, groupID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	return &group, nil
}

// JoinGroup admits a user to a public group directly, or queues a join
// request for a private group. The capacity check happens here, at request
// time, for both paths; approval does not re-check it.
func (s *GroupService) JoinGroup(groupID, userID uint) (JoinOutcome, error) {
	var outcome JoinOutcome

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var group models.Group
		if err := tx.First(&group, groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}

		var memberCount int64
		if err := tx.Model(&models.GroupMember{}).Where("group_id = ?", groupID).Count(&memberCount).Error; err != nil {
			return err
		}

		var isMember int64
		if err := tx.Model(&models.GroupMember{}).
			Where("group_id = ? AND user_id = ?", groupID, userID).
			Count(&isMember).Error; err != nil {
			return err
		}
		if isMember > 0 {
			return ErrAlreadyMember
		}

		if memberCount >= int64(group.MaxMembers) {
			return ErrGroupFull
		}

		if !group.IsPrivate {
			member := &models.GroupMember{
				GroupID:  groupID,
				UserID:   userID,
				Role:     models.GroupRoleMember,
				JoinedAt: time.Now(),
			}
			if err := tx.Create(member).Error; err != nil {
				return err
			}
			outcome = JoinOutcomeJoined
			return nil
		}

		var pending int64
		if err := tx.Model(&models.GroupJoinRequest{}).
			Where("group_id = ? AND user_id = ?", groupID, userID).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return ErrDuplicateRequest
		}

		request := &models.GroupJoinRequest{
			GroupID:     groupID,
			UserID:      userID,
			RequestedAt: time.Now(),
		}
		if err := tx.Create(request).Error; err != nil {
			return err
		}
		outcome = JoinOutcomePending

		if s.notifier != nil {
			s.notifier.NotifyJoinRequest(tx, group.CreatorID, userID, group.ID, group.Name)
		}
		return nil
	})

	if err != nil {
		return "", err
	}
	return outcome, nil
}

// LeaveGroup removes the user's membership. Leaving a group the user is not
// a member of is a silent no-op; calling it twice yields the same end state.
func (s *GroupService) LeaveGroup(groupID, userID uint) error {
	var exists int64
	if err := s.db.Model(&models.Group{}).Where("id = ?", groupID).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return ErrGroupNotFound
	}

	return s.db.
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{}).Error
}

// canManageRequests reports whether the actor may approve, reject, or list
// join requests: the group's creator or a global admin. Note this is looser
// than update/delete, which only the exact creator may perform.
func canManageRequests(group *models.Group, actorID uint, actorRole models.UserRole) bool {
	return group.CreatorID == actorID || actorRole == models.RoleAdmin
}

// ApproveJoinRequest atomically removes the pending entry and admits the
// requester as a regular member. Capacity is intentionally not re-checked
// here: admission control runs at request time only, so concurrent approvals
// on a group near capacity can overshoot MaxMembers.
func (s *GroupService) ApproveJoinRequest(groupID, requesterID, actorID uint, actorRole models.UserRole) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var group models.Group
		if err := tx.First(&group, groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}

		if !canManageRequests(&group, actorID, actorRole) {
			return ErrNotAuthorized
		}

		res := tx.Where("group_id = ? AND user_id = ?", groupID, requesterID).
			Delete(&models.GroupJoinRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRequestNotFound
		}

		member := &models.GroupMember{
			GroupID:  groupID,
			UserID:   requesterID,
			Role:     models.GroupRoleMember,
			JoinedAt: time.Now(),
		}
		if err := tx.Create(member).Error; err != nil {
			return err
		}

		if s.notifier != nil {
			s.notifier.NotifyRequestApproved(tx, requesterID, group.ID, group.Name)
		}
		return nil
	})
}

// RejectJoinRequest removes the pending entry with no effect on members.
func (s *GroupService) RejectJoinRequest(groupID, requesterID, actorID uint, actorRole models.UserRole) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var group models.Group
		if err := tx.First(&group, groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}

		if !canManageRequests(&group, actorID, actorRole) {
			return ErrNotAuthorized
		}

		res := tx.Where("group_id = ? AND user_id = ?", groupID, requesterID).
			Delete(&models.GroupJoinRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRequestNotFound
		}
		return nil
	})
}

// ListJoinRequests returns the pending queue; creator-or-admin only.
func (s *GroupService) ListJoinRequests(groupID, actorID uint, actorRole models.UserRole) ([]models.GroupJoinRequest, error) {
	var group models.Group
	if err := s.db.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	if !canManageRequests(&group, actorID, actorRole) {
		return nil, ErrNotAuthorized
	}

	var requests []models.GroupJoinRequest
	err := s.db.Where("group_id = ?", groupID).
		Preload("User").
		Order("requested_at ASC").
		Find(&requests).Error

	return requests, err
}

type UpdateGroupInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateGroup changes name/description; only the exact creator may update.
// Global admins deliberately cannot (stricter than request management).
func (s *GroupService) UpdateGroup(groupID, actorID uint, in UpdateGroupInput) (*models.Group, error) {
	var group models.Group
	if err := s.db.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	if group.CreatorID != actorID {
		return nil, ErrNotAuthorized
	}

	if strings.TrimSpace(in.Name) != "" {
		group.Name = strings.TrimSpace(in.Name)
	}
	if strings.TrimSpace(in.Description) != "" {
		group.Description = in.Description
	}

	if err := s.db.Save(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// DeleteGroup removes the group with its memberships and pending requests;
// creator-only. Messages are left orphaned on purpose.
func (s *GroupService) DeleteGroup(groupID, actorID uint) error {
	var group models.Group
	if err := s.db.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return err
	}

	if group.CreatorID != actorID {
		return ErrNotAuthorized
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", groupID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.GroupJoinRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, groupID).Error
	})
}

// ListGroups returns all groups for authenticated viewers, public-only for
// anonymous callers, each annotated with the viewer's membership triple. The
// triple is recomputed per call and never stored on the entity.
func (s *GroupService) ListGroups(viewerID *uint, search string, category models.GroupCategory) ([]models.GroupWithStatus, error) {
	query := s.db.Model(&models.Group{})

	if viewerID == nil {
		query = query.Where("is_private = ?", false)
	}
	query = applyGroupFilters(query, search, category)

	var groups []models.Group
	err := query.
		Preload("Creator").
		Preload("Members").
		Preload("Members.User").
		Order("created_at DESC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}

	return s.annotate(groups, viewerID), nil
}

// ListPublicGroups returns public groups only; no viewer annotation.
func (s *GroupService) ListPublicGroups() ([]models.Group, error) {
	var groups []models.Group
	err := s.db.Where("is_private = ?", false).
		Preload("Creator").
		Preload("Members").
		Preload("Members.User").
		Order("created_at DESC").
		Find(&groups).Error
	return groups, err
}

// DiscoverGroups returns public groups matching search/category for the
// explore page, annotated for the viewer.
func (s *GroupService) DiscoverGroups(viewerID uint, search string, category models.GroupCategory) ([]models.GroupWithStatus, error) {
	query := s.db.Model(&models.Group{}).Where("is_private = ?", false)
	query = applyGroupFilters(query, search, category)

	var groups []models.Group
	err := query.
		Preload("Creator").
		Preload("Members").
		Preload("Members.User").
		Order("created_at DESC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}

	return s.annotate(groups, &viewerID), nil
}

// ListUserGroups returns groups the user belongs to or created.
func (s *GroupService) ListUserGroups(userID uint) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.
		Distinct("groups.*").
		Joins("LEFT JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ? OR groups.creator_id = ?", userID, userID).
		Preload("Creator").
		Preload("Members").
		Preload("Members.User").
		Order("groups.created_at DESC").
		Find(&groups).Error
	return groups, err
}

func applyGroupFilters(query *gorm.DB, search string, category models.GroupCategory) *gorm.DB {
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}
	return query
}

func (s *GroupService) annotate(groups []models.Group, viewerID *uint) []models.GroupWithStatus {
	result := make([]models.GroupWithStatus, 0, len(groups))
	for _, g := range groups {
		status := models.GroupViewerStatus{}
		if viewerID != nil {
			for _, m := range g.Members {
				if m.UserID == *viewerID {
					status.IsMember = true
					break
				}
			}
			status.IsCreator = g.CreatorID == *viewerID
			status.CanJoin = !status.IsMember && !status.IsCreator
		}
		// Pending requests are creator-facing; never expose them on lists.
		g.JoinRequests = nil
		result = append(result, models.GroupWithStatus{Group: g, UserStatus: status})
	}
	return result
}

// IsMember reports whether the user currently belongs to the group.
func (s *GroupService) IsMember(groupID, userID uint) bool {
	var count int64
	s.db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count)
	return count > 0
}

// MemberRole returns the user's role within the group.
func (s *GroupService) MemberRole(groupID, userID uint) (models.GroupRole, error) {
	var member models.GroupMember
	err := s.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotMember
		}
		return "", err
	}
	return member.Role, nil
}
