// handlers/admin/console.go - Console dashboards and entity management
package admin

import (
	"github.com/gofiber/fiber/v2"

	"collegeconnect/database"
	"collegeconnect/models"
)

// GetStats returns entity counts for the console dashboard
func GetStats(c *fiber.Ctx) error {
	db := database.GetDB()

	var users, groups, messages, events, resources, announcements int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Group{}).Count(&groups)
	db.Model(&models.Message{}).Count(&messages)
	db.Model(&models.Event{}).Count(&events)
	db.Model(&models.Resource{}).Count(&resources)
	db.Model(&models.Announcement{}).Count(&announcements)

	return c.JSON(fiber.Map{
		"users":         users,
		"groups":        groups,
		"messages":      messages,
		"events":        events,
		"resources":     resources,
		"announcements": announcements,
	})
}

// GetRecentActivity returns the latest registrations and groups
func GetRecentActivity(c *fiber.Ctx) error {
	db := database.GetDB()
	limit := c.QueryInt("limit", 10)

	var recentUsers []models.User
	db.Order("created_at DESC").Limit(limit).Find(&recentUsers)

	var recentGroups []models.Group
	db.Order("created_at DESC").Limit(limit).Find(&recentGroups)

	return c.JSON(fiber.Map{
		"users":  recentUsers,
		"groups": recentGroups,
	})
}

// GetUsers returns all users with pagination and search
func GetUsers(c *fiber.Ctx) error {
	db := database.GetDB()

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	search := c.Query("search", "")

	offset := (page - 1) * limit

	var users []models.User
	var total int64

	query := db.Model(&models.User{})
	if search != "" {
		query = query.Where("username LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	query.Count(&total)

	if err := query.Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to fetch users",
		})
	}

	return c.JSON(fiber.Map{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// UpdateUser updates a user's account from the console
func UpdateUser(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var updateData struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		Role        string `json:"role"`
		CollegeName string `json:"college_name"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if updateData.Username != "" {
		user.Username = updateData.Username
	}
	if updateData.Email != "" {
		user.Email = updateData.Email
	}
	if updateData.Role == string(models.RoleUser) || updateData.Role == string(models.RoleAdmin) {
		user.Role = models.UserRole(updateData.Role)
	}
	if updateData.CollegeName != "" {
		user.CollegeName = updateData.CollegeName
	}

	if err := db.Save(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to update user",
		})
	}
	return c.JSON(user)
}

// DeleteUser deletes a non-admin user
func DeleteUser(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if user.IsAdmin() {
		return c.Status(403).JSON(fiber.Map{
			"error": "Cannot delete admin users",
		})
	}

	if err := db.Delete(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to delete user",
		})
	}
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}

// GetGroups returns all groups with pagination
func GetGroups(c *fiber.Ctx) error {
	db := database.GetDB()

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	offset := (page - 1) * limit

	var groups []models.Group
	var total int64

	db.Model(&models.Group{}).Count(&total)
	if err := db.Preload("Creator").Offset(offset).Limit(limit).Find(&groups).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to fetch groups",
		})
	}

	return c.JSON(fiber.Map{
		"groups": groups,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

// DeleteGroup deletes a group and its membership records
func DeleteGroup(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	var group models.Group
	if err := db.First(&group, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "Group not found",
		})
	}

	if err := db.Where("group_id = ?", group.ID).Delete(&models.GroupMember{}).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to delete group",
		})
	}
	if err := db.Where("group_id = ?", group.ID).Delete(&models.GroupJoinRequest{}).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to delete group",
		})
	}
	if err := db.Delete(&group).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to delete group",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Group deleted successfully",
	})
}

// GetEvents returns all events including private ones
func GetEvents(c *fiber.Ctx) error {
	db := database.GetDB()

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	offset := (page - 1) * limit

	var events []models.Event
	var total int64

	db.Model(&models.Event{}).Count(&total)
	if err := db.Preload("Organizer").Order("start_date DESC").Offset(offset).Limit(limit).Find(&events).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to fetch events",
		})
	}

	return c.JSON(fiber.Map{
		"events": events,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

// DeleteEvent deletes an event and its RSVPs
func DeleteEvent(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	var event models.Event
	if err := db.First(&event, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "Event not found",
		})
	}

	if err := db.Where("event_id = ?", event.ID).Delete(&models.EventAttendee{}).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to delete event",
		})
	}
	if err := db.Delete(&event).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to delete event",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Event deleted successfully",
	})
}

// GetResources returns all resources
func GetResources(c *fiber.Ctx) error {
	db := database.GetDB()

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	offset := (page - 1) * limit

	var resources []models.Resource
	var total int64

	db.Model(&models.Resource{}).Count(&total)
	if err := db.Preload("Creator").Order("created_at DESC").Offset(offset).Limit(limit).Find(&resources).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to fetch resources",
		})
	}

	return c.JSON(fiber.Map{
		"resources": resources,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

// DeleteResource deletes a resource with its likes and comments
func DeleteResource(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	var resource models.Resource
	if err := db.First(&resource, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "Resource not found",
		})
	}

	db.Where("resource_id = ?", resource.ID).Delete(&models.ResourceLike{})
	db.Where("resource_id = ?", resource.ID).Delete(&models.ResourceComment{})
	if err := db.Delete(&resource).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to delete resource",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Resource deleted successfully",
	})
}

// GetAnnouncements returns all announcements
func GetAnnouncements(c *fiber.Ctx) error {
	db := database.GetDB()

	var announcements []models.Announcement
	if err := db.Preload("Author").Order("created_at DESC").Find(&announcements).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to fetch announcements",
		})
	}
	return c.JSON(fiber.Map{
		"announcements": announcements,
	})
}

// DeleteAnnouncement deletes an announcement with its comments
func DeleteAnnouncement(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	var announcement models.Announcement
	if err := db.First(&announcement, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "Announcement not found",
		})
	}

	db.Where("announcement_id = ?", announcement.ID).Delete(&models.AnnouncementComment{})
	db.Where("announcement_id = ?", announcement.ID).Delete(&models.AnnouncementRead{})
	if err := db.Delete(&announcement).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to delete announcement",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Announcement deleted successfully",
	})
}
