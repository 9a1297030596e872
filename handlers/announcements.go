// handlers/announcements.go - Announcement HTTP handlers
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"collegeconnect/middleware"
	"collegeconnect/models"
	"collegeconnect/services"
)

// CreateAnnouncement publishes an announcement
// POST /api/announcements
func CreateAnnouncement(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var input services.CreateAnnouncementInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	announcement, err := announcementService.CreateAnnouncement(input, userID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "announcement": announcement})
}

// ListAnnouncements lists announcements, pinned first
// GET /api/announcements?category=
func ListAnnouncements(c *fiber.Ctx) error {
	announcements, err := announcementService.ListAnnouncements(c.Query("category"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "announcements": announcements, "count": len(announcements)})
}

// GetAnnouncement returns one announcement and marks it read for the caller
// GET /api/announcements/:id
func GetAnnouncement(c *fiber.Ctx) error {
	announcementID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid announcement ID"})
	}

	viewerID, _ := middleware.OptionalUserID(c)
	announcement, err := announcementService.GetAnnouncement(announcementID, viewerID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "announcement": announcement})
}

// GetUnreadAnnouncementCount returns the caller's unread counter
// GET /api/announcements/unread-count
func GetUnreadAnnouncementCount(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	count, err := announcementService.UnreadCount(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "unread": count})
}

// CommentAnnouncement adds a comment
// POST /api/announcements/:id/comments
func CommentAnnouncement(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	announcementID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid announcement ID"})
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	comment, err := announcementService.AddComment(announcementID, userID, req.Text)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "comment": comment})
}

// UpdateAnnouncement edits an announcement; author or admin
// PUT /api/announcements/:id
func UpdateAnnouncement(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	announcementID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid announcement ID"})
	}

	var input services.UpdateAnnouncementInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	announcement, err := announcementService.UpdateAnnouncement(announcementID, userID, models.UserRole(middleware.GetUserRole(c)), input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "announcement": announcement})
}

// DeleteAnnouncement removes an announcement; author or admin
// DELETE /api/announcements/:id
func DeleteAnnouncement(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	announcementID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid announcement ID"})
	}

	if err := announcementService.DeleteAnnouncement(announcementID, userID, models.UserRole(middleware.GetUserRole(c))); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Announcement deleted"})
}
