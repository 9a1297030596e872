// handlers/notifications.go - Notification HTTP handlers
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"collegeconnect/middleware"
)

// GetNotifications lists the caller's notifications, newest first
// GET /api/notifications?unread=true&limit=
func GetNotifications(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	notifications, err := notificationService.List(userID, c.QueryBool("unread"), c.QueryInt("limit"))
	if err != nil {
		return serviceError(c, err)
	}

	unread, err := notificationService.UnreadCount(userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"notifications": notifications,
		"unread":        unread,
	})
}

// MarkNotificationRead marks one notification read
// POST /api/notifications/:id/read
func MarkNotificationRead(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid notification ID"})
	}

	if err := notificationService.MarkRead(userID, notificationID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// MarkAllNotificationsRead marks every unread notification read
// POST /api/notifications/read-all
func MarkAllNotificationsRead(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	if err := notificationService.MarkAllRead(userID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// DeleteNotification removes one of the caller's notifications
// DELETE /api/notifications/:id
func DeleteNotification(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid notification ID"})
	}

	if err := notificationService.Delete(userID, notificationID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
