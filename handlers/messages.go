// handlers/messages.go - Group chat HTTP handlers
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"collegeconnect/middleware"
	"collegeconnect/services"
)

// GetGroupMessages returns a group's chat history, oldest first; members only
// GET /api/messages/group/:groupId
func GetGroupMessages(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	groupID, err := parseIDParam(c, "groupId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid group ID"})
	}

	messages, err := messageService.GetGroupMessages(userID, groupID, c.QueryInt("limit"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "messages": messages, "count": len(messages)})
}

// SendMessage posts a message to a group's channel; members only. The stored
// message (server id and timestamp) is broadcast to live subscribers and
// returned to the sender.
// POST /api/messages/group/:groupId
func SendMessage(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	groupID, err := parseIDParam(c, "groupId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid group ID"})
	}

	var input services.SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	message, err := messageService.SendMessage(userID, groupID, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "message": message})
}

// DeleteMessage removes a message; sender only
// DELETE /api/messages/:id
func DeleteMessage(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	messageID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid message ID"})
	}

	if err := messageService.DeleteMessage(userID, messageID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Message deleted"})
}
