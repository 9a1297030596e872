// handlers/events.go - Campus event HTTP handlers
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"collegeconnect/middleware"
	"collegeconnect/models"
	"collegeconnect/services"
)

// CreateEvent creates an event; global admins only
// POST /api/events
func CreateEvent(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var input services.CreateEventInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	event, err := eventService.CreateEvent(input, userID, models.UserRole(middleware.GetUserRole(c)))
	if err != nil {
		if errors.Is(err, services.ErrNotAuthorized) {
			return serviceError(c, err)
		}
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "event": event})
}

// ListEvents lists public events with filters and pagination
// GET /api/events?category=&search=&upcoming=true&page=&page_size=
func ListEvents(c *fiber.Ctx) error {
	filter := services.EventFilter{
		Category: models.EventCategory(c.Query("category")),
		Search:   c.Query("search"),
		Upcoming: c.QueryBool("upcoming"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	events, total, err := eventService.ListEvents(filter)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "events": events, "total": total, "page": filter.Page})
}

// GetEvent returns one event with attendees
// GET /api/events/:id
func GetEvent(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid event ID"})
	}

	event, err := eventService.GetEvent(eventID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "event": event})
}

// AttendEvent records the caller's RSVP
// POST /api/events/:id/attend
func AttendEvent(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid event ID"})
	}

	var req struct {
		Status models.AttendeeStatus `json:"status"`
	}
	_ = c.BodyParser(&req)
	if req.Status == "" {
		req.Status = models.AttendeeGoing
	}

	if err := eventService.Attend(eventID, userID, req.Status); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "status": req.Status})
}

// UpdateEvent edits an event; organizer or admin
// PUT /api/events/:id
func UpdateEvent(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid event ID"})
	}

	var input services.UpdateEventInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	event, err := eventService.UpdateEvent(eventID, userID, models.UserRole(middleware.GetUserRole(c)), input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "event": event})
}

// DeleteEvent removes an event; organizer or admin
// DELETE /api/events/:id
func DeleteEvent(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid event ID"})
	}

	if err := eventService.DeleteEvent(eventID, userID, models.UserRole(middleware.GetUserRole(c))); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Event deleted"})
}

// GetUserEvents lists events the caller organizes or attends
// GET /api/events/my-events
func GetUserEvents(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	events, err := eventService.ListUserEvents(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "events": events, "count": len(events)})
}
