// handlers/init.go - Handler wiring
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"collegeconnect/database"
	"collegeconnect/services"
)

var (
	groupService        *services.GroupService
	messageService      *services.MessageService
	notificationService *services.NotificationService
	eventService        *services.EventService
	resourceService     *services.ResourceService
	announcementService *services.AnnouncementService
	hub                 *services.Hub
	wsRouter            *socketRouter
)

// InitHandlers wires the service layer. Must run after database.InitDB.
func InitHandlers(h *services.Hub) {
	db := database.GetDB()
	if db == nil {
		panic("Database not initialized before InitHandlers")
	}

	hub = h
	notificationService = services.NewNotificationService(db, hub)
	groupService = services.NewGroupService(db, notificationService)
	messageService = services.NewMessageService(db, hub)
	eventService = services.NewEventService(db)
	resourceService = services.NewResourceService(db)
	announcementService = services.NewAnnouncementService(db, notificationService)
	wsRouter = &socketRouter{hub: hub, members: groupService}
}

// serviceError maps service-layer sentinels onto HTTP responses. Unknown
// errors become a generic 500 so internals never leak.
func serviceError(c *fiber.Ctx, err error) error {
	status := 500
	message := "Internal server error"

	switch {
	case errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrMessageNotFound),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrNotificationNotFound),
		errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrResourceNotFound),
		errors.Is(err, services.ErrAnnouncementNotFound):
		status = 404
		message = err.Error()
	case errors.Is(err, services.ErrNotAuthorized),
		errors.Is(err, services.ErrNotMember):
		status = 403
		message = err.Error()
	case errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrDuplicateRequest),
		errors.Is(err, services.ErrGroupFull),
		errors.Is(err, services.ErrEmptyContent):
		status = 400
		message = err.Error()
	}

	return c.Status(status).JSON(fiber.Map{"success": false, "error": message})
}
