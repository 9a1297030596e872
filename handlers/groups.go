// handlers/groups.go - Group lifecycle and membership HTTP handlers
package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"collegeconnect/middleware"
	"collegeconnect/models"
	"collegeconnect/services"
)

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// CreateGroup creates a new group with the caller as its admin
// POST /api/groups
func CreateGroup(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var input services.CreateGroupInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	group, err := groupService.CreateGroup(input, userID)
	if err != nil {
		log.Printf("❌ Group creation failed: %v", err)
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "group": group})
}

// ListGroups lists groups visible to the caller: everything when
// authenticated, public-only when anonymous. Supports ?search= and ?category=
// GET /api/groups
func ListGroups(c *fiber.Ctx) error {
	var viewerID *uint
	if id, ok := middleware.OptionalUserID(c); ok {
		viewerID = &id
	}

	search := c.Query("search")
	category := models.GroupCategory(c.Query("category"))

	groups, err := groupService.ListGroups(viewerID, search, category)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "groups": groups, "count": len(groups)})
}

// ListPublicGroups lists public groups without viewer annotation
// GET /api/groups/public
func ListPublicGroups(c *fiber.Ctx) error {
	groups, err := groupService.ListPublicGroups()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "groups": groups, "count": len(groups)})
}

// DiscoverGroups lists public groups with viewer annotation and filters
// GET /api/groups/discover
func DiscoverGroups(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	search := c.Query("search")
	category := models.GroupCategory(c.Query("category"))

	groups, err := groupService.DiscoverGroups(userID, search, category)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "groups": groups, "count": len(groups)})
}

// GetUserGroups lists the groups the caller belongs to
// GET /api/groups/my-groups
func GetUserGroups(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	groups, err := groupService.ListUserGroups(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "groups": groups, "count": len(groups)})
}

// GetGroup returns one group with members preloaded
// GET /api/groups/:id
func GetGroup(c *fiber.Ctx) error {
	groupID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid group ID"})
	}

	group, err := groupService.GetGroup(groupID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "group": group})
}

// JoinGroup admits the caller to a public group or queues a join request for
// a private one
// POST /api/groups/:id/join
func JoinGroup(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	groupID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid group ID"})
	}

	outcome, err := groupService.JoinGroup(groupID, userID)
	if err != nil {
		return serviceError(c, err)
	}

	message := "Joined group successfully"
	if outcome == services.JoinOutcomePending {
		message = "Join request sent"
	}
	return c.JSON(fiber.Map{"success": true, "status": outcome, "message": message})
}

// LeaveGroup removes the caller's membership; leaving a group you are not in
// is a no-op
// POST /api/groups/:id/leave
func LeaveGroup(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	groupID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid group ID"})
	}

	if err := groupService.LeaveGroup(groupID, userID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Left group"})
}

// ListJoinRequests lists pending requests; group creator or global admin only
// GET /api/groups/:id/join-requests
func ListJoinRequests(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	groupID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid group ID"})
	}

	requests, err := groupService.ListJoinRequests(groupID, userID, models.UserRole(middleware.GetUserRole(c)))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "requests": requests, "count": len(requests)})
}

// ApproveJoinRequest turns a pending request into a membership
// POST /api/groups/:id/approve/:userId
func ApproveJoinRequest(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	groupID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid group ID"})
	}
	requesterID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}

	err = groupService.ApproveJoinRequest(groupID, requesterID, userID, models.UserRole(middleware.GetUserRole(c)))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Request approved"})
}

// RejectJoinRequest discards a pending request
// POST /api/groups/:id/reject/:userId
func RejectJoinRequest(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	groupID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid group ID"})
	}
	requesterID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}

	err = groupService.RejectJoinRequest(groupID, requesterID, userID, models.UserRole(middleware.GetUserRole(c)))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Request rejected"})
}

// UpdateGroup updates group metadata; exact creator only
// PUT /api/groups/:id
func UpdateGroup(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	groupID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid group ID"})
	}

	var input services.UpdateGroupInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	group, err := groupService.UpdateGroup(groupID, userID, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "group": group})
}

// DeleteGroup deletes a group and its membership records; exact creator only
// DELETE /api/groups/:id
func DeleteGroup(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	groupID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid group ID"})
	}

	if err := groupService.DeleteGroup(groupID, userID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Group deleted"})
}
