// handlers/resources.go - Study resource HTTP handlers
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"collegeconnect/middleware"
	"collegeconnect/models"
	"collegeconnect/services"
)

// CreateResource uploads a resource record
// POST /api/resources
func CreateResource(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var input services.CreateResourceInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	resource, err := resourceService.CreateResource(input, userID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "resource": resource})
}

// ListResources lists public resources with filters
// GET /api/resources?category=&subject=&search=
func ListResources(c *fiber.Ctx) error {
	resources, err := resourceService.ListResources(c.Query("category"), c.Query("subject"), c.Query("search"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "resources": resources, "count": len(resources)})
}

// GetResource returns one resource with comments and likes
// GET /api/resources/:id
func GetResource(c *fiber.Ctx) error {
	resourceID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid resource ID"})
	}

	resource, err := resourceService.GetResource(resourceID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "resource": resource})
}

// DownloadResource bumps the counter and returns the file URL
// POST /api/resources/:id/download
func DownloadResource(c *fiber.Ctx) error {
	resourceID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid resource ID"})
	}

	fileURL, err := resourceService.RecordDownload(resourceID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "file_url": fileURL})
}

// LikeResource toggles the caller's like
// POST /api/resources/:id/like
func LikeResource(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	resourceID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid resource ID"})
	}

	liked, err := resourceService.ToggleLike(resourceID, userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "liked": liked})
}

// CommentResource adds a comment
// POST /api/resources/:id/comments
func CommentResource(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	resourceID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid resource ID"})
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	comment, err := resourceService.AddComment(resourceID, userID, req.Text)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "comment": comment})
}

// UpdateResource edits resource metadata; creator only
// PUT /api/resources/:id
func UpdateResource(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	resourceID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid resource ID"})
	}

	var input services.UpdateResourceInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	resource, err := resourceService.UpdateResource(resourceID, userID, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "resource": resource})
}

// DeleteResource removes a resource; creator or admin
// DELETE /api/resources/:id
func DeleteResource(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	resourceID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid resource ID"})
	}

	if err := resourceService.DeleteResource(resourceID, userID, models.UserRole(middleware.GetUserRole(c))); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Resource deleted"})
}

// GetUserResources lists resources the caller uploaded
// GET /api/resources/my-resources
func GetUserResources(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	resources, err := resourceService.ListUserResources(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "resources": resources, "count": len(resources)})
}
