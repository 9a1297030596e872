// handlers/users.go - User profile HTTP handlers
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"collegeconnect/database"
	"collegeconnect/middleware"
	"collegeconnect/models"
)

// GetUser returns a user's public profile
// GET /api/users/:id
func GetUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}

type UpdateProfileRequest struct {
	CollegeName string   `json:"college_name"`
	Year        int      `json:"year"`
	Branch      string   `json:"branch"`
	Course      string   `json:"course"`
	RollNo      string   `json:"rollno"`
	Contact     string   `json:"contact"`
	Skills      []string `json:"skills"`
	ProfilePic  string   `json:"profile_pic"`
	Resume      string   `json:"resume"`
}

// UpdateProfile updates the caller's own profile fields
// PUT /api/users/profile
func UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	updates := map[string]interface{}{}
	if req.CollegeName != "" {
		updates["college_name"] = req.CollegeName
	}
	if req.Year != 0 {
		updates["year"] = req.Year
	}
	if req.Branch != "" {
		updates["branch"] = req.Branch
	}
	if req.Course != "" {
		updates["course"] = req.Course
	}
	if req.RollNo != "" {
		updates["roll_no"] = req.RollNo
	}
	if req.Contact != "" {
		updates["contact"] = req.Contact
	}
	if req.ProfilePic != "" {
		updates["profile_pic"] = req.ProfilePic
	}
	if req.Resume != "" {
		updates["resume"] = req.Resume
	}
	if len(updates) > 0 {
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update profile"})
		}
	}
	if req.Skills != nil {
		if err := db.Model(&user).Update("skills", req.Skills).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update profile"})
		}
	}

	db.First(&user, userID)
	return c.JSON(fiber.Map{"success": true, "user": user})
}
