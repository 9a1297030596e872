// handlers/messages_test.go - Message routes over HTTP
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"collegeconnect/database"
	"collegeconnect/middleware"
	"collegeconnect/models"
	"collegeconnect/services"
)

// newTestApp wires the handler layer against an in-memory database and mounts
// the message routes the way the server does.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.GroupMember{},
		&models.GroupJoinRequest{},
		&models.Message{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	database.SetDB(db)
	t.Cleanup(func() { database.SetDB(nil) })
	InitHandlers(services.NewHub())

	app := fiber.New()
	api := app.Group("/api")
	api.Get("/messages/group/:groupId", middleware.AuthMiddleware, GetGroupMessages)
	api.Post("/messages/group/:groupId", middleware.AuthMiddleware, SendMessage)
	api.Delete("/messages/:id", middleware.AuthMiddleware, DeleteMessage)
	return app
}

func memberWithToken(t *testing.T, groupID uint) (models.User, string) {
	t.Helper()

	db := database.GetDB()
	user := models.User{
		Username: fmt.Sprintf("member-%d", groupID),
		Email:    fmt.Sprintf("member-%d@test.edu", groupID),
		Password: "not-a-real-hash",
		Role:     models.RoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if err := db.Create(&models.GroupMember{GroupID: groupID, UserID: user.ID, Role: models.GroupRoleMember}).Error; err != nil {
		t.Fatalf("failed to add member: %v", err)
	}
	token, err := generateToken(user)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return user, token
}

func TestMessageRoutesUseGroupPath(t *testing.T) {
	app := newTestApp(t)
	db := database.GetDB()

	group := models.Group{Name: "Robotics", Category: models.CategoryTechnical, CreatorID: 1}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("failed to create group: %v", err)
	}
	_, token := memberWithToken(t, group.ID)

	body := strings.NewReader(`{"content":"first post"}`)
	req, _ := http.NewRequest("POST", fmt.Sprintf("/api/messages/group/%d", group.ID), body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("send request failed: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201 from POST /api/messages/group/:groupId, got %d", resp.StatusCode)
	}

	req, _ = http.NewRequest("GET", fmt.Sprintf("/api/messages/group/%d", group.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("history request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 from GET /api/messages/group/:groupId, got %d", resp.StatusCode)
	}

	var payload struct {
		Success  bool             `json:"success"`
		Messages []models.Message `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(payload.Messages) != 1 || payload.Messages[0].Content != "first post" {
		t.Fatalf("expected the posted message in history, got %+v", payload.Messages)
	}
}

func TestMessageRoutesRejectNonMembers(t *testing.T) {
	app := newTestApp(t)
	db := database.GetDB()

	group := models.Group{Name: "Drama Club", Category: models.CategoryCultural, CreatorID: 1}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("failed to create group: %v", err)
	}

	outsider := models.User{Username: "outsider", Email: "outsider@test.edu", Password: "x", Role: models.RoleUser}
	if err := db.Create(&outsider).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	token, err := generateToken(outsider)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	req, _ := http.NewRequest("GET", fmt.Sprintf("/api/messages/group/%d", group.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Fatalf("expected 403 for non-member history read, got %d", resp.StatusCode)
	}
}
