package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"collegeconnect/models"
)

func newTestDB(t *testing.T) *gorm.DB {
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
		&models.Event{},
		&models.EventAttendee{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@test.edu", username),
		Password: "not-a-real-hash",
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func createTestGroup(t *testing.T, svc *GroupService, creatorID uint, name string, private bool, maxMembers int) *models.Group {
	t.Helper()

	group, err := svc.CreateGroup(CreateGroupInput{
		Name:        name,
		Description: "a group for testing",
		Category:    models.CategoryTechnical,
		IsPrivate:   private,
		MaxMembers:  maxMembers,
	}, creatorID)
	if err != nil {
		t.Fatalf("failed to create group %s: %v", name, err)
	}
	return group
}
