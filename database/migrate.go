// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"collegeconnect/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.GroupMember{},
		&models.GroupJoinRequest{},
		&models.Message{},
		&models.Event{},
		&models.EventAttendee{},
		&models.Resource{},
		&models.ResourceLike{},
		&models.ResourceComment{},
		&models.Announcement{},
		&models.AnnouncementComment{},
		&models.AnnouncementRead{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes AutoMigrate does not cover.
func createIndexes() {
	db := GetDB()

	// Search paths used by group discovery and event listings
	db.Exec("CREATE INDEX IF NOT EXISTS idx_groups_created ON groups(created_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_groups_private ON groups(is_private)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_messages_group_created ON messages(group_id, created_at)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_date)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_announcements_created ON announcements(created_at DESC)")
}
