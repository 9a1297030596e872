package services

import (
	"errors"
	"testing"
	"time"

	"collegeconnect/models"
)

func newEventInput(title string) CreateEventInput {
	start := time.Now().Add(24 * time.Hour)
	return CreateEventInput{
		Title:     title,
		Category:  models.EventWorkshop,
		StartDate: start,
		EndDate:   start.Add(2 * time.Hour),
	}
}

func TestCreateEventRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)

	student := createTestUser(t, db, "student", models.RoleUser)
	admin := createTestUser(t, db, "dean", models.RoleAdmin)

	if _, err := svc.CreateEvent(newEventInput("Hack Night"), student.ID, student.Role); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for non-admin, got %v", err)
	}
	var count int64
	db.Model(&models.Event{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no event rows after rejected create, got %d", count)
	}

	event, err := svc.CreateEvent(newEventInput("Hack Night"), admin.ID, admin.Role)
	if err != nil {
		t.Fatalf("admin create failed: %v", err)
	}
	if event.OrganizerID != admin.ID {
		t.Errorf("expected organizer %d, got %d", admin.ID, event.OrganizerID)
	}
}

func TestAttendRespectsCapacity(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)

	admin := createTestUser(t, db, "dean", models.RoleAdmin)
	input := newEventInput("Seminar")
	input.MaxAttendees = 1
	event, err := svc.CreateEvent(input, admin.ID, admin.Role)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	first := createTestUser(t, db, "first", models.RoleUser)
	second := createTestUser(t, db, "second", models.RoleUser)

	if err := svc.Attend(event.ID, first.ID, models.AttendeeGoing); err != nil {
		t.Fatalf("first RSVP failed: %v", err)
	}
	if err := svc.Attend(event.ID, second.ID, models.AttendeeGoing); err == nil {
		t.Error("expected second going RSVP to be rejected at capacity")
	}
	// A maybe never counts against capacity.
	if err := svc.Attend(event.ID, second.ID, models.AttendeeMaybe); err != nil {
		t.Errorf("maybe RSVP should succeed at capacity: %v", err)
	}
}
