// services/errors.go - Error taxonomy shared by the service layer.
//
// Handlers map these to HTTP statuses: not-found errors to 404,
// authorization failures to 403, precondition failures to 400.
package services

import "errors"

var (
	ErrGroupNotFound   = errors.New("group not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrRequestNotFound = errors.New("join request not found")

	ErrNotificationNotFound = errors.New("notification not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrResourceNotFound     = errors.New("resource not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")

	ErrNotAuthorized = errors.New("not authorized")
	ErrNotMember     = errors.New("not a member of this group")

	ErrAlreadyMember    = errors.New("already a member of this group")
	ErrDuplicateRequest = errors.New("join request already sent")
	ErrGroupFull        = errors.New("group is at maximum capacity")
	ErrEmptyContent     = errors.New("message content is required")
)
