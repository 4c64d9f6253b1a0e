// Package screen holds one controller per user-facing page. Controllers
// load the session, call the backend gateway, pipe housing collections
// through the reconciliation engine, and return view models for rendering.
package screen

import (
	"context"

	"hostel-client/internal/model"
)

// Backend is the slice of the API gateway the screens consume.
type Backend interface {
	SignIn(ctx context.Context, email, password string) (*model.User, error)
	SignUp(ctx context.Context, name, studentID, email, password string) error
	Hostels(ctx context.Context) ([]model.Hostel, error)
	Applications(ctx context.Context) ([]model.Application, error)
	ApplyHostel(ctx context.Context, userID, hostelID int64) error
	Rooms(ctx context.Context) ([]model.Room, error)
	ApplyRoom(ctx context.Context, userID, roomID int64) error
	Complaints(ctx context.Context, userID int64) ([]model.Complaint, error)
	SubmitMaintenance(ctx context.Context, req model.MaintenanceRequest) error
	Admins(ctx context.Context) ([]model.Admin, error)
	StartConversation(ctx context.Context, userID, adminID int64) (*model.Conversation, error)
	Messages(ctx context.Context, conversationID int64) ([]model.Message, error)
	SendMessage(ctx context.Context, conversationID, senderUserID int64, content string) error
	Notifications(ctx context.Context, userID int64) ([]model.UserNotification, error)
	MarkNotificationRead(ctx context.Context, userNotificationID int64) error
}
