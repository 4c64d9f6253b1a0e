package screen

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"hostel-client/internal/model"
	"hostel-client/internal/session"
)

// mockBackend implements Backend with overridable functions, so each test
// supplies only the calls it cares about.
type mockBackend struct {
	SignInFunc               func(ctx context.Context, email, password string) (*model.User, error)
	SignUpFunc               func(ctx context.Context, name, studentID, email, password string) error
	HostelsFunc              func(ctx context.Context) ([]model.Hostel, error)
	ApplicationsFunc         func(ctx context.Context) ([]model.Application, error)
	ApplyHostelFunc          func(ctx context.Context, userID, hostelID int64) error
	RoomsFunc                func(ctx context.Context) ([]model.Room, error)
	ApplyRoomFunc            func(ctx context.Context, userID, roomID int64) error
	ComplaintsFunc           func(ctx context.Context, userID int64) ([]model.Complaint, error)
	SubmitMaintenanceFunc    func(ctx context.Context, req model.MaintenanceRequest) error
	AdminsFunc               func(ctx context.Context) ([]model.Admin, error)
	StartConversationFunc    func(ctx context.Context, userID, adminID int64) (*model.Conversation, error)
	MessagesFunc             func(ctx context.Context, conversationID int64) ([]model.Message, error)
	SendMessageFunc          func(ctx context.Context, conversationID, senderUserID int64, content string) error
	NotificationsFunc        func(ctx context.Context, userID int64) ([]model.UserNotification, error)
	MarkNotificationReadFunc func(ctx context.Context, userNotificationID int64) error
}

func (m *mockBackend) SignIn(ctx context.Context, email, password string) (*model.User, error) {
	return m.SignInFunc(ctx, email, password)
}

func (m *mockBackend) SignUp(ctx context.Context, name, studentID, email, password string) error {
	return m.SignUpFunc(ctx, name, studentID, email, password)
}

func (m *mockBackend) Hostels(ctx context.Context) ([]model.Hostel, error) {
	return m.HostelsFunc(ctx)
}

func (m *mockBackend) Applications(ctx context.Context) ([]model.Application, error) {
	return m.ApplicationsFunc(ctx)
}

func (m *mockBackend) ApplyHostel(ctx context.Context, userID, hostelID int64) error {
	return m.ApplyHostelFunc(ctx, userID, hostelID)
}

func (m *mockBackend) Rooms(ctx context.Context) ([]model.Room, error) {
	return m.RoomsFunc(ctx)
}

func (m *mockBackend) ApplyRoom(ctx context.Context, userID, roomID int64) error {
	return m.ApplyRoomFunc(ctx, userID, roomID)
}

func (m *mockBackend) Complaints(ctx context.Context, userID int64) ([]model.Complaint, error) {
	return m.ComplaintsFunc(ctx, userID)
}

func (m *mockBackend) SubmitMaintenance(ctx context.Context, req model.MaintenanceRequest) error {
	return m.SubmitMaintenanceFunc(ctx, req)
}

func (m *mockBackend) Admins(ctx context.Context) ([]model.Admin, error) {
	return m.AdminsFunc(ctx)
}

func (m *mockBackend) StartConversation(ctx context.Context, userID, adminID int64) (*model.Conversation, error) {
	return m.StartConversationFunc(ctx, userID, adminID)
}

func (m *mockBackend) Messages(ctx context.Context, conversationID int64) ([]model.Message, error) {
	return m.MessagesFunc(ctx, conversationID)
}

func (m *mockBackend) SendMessage(ctx context.Context, conversationID, senderUserID int64, content string) error {
	return m.SendMessageFunc(ctx, conversationID, senderUserID, content)
}

func (m *mockBackend) Notifications(ctx context.Context, userID int64) ([]model.UserNotification, error) {
	return m.NotificationsFunc(ctx, userID)
}

func (m *mockBackend) MarkNotificationRead(ctx context.Context, userNotificationID int64) error {
	return m.MarkNotificationReadFunc(ctx, userNotificationID)
}

// fakeSessions is an in-memory session.Store.
type fakeSessions struct {
	user *model.User
}

func (f *fakeSessions) Save(_ context.Context, user *model.User) error {
	copied := *user
	f.user = &copied
	return nil
}

func (f *fakeSessions) Load(_ context.Context) (*model.User, error) {
	if f.user == nil {
		return nil, session.ErrNoSession
	}
	copied := *f.user
	return &copied, nil
}

func (f *fakeSessions) Clear(_ context.Context) error {
	f.user = nil
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
