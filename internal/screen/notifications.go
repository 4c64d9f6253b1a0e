package screen

import (
	"context"

	"github.com/sirupsen/logrus"

	"hostel-client/internal/model"
	"hostel-client/internal/session"
)

// NotificationsController drives the notification list screen.
type NotificationsController struct {
	backend  Backend
	sessions session.Store
	logger   *logrus.Logger
}

// NewNotificationsController creates the notifications controller.
func NewNotificationsController(backend Backend, sessions session.Store, logger *logrus.Logger) *NotificationsController {
	return &NotificationsController{backend: backend, sessions: sessions, logger: logger}
}

// List fetches the user's notifications. A fetch failure leaves the list
// empty rather than failing the screen.
func (c *NotificationsController) List(ctx context.Context) ([]model.UserNotification, error) {
	user, err := c.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}

	notifications, err := c.backend.Notifications(ctx, user.ID)
	if err != nil {
		c.logger.WithError(err).Error("failed to fetch notifications")
		return []model.UserNotification{}, nil
	}
	return notifications, nil
}

// MarkRead marks one notification read on the backend and flips the local
// flag in place so the list updates without a refetch. Already-read
// notifications are left alone.
func (c *NotificationsController) MarkRead(ctx context.Context, notifications []model.UserNotification, id int64) error {
	for i := range notifications {
		if notifications[i].ID != id || notifications[i].IsRead {
			continue
		}
		if err := c.backend.MarkNotificationRead(ctx, id); err != nil {
			return err
		}
		notifications[i].IsRead = true
		return nil
	}
	return nil
}
