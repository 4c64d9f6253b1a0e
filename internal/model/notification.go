package model

// NotificationBody is the shared content of a notification.
type NotificationBody struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// UserNotification is a notification as delivered to one user, carrying the
// per-user read flag alongside the shared body.
type UserNotification struct {
	ID           int64            `json:"id"`
	IsRead       bool             `json:"is_read"`
	Notification NotificationBody `json:"notification"`
}
