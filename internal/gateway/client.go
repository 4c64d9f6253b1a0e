package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"hostel-client/config"
	"hostel-client/internal/model"
)

// Client issues HTTP requests to the hostel backend and returns typed
// payloads or a typed failure. All collection payloads are normalized at
// this boundary so callers never see nil nested collections.
type Client struct {
	http    *resty.Client
	baseURL string
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	logger  *logrus.Logger
}

// NewClient creates a backend client for the configured API base URL.
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.API.BaseURL).
		SetTimeout(cfg.API.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			req.SetHeader("X-Request-ID", uuid.NewString())
			return nil
		})

	return &Client{
		http:    httpClient,
		baseURL: cfg.API.BaseURL,
		limiter: rate.NewLimiter(rate.Limit(cfg.API.RatePerSec), cfg.API.RateBurst),
		breaker: newBreaker("hostel-api", logger),
		logger:  logger,
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func newBreaker(name string, logger *logrus.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 2
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			// Client-side rejections must not trip the breaker.
			apiErr, ok := err.(*APIError)
			return ok && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
		},
	})
}

// do executes one request through the rate limiter and circuit breaker.
// out, when non-nil, receives the decoded 2xx response body.
func (c *Client) do(ctx context.Context, method, url string, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("request limiter: %w", err)
	}

	_, err := c.breaker.Execute(func() (any, error) {
		req := c.http.R().SetContext(ctx)
		if body != nil {
			req.SetBody(body)
		}
		if out != nil {
			req.SetResult(out)
		}

		resp, err := req.Execute(method, url)
		if err != nil {
			c.logger.WithFields(logrus.Fields{
				"method": method,
				"url":    url,
			}).WithError(err).Warn("backend request failed")
			return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
		}
		if resp.IsError() {
			return nil, newAPIError(resp)
		}
		return nil, nil
	})
	return err
}

// SignIn authenticates the user and returns the identity record.
// The backend answers 200 or 201 on success depending on version.
func (c *Client) SignIn(ctx context.Context, email, password string) (*model.User, error) {
	payload := map[string]string{"email": email, "password": password}
	var envelope struct {
		User    model.User `json:"user"`
		Message string     `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/user/signin", payload, &envelope); err != nil {
		return nil, err
	}
	return &envelope.User, nil
}

// SignUp registers a new student account.
func (c *Client) SignUp(ctx context.Context, name, studentID, email, password string) error {
	payload := map[string]string{
		"name":       name,
		"student_id": studentID,
		"email":      email,
		"password":   password,
	}
	return c.do(ctx, http.MethodPost, "/api/users/signup", payload, nil)
}

// Hostels fetches all hostel snapshots with nested rooms and statuses.
func (c *Client) Hostels(ctx context.Context) ([]model.Hostel, error) {
	var hostels []model.Hostel
	if err := c.do(ctx, http.MethodGet, "/api/hostels/all", nil, &hostels); err != nil {
		return nil, err
	}
	for i := range hostels {
		hostels[i].Normalize()
	}
	return hostels, nil
}

// Applications fetches every hostel application record.
func (c *Client) Applications(ctx context.Context) ([]model.Application, error) {
	var apps []model.Application
	if err := c.do(ctx, http.MethodGet, "/api/hostels/all-applications", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ApplyHostel submits a hostel application for the user.
func (c *Client) ApplyHostel(ctx context.Context, userID, hostelID int64) error {
	payload := map[string]int64{"userId": userID, "hostelId": hostelID}
	return c.do(ctx, http.MethodPost, "/api/user/apply-hostel", payload, nil)
}

// Rooms fetches the flat room list.
func (c *Client) Rooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := c.do(ctx, http.MethodGet, "/api/room/all", nil, &rooms); err != nil {
		return nil, err
	}
	for i := range rooms {
		rooms[i].Normalize()
	}
	return rooms, nil
}

// ApplyRoom submits a room application for the user.
func (c *Client) ApplyRoom(ctx context.Context, userID, roomID int64) error {
	payload := map[string]int64{"userId": userID, "roomId": roomID}
	return c.do(ctx, http.MethodPost, "/api/user/apply-room", payload, nil)
}

// Complaints fetches the user's complaint tickets.
func (c *Client) Complaints(ctx context.Context, userID int64) ([]model.Complaint, error) {
	var complaints []model.Complaint
	url := fmt.Sprintf("/api/complaint/%d", userID)
	if err := c.do(ctx, http.MethodGet, url, nil, &complaints); err != nil {
		return nil, err
	}
	return complaints, nil
}

// SubmitMaintenance files a maintenance ticket.
func (c *Client) SubmitMaintenance(ctx context.Context, req model.MaintenanceRequest) error {
	return c.do(ctx, http.MethodPost, "/api/user/submit-maintenance", req, nil)
}

// Admins fetches the administrators a student can message.
func (c *Client) Admins(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	if err := c.do(ctx, http.MethodGet, "/api/admin/all-admins", nil, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// StartConversation opens (or resumes) the thread between a user and an admin.
func (c *Client) StartConversation(ctx context.Context, userID, adminID int64) (*model.Conversation, error) {
	payload := map[string]int64{"user_id": userID, "admin_id": adminID}
	var conv model.Conversation
	if err := c.do(ctx, http.MethodPost, "/api/messaging/conversation/start", payload, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// Messages fetches the messages of a conversation, oldest first.
func (c *Client) Messages(ctx context.Context, conversationID int64) ([]model.Message, error) {
	var messages []model.Message
	url := fmt.Sprintf("/api/messaging/messages/%d", conversationID)
	if err := c.do(ctx, http.MethodGet, url, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage appends a message to a conversation.
func (c *Client) SendMessage(ctx context.Context, conversationID, senderUserID int64, content string) error {
	payload := map[string]any{
		"conversation_id": conversationID,
		"sender_user_id":  senderUserID,
		"content":         content,
	}
	return c.do(ctx, http.MethodPost, "/api/messaging/message/send", payload, nil)
}

// Notifications fetches the user's notifications.
func (c *Client) Notifications(ctx context.Context, userID int64) ([]model.UserNotification, error) {
	var notifications []model.UserNotification
	url := fmt.Sprintf("/api/user/notifications/%d", userID)
	if err := c.do(ctx, http.MethodGet, url, nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead marks one user notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, userNotificationID int64) error {
	url := fmt.Sprintf("/api/user/update-notification/%d", userNotificationID)
	return c.do(ctx, http.MethodPost, url, nil, nil)
}

// Put dispatches a PUT to an absolute URL. Used by the QR deep-link
// resolver after host rewriting; the URL bypasses the configured base.
func (c *Client) Put(ctx context.Context, absoluteURL string) error {
	return c.do(ctx, http.MethodPut, absoluteURL, nil, nil)
}
