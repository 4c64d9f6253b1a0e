package screen

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"hostel-client/internal/model"
	"hostel-client/internal/poll"
	"hostel-client/internal/session"
)

// MessagingController drives the admin messaging screen. While a
// conversation is open it polls for new messages; the poll stops when the
// conversation closes.
type MessagingController struct {
	backend  Backend
	sessions session.Store
	poller   *poll.Poller
	interval time.Duration
	logger   *logrus.Logger

	mu             sync.Mutex
	user           *model.User
	conversationID int64
	messages       []model.Message
}

// NewMessagingController creates the messaging controller.
func NewMessagingController(backend Backend, sessions session.Store, interval time.Duration, logger *logrus.Logger) *MessagingController {
	return &MessagingController{
		backend:  backend,
		sessions: sessions,
		poller:   poll.New(logger),
		interval: interval,
		logger:   logger,
	}
}

// Admins fetches the administrators a conversation can be started with.
func (c *MessagingController) Admins(ctx context.Context) ([]model.Admin, error) {
	if _, err := c.sessions.Load(ctx); err != nil {
		return nil, err
	}
	return c.backend.Admins(ctx)
}

// Open starts (or resumes) the conversation with an admin and begins
// polling for messages. onUpdate receives each fresh message snapshot.
func (c *MessagingController) Open(ctx context.Context, adminID int64, onUpdate func([]model.Message)) error {
	user, err := c.sessions.Load(ctx)
	if err != nil {
		return err
	}

	conv, err := c.backend.StartConversation(ctx, user.ID, adminID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.user = user
	c.conversationID = conv.ID
	c.messages = nil
	c.mu.Unlock()

	c.poller.Start(ctx, c.interval, func(pollCtx context.Context) {
		c.refresh(pollCtx, onUpdate)
	})
	return nil
}

func (c *MessagingController) refresh(ctx context.Context, onUpdate func([]model.Message)) {
	c.mu.Lock()
	convID := c.conversationID
	c.mu.Unlock()
	if convID == 0 {
		return
	}

	messages, err := c.backend.Messages(ctx, convID)
	if err != nil {
		c.logger.WithError(err).Debug("message poll failed")
		return
	}

	c.mu.Lock()
	c.messages = messages
	c.mu.Unlock()
	if onUpdate != nil {
		onUpdate(messages)
	}
}

// Send posts a message to the open conversation and refreshes immediately
// instead of waiting for the next poll tick.
func (c *MessagingController) Send(ctx context.Context, content string) error {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	c.mu.Lock()
	user := c.user
	convID := c.conversationID
	c.mu.Unlock()
	if user == nil || convID == 0 {
		return nil
	}

	if err := c.backend.SendMessage(ctx, convID, user.ID, content); err != nil {
		return err
	}
	c.refresh(ctx, nil)
	return nil
}

// Messages returns the latest message snapshot.
func (c *MessagingController) Messages() []model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Close stops the poll and forgets the open conversation.
func (c *MessagingController) Close() {
	c.poller.Stop()
	c.mu.Lock()
	c.conversationID = 0
	c.messages = nil
	c.mu.Unlock()
}
