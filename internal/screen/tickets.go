package screen

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"hostel-client/internal/model"
	"hostel-client/internal/session"
)

// TicketsController drives the complaint list and maintenance screens.
type TicketsController struct {
	backend  Backend
	sessions session.Store
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewTicketsController creates the tickets controller.
func NewTicketsController(backend Backend, sessions session.Store, logger *logrus.Logger) *TicketsController {
	return &TicketsController{
		backend:  backend,
		sessions: sessions,
		validate: validator.New(),
		logger:   logger,
	}
}

// Complaints fetches the user's complaint tickets. A fetch failure leaves
// the list empty rather than failing the screen.
func (c *TicketsController) Complaints(ctx context.Context) ([]model.Complaint, error) {
	user, err := c.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}

	complaints, err := c.backend.Complaints(ctx, user.ID)
	if err != nil {
		c.logger.WithError(err).Error("failed to fetch complaints")
		return []model.Complaint{}, nil
	}
	return complaints, nil
}

// SubmitMaintenance validates and files a maintenance ticket.
func (c *TicketsController) SubmitMaintenance(ctx context.Context, title, details string) error {
	user, err := c.sessions.Load(ctx)
	if err != nil {
		return err
	}

	req := model.MaintenanceRequest{UserID: user.ID, Title: title, Details: details}
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid maintenance request: %w", err)
	}
	return c.backend.SubmitMaintenance(ctx, req)
}
