package screen

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"hostel-client/internal/model"
	"hostel-client/internal/reconcile"
	"hostel-client/internal/session"
)

// placeholder is shown for fields with no value yet.
const placeholder = "--"

// HomeView is the rendered state of the home screen.
type HomeView struct {
	User           model.User
	AppliedHostel  string
	AssignedHostel string
	AssignedRoom   string
	PaymentAmount  string
	PaymentStatus  string
	MoveInDate     string
	MoveOutDate    string
	CanScan        bool
}

// HomeController builds the home screen from the user's application records.
type HomeController struct {
	backend  Backend
	sessions session.Store
	logger   *logrus.Logger
}

// NewHomeController creates the home controller.
func NewHomeController(backend Backend, sessions session.Store, logger *logrus.Logger) *HomeController {
	return &HomeController{backend: backend, sessions: sessions, logger: logger}
}

// Load re-fetches the application records and derives the profile,
// assignment and payment cards. It runs on every focus; nothing is cached.
func (c *HomeController) Load(ctx context.Context) (*HomeView, error) {
	user, err := c.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}

	view := &HomeView{
		User:           *user,
		AppliedHostel:  placeholder,
		AssignedHostel: placeholder,
		AssignedRoom:   placeholder,
		PaymentAmount:  placeholder,
		PaymentStatus:  "Not assigned",
		MoveInDate:     placeholder,
		MoveOutDate:    placeholder,
	}

	apps, err := c.backend.Applications(ctx)
	if err != nil {
		// The list screen stays usable with empty data on fetch failure.
		c.logger.WithError(err).Error("failed to fetch applications")
		return view, nil
	}

	summary := reconcile.SummarizeApplications(apps, user.ID)
	if summary.Latest != nil {
		view.AppliedHostel = summary.Latest.HostelName
	}
	if approved := summary.LatestApproved; approved != nil {
		view.AssignedHostel = approved.HostelName
		if approved.RoomName != nil {
			view.AssignedRoom = *approved.RoomName
		}
		view.PaymentAmount = fmt.Sprintf("RM %.2f", approved.RoomPrice)
		if approved.FeePaid {
			view.PaymentStatus = "Paid"
		} else {
			view.PaymentStatus = "Unpaid"
			view.CanScan = true
		}
		view.MoveInDate = dateOnly(approved.MoveInDate)
		view.MoveOutDate = dateOnly(approved.MoveOutDate)
	}
	return view, nil
}

// dateOnly trims an RFC 3339 timestamp down to its date part.
func dateOnly(value string) string {
	if value == "" {
		return placeholder
	}
	if idx := strings.IndexByte(value, 'T'); idx > 0 {
		return value[:idx]
	}
	return value
}
