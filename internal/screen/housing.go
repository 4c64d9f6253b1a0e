package screen

import (
	"context"

	"github.com/sirupsen/logrus"

	"hostel-client/internal/model"
	"hostel-client/internal/reconcile"
	"hostel-client/internal/session"
)

// HostelsView is the hostel application screen's state. The reconciled
// slice is local to this view; every Load produces a fresh one.
type HostelsView struct {
	User       model.User
	Hostels    []reconcile.ReconciledHostel
	Assignment *model.Hostel
}

// HostelsController drives the hostel application screen.
type HostelsController struct {
	backend  Backend
	sessions session.Store
	logger   *logrus.Logger
}

// NewHostelsController creates the hostels controller.
func NewHostelsController(backend Backend, sessions session.Store, logger *logrus.Logger) *HostelsController {
	return &HostelsController{backend: backend, sessions: sessions, logger: logger}
}

// Load fetches a fresh hostel snapshot and reconciles it for the user.
func (c *HostelsController) Load(ctx context.Context) (*HostelsView, error) {
	user, err := c.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}

	hostels, err := c.backend.Hostels(ctx)
	if err != nil {
		return nil, err
	}

	return &HostelsView{
		User:       *user,
		Hostels:    reconcile.ReconcileHostels(hostels, user.ID),
		Assignment: reconcile.FindApprovedAssignment(hostels, user.ID),
	}, nil
}

// Apply submits a hostel application and optimistically marks the hostel
// pending in the view. The next Load replaces the provisional status with
// server truth; the server may still auto-reject if capacity ran out.
func (c *HostelsController) Apply(ctx context.Context, view *HostelsView, hostelID int64) error {
	if err := c.backend.ApplyHostel(ctx, view.User.ID, hostelID); err != nil {
		return err
	}
	reconcile.ApplyOptimisticUpdate(view.Hostels, hostelID, view.User.ID, model.StatusPending)
	return nil
}

// RoomsView is the flat room list screen's state.
type RoomsView struct {
	User  model.User
	Rooms []reconcile.ReconciledRoom
}

// RoomsController drives the flat room application screen.
type RoomsController struct {
	backend  Backend
	sessions session.Store
	logger   *logrus.Logger
}

// NewRoomsController creates the rooms controller.
func NewRoomsController(backend Backend, sessions session.Store, logger *logrus.Logger) *RoomsController {
	return &RoomsController{backend: backend, sessions: sessions, logger: logger}
}

// Load fetches the room list and marks the rooms the user applied to.
func (c *RoomsController) Load(ctx context.Context) (*RoomsView, error) {
	user, err := c.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}

	rooms, err := c.backend.Rooms(ctx)
	if err != nil {
		return nil, err
	}

	return &RoomsView{
		User:  *user,
		Rooms: reconcile.ReconcileRooms(rooms, user.ID),
	}, nil
}

// Apply submits a room application and optimistically marks it applied.
func (c *RoomsController) Apply(ctx context.Context, view *RoomsView, roomID int64) error {
	if err := c.backend.ApplyRoom(ctx, view.User.ID, roomID); err != nil {
		return err
	}
	reconcile.MarkRoomApplied(view.Rooms, roomID, view.User.ID)
	return nil
}
