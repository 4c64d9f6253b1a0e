package model

// ApplicationStatus describes a user's relationship to a room or hostel.
type ApplicationStatus string

const (
	StatusNone     ApplicationStatus = "none"
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// UserStatus is a per-user application status entry carried by a room.
type UserStatus struct {
	UserID int64             `json:"userId"`
	Status ApplicationStatus `json:"status"`
}

// Room is the smallest assignable housing unit. Rooms fetched as part of a
// hostel carry UserStatuses; the flat room list endpoint carries only UserIDs.
type Room struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	UserStatuses []UserStatus `json:"userStatuses"`
	UserIDs      []int64      `json:"userIds"`
}

// Normalize replaces absent nested collections with empty ones. The backend
// payload shape has evolved across versions and older snapshots omit them.
func (r *Room) Normalize() {
	if r.UserStatuses == nil {
		r.UserStatuses = []UserStatus{}
	}
	if r.UserIDs == nil {
		r.UserIDs = []int64{}
	}
}

// Hostel is a building-level housing unit with nested rooms and aggregate
// per-status user lists computed by the backend across all its rooms.
type Hostel struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	TotalCapacity int     `json:"totalCapacity"`
	Rooms         []Room  `json:"rooms"`
	ApprovedUsers []int64 `json:"approvedUsers"`
	PendingUsers  []int64 `json:"pendingUsers"`
	RejectedUsers []int64 `json:"rejectedUsers"`
}

// Normalize replaces absent nested collections with empty ones.
func (h *Hostel) Normalize() {
	if h.Rooms == nil {
		h.Rooms = []Room{}
	}
	for i := range h.Rooms {
		h.Rooms[i].Normalize()
	}
	if h.ApprovedUsers == nil {
		h.ApprovedUsers = []int64{}
	}
	if h.PendingUsers == nil {
		h.PendingUsers = []int64{}
	}
	if h.RejectedUsers == nil {
		h.RejectedUsers = []int64{}
	}
}

// Application is one hostel application record as returned by the
// all-applications endpoint.
type Application struct {
	ApplicationID int64             `json:"applicationId"`
	UserID        int64             `json:"userId"`
	HostelID      int64             `json:"hostelId"`
	HostelName    string            `json:"hostelName"`
	RoomID        *int64            `json:"roomId"`
	RoomName      *string           `json:"roomName"`
	RoomPrice     float64           `json:"roomPrice"`
	Status        ApplicationStatus `json:"status"`
	FeePaid       bool              `json:"feePaid"`
	FeePaidAt     *string           `json:"feePaidAt"`
	MoveInDate    string            `json:"moveInDate"`
	MoveOutDate   string            `json:"moveOutDate"`
}
