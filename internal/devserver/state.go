// Package devserver is an in-memory stand-in for the hostel backend, used
// for local development and integration tests. It implements the REST
// surface the client consumes, not the real backend's business rules.
package devserver

import (
	"sync"

	"hostel-client/internal/model"
)

type account struct {
	user     model.User
	password string
}

// State is the mutable in-memory world behind the stub handlers.
type State struct {
	mu     sync.Mutex
	nextID int64

	accounts      []account
	hostels       []model.Hostel
	rooms         []model.Room
	applications  []model.Application
	complaints    map[int64][]model.Complaint
	admins        []model.Admin
	conversations map[[2]int64]int64
	messages      map[int64][]model.Message
	notifications map[int64][]model.UserNotification
}

// NewState seeds a small world: two hostels with rooms, a flat room list,
// two admins and one demo account (student@example.com / password123).
func NewState() *State {
	s := &State{
		nextID:        1000,
		complaints:    make(map[int64][]model.Complaint),
		conversations: make(map[[2]int64]int64),
		messages:      make(map[int64][]model.Message),
		notifications: make(map[int64][]model.UserNotification),
	}

	s.accounts = []account{{
		user:     model.User{ID: s.id(), Name: "Demo Student", StudentID: "S-1001", Email: "student@example.com"},
		password: "password123",
	}}

	s.hostels = []model.Hostel{
		{
			ID: s.id(), Name: "Cempaka Residence", TotalCapacity: 4,
			Rooms: []model.Room{
				{ID: s.id(), Name: "C-101", UserStatuses: []model.UserStatus{}},
				{ID: s.id(), Name: "C-102", UserStatuses: []model.UserStatus{}},
			},
			ApprovedUsers: []int64{}, PendingUsers: []int64{}, RejectedUsers: []int64{},
		},
		{
			ID: s.id(), Name: "Melati Residence", TotalCapacity: 2,
			Rooms: []model.Room{
				{ID: s.id(), Name: "M-201", UserStatuses: []model.UserStatus{}},
			},
			ApprovedUsers: []int64{}, PendingUsers: []int64{}, RejectedUsers: []int64{},
		},
	}

	s.rooms = []model.Room{
		{ID: s.id(), Name: "Shared Twin A", UserIDs: []int64{}},
		{ID: s.id(), Name: "Shared Twin B", UserIDs: []int64{}},
		{ID: s.id(), Name: "Single Studio", UserIDs: []int64{}},
	}

	s.admins = []model.Admin{
		{ID: s.id(), Name: "Warden Aziz"},
		{ID: s.id(), Name: "Office Admin Mei"},
	}
	return s
}

// id hands out the next identifier. Callers hold s.mu (or run at seed time).
func (s *State) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *State) pushNotification(userID int64, title, message string) {
	s.notifications[userID] = append(s.notifications[userID], model.UserNotification{
		ID:           s.id(),
		Notification: model.NotificationBody{Title: title, Message: message},
	})
}
