// Package reconcile derives per-user view state from raw backend snapshots.
// Every function here is a pure transform: the same snapshot and user id
// always produce the same output, and malformed or missing nested fields
// degrade to "no status / not full" rather than failing.
package reconcile

import (
	"sort"

	"hostel-client/internal/model"
)

// ReconciledHostel is a hostel snapshot enriched with the current user's
// status and the derived capacity fields.
type ReconciledHostel struct {
	model.Hostel
	AvailableCapacity int
	IsFull            bool
	UserStatus        model.ApplicationStatus
}

// ReconciledRoom is a flat-list room enriched with the boolean membership
// flag of the current user. This mode has no pending/approved distinction.
type ReconciledRoom struct {
	model.Room
	Applied bool
}

// ReconcileHostels computes each hostel's status relative to the user.
//
// Available capacity is total capacity minus the count of approved users.
// The user's status is the first match found while scanning every room's
// per-user status list in order; rooms are not guaranteed sorted, so the
// tie-break is "first encountered" and nothing more.
func ReconcileHostels(hostels []model.Hostel, userID int64) []ReconciledHostel {
	out := make([]ReconciledHostel, 0, len(hostels))
	for _, h := range hostels {
		h.Normalize()

		available := h.TotalCapacity - len(h.ApprovedUsers)
		out = append(out, ReconciledHostel{
			Hostel:            h,
			AvailableCapacity: available,
			IsFull:            available <= 0,
			UserStatus:        userStatusIn(h, userID),
		})
	}
	return out
}

func userStatusIn(h model.Hostel, userID int64) model.ApplicationStatus {
	for _, room := range h.Rooms {
		for _, us := range room.UserStatuses {
			if us.UserID == userID {
				return us.Status
			}
		}
	}
	return model.StatusNone
}

// FindApprovedAssignment returns the first hostel (in input order) whose
// approved-user aggregate contains the user, or nil.
func FindApprovedAssignment(hostels []model.Hostel, userID int64) *model.Hostel {
	for i := range hostels {
		for _, id := range hostels[i].ApprovedUsers {
			if id == userID {
				h := hostels[i]
				return &h
			}
		}
	}
	return nil
}

// ReconcileRooms marks each flat-list room with the user's membership.
func ReconcileRooms(rooms []model.Room, userID int64) []ReconciledRoom {
	out := make([]ReconciledRoom, 0, len(rooms))
	for _, r := range rooms {
		r.Normalize()

		applied := false
		for _, id := range r.UserIDs {
			if id == userID {
				applied = true
				break
			}
		}
		out = append(out, ReconciledRoom{Room: r, Applied: applied})
	}
	return out
}

// ApplyOptimisticUpdate marks the given hostel's user status in local state
// after a successful apply call, without re-fetching. The value is
// provisional: the next authoritative fetch replaces it, and it must never
// feed derived decisions such as capacity checks.
func ApplyOptimisticUpdate(hostels []ReconciledHostel, hostelID, userID int64, newStatus model.ApplicationStatus) {
	for i := range hostels {
		if hostels[i].ID != hostelID {
			continue
		}
		hostels[i].UserStatus = newStatus
		if newStatus == model.StatusPending {
			hostels[i].PendingUsers = append(hostels[i].PendingUsers, userID)
		}
		return
	}
}

// MarkRoomApplied is the flat-list counterpart of ApplyOptimisticUpdate.
func MarkRoomApplied(rooms []ReconciledRoom, roomID, userID int64) {
	for i := range rooms {
		if rooms[i].ID != roomID {
			continue
		}
		rooms[i].Applied = true
		rooms[i].UserIDs = append(rooms[i].UserIDs, userID)
		return
	}
}

// ApplicationSummary aggregates the user's application records for the home
// screen. Latest is the record with the greatest application id; the
// assignment comes from the highest-id approved record.
type ApplicationSummary struct {
	Latest         *model.Application
	LatestApproved *model.Application
}

// SummarizeApplications filters the records to the user, orders them newest
// first by application id, and picks the latest and latest-approved entries.
func SummarizeApplications(apps []model.Application, userID int64) ApplicationSummary {
	var mine []model.Application
	for _, app := range apps {
		if app.UserID == userID {
			mine = append(mine, app)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		return mine[i].ApplicationID > mine[j].ApplicationID
	})

	var summary ApplicationSummary
	if len(mine) > 0 {
		latest := mine[0]
		summary.Latest = &latest
	}
	for _, app := range mine {
		if app.Status == model.StatusApproved {
			approved := app
			summary.LatestApproved = &approved
			break
		}
	}
	return summary
}
