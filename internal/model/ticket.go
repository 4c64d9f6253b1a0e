package model

// ComplaintStatus describes the lifecycle of a complaint ticket.
type ComplaintStatus string

const (
	ComplaintOpen     ComplaintStatus = "open"
	ComplaintResolved ComplaintStatus = "resolved"
)

// Complaint is a complaint ticket raised by a student.
type Complaint struct {
	ID      int64           `json:"id"`
	Title   string          `json:"title"`
	Details string          `json:"details"`
	Status  ComplaintStatus `json:"status"`
}

// MaintenanceRequest is the payload for submitting a maintenance ticket.
type MaintenanceRequest struct {
	UserID  int64  `json:"userId"`
	Title   string `json:"title" validate:"required,min=3"`
	Details string `json:"details" validate:"required"`
}
