package devserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hostel-client/internal/model"
)

// Handler holds shared dependencies for the stub handlers.
type Handler struct {
	state  *State
	logger *logrus.Logger
}

// NewHandler creates a stub handler over the given state.
func NewHandler(state *State, logger *logrus.Logger) *Handler {
	return &Handler{state: state, logger: logger}
}

func (h *Handler) SignIn(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	for _, acc := range h.state.accounts {
		if acc.user.Email == req.Email && acc.password == req.Password {
			c.JSON(http.StatusOK, gin.H{"user": acc.user})
			return
		}
	}
	c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
}

func (h *Handler) SignUp(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		StudentID string `json:"student_id"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	for _, acc := range h.state.accounts {
		if acc.user.Email == req.Email {
			c.JSON(http.StatusConflict, gin.H{"message": "An account with this email already exists"})
			return
		}
	}

	user := model.User{ID: h.state.id(), Name: req.Name, StudentID: req.StudentID, Email: req.Email}
	h.state.accounts = append(h.state.accounts, account{user: user, password: req.Password})
	h.state.pushNotification(user.ID, "Welcome", "Your account has been created.")
	c.JSON(http.StatusCreated, gin.H{"message": "Account created"})
}

func (h *Handler) Hostels(c *gin.Context) {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	c.JSON(http.StatusOK, h.state.hostels)
}

func (h *Handler) Applications(c *gin.Context) {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	c.JSON(http.StatusOK, h.state.applications)
}

func (h *Handler) ApplyHostel(c *gin.Context) {
	var req struct {
		UserID   int64 `json:"userId"`
		HostelID int64 `json:"hostelId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	for i := range h.state.hostels {
		hostel := &h.state.hostels[i]
		if hostel.ID != req.HostelID {
			continue
		}
		if len(hostel.ApprovedUsers) >= hostel.TotalCapacity {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Hostel is full"})
			return
		}
		for _, room := range hostel.Rooms {
			for _, us := range room.UserStatuses {
				if us.UserID == req.UserID {
					c.JSON(http.StatusConflict, gin.H{"message": "You already applied to this hostel"})
					return
				}
			}
		}

		if len(hostel.Rooms) > 0 {
			hostel.Rooms[0].UserStatuses = append(hostel.Rooms[0].UserStatuses,
				model.UserStatus{UserID: req.UserID, Status: model.StatusPending})
		}
		hostel.PendingUsers = append(hostel.PendingUsers, req.UserID)

		moveIn := time.Now().UTC().AddDate(0, 1, 0)
		h.state.applications = append(h.state.applications, model.Application{
			ApplicationID: h.state.id(),
			UserID:        req.UserID,
			HostelID:      hostel.ID,
			HostelName:    hostel.Name,
			RoomPrice:     350,
			Status:        model.StatusPending,
			MoveInDate:    moveIn.Format(time.RFC3339),
			MoveOutDate:   moveIn.AddDate(1, 0, 0).Format(time.RFC3339),
		})
		h.state.pushNotification(req.UserID, "Application received",
			"Your application for "+hostel.Name+" is pending review.")
		c.JSON(http.StatusCreated, gin.H{"message": "Application submitted"})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Hostel not found"})
}

func (h *Handler) Rooms(c *gin.Context) {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	c.JSON(http.StatusOK, h.state.rooms)
}

func (h *Handler) ApplyRoom(c *gin.Context) {
	var req struct {
		UserID int64 `json:"userId"`
		RoomID int64 `json:"roomId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	for i := range h.state.rooms {
		if h.state.rooms[i].ID != req.RoomID {
			continue
		}
		for _, id := range h.state.rooms[i].UserIDs {
			if id == req.UserID {
				c.JSON(http.StatusConflict, gin.H{"message": "You already applied to this room"})
				return
			}
		}
		h.state.rooms[i].UserIDs = append(h.state.rooms[i].UserIDs, req.UserID)
		c.JSON(http.StatusCreated, gin.H{"message": "Application submitted"})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Room not found"})
}

func (h *Handler) Complaints(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	complaints := h.state.complaints[userID]
	if complaints == nil {
		complaints = []model.Complaint{}
	}
	c.JSON(http.StatusOK, complaints)
}

func (h *Handler) SubmitMaintenance(c *gin.Context) {
	var req model.MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	h.state.complaints[req.UserID] = append(h.state.complaints[req.UserID], model.Complaint{
		ID:      h.state.id(),
		Title:   req.Title,
		Details: req.Details,
		Status:  model.ComplaintOpen,
	})
	c.JSON(http.StatusCreated, gin.H{"message": "Request submitted"})
}

func (h *Handler) Admins(c *gin.Context) {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	c.JSON(http.StatusOK, h.state.admins)
}

func (h *Handler) StartConversation(c *gin.Context) {
	var req struct {
		UserID  int64 `json:"user_id"`
		AdminID int64 `json:"admin_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	key := [2]int64{req.UserID, req.AdminID}
	convID, ok := h.state.conversations[key]
	if !ok {
		convID = h.state.id()
		h.state.conversations[key] = convID
	}
	c.JSON(http.StatusOK, gin.H{"id": convID})
}

func (h *Handler) Messages(c *gin.Context) {
	convID, err := strconv.ParseInt(c.Param("conversation_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid conversation ID"})
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	messages := h.state.messages[convID]
	if messages == nil {
		messages = []model.Message{}
	}
	c.JSON(http.StatusOK, messages)
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req struct {
		ConversationID int64  `json:"conversation_id"`
		SenderUserID   int64  `json:"sender_user_id"`
		Content        string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	h.state.messages[req.ConversationID] = append(h.state.messages[req.ConversationID], model.Message{
		ID:             h.state.id(),
		ConversationID: req.ConversationID,
		SenderUserID:   req.SenderUserID,
		Content:        req.Content,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	})
	c.JSON(http.StatusCreated, gin.H{"message": "Sent"})
}

func (h *Handler) Notifications(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	notifications := h.state.notifications[userID]
	if notifications == nil {
		notifications = []model.UserNotification{}
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	notifID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid notification ID"})
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	for userID := range h.state.notifications {
		for i := range h.state.notifications[userID] {
			if h.state.notifications[userID][i].ID == notifID {
				h.state.notifications[userID][i].IsRead = true
				c.JSON(http.StatusOK, gin.H{"message": "Updated"})
				return
			}
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Notification not found"})
}

// UpdateFeeStatus is the endpoint fee-payment QR codes point at. The code
// encodes the application id in the "app" query parameter.
func (h *Handler) UpdateFeeStatus(c *gin.Context) {
	appID, err := strconv.ParseInt(c.Query("app"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid application reference"})
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	for i := range h.state.applications {
		if h.state.applications[i].ApplicationID != appID {
			continue
		}
		now := time.Now().UTC().Format(time.RFC3339)
		h.state.applications[i].FeePaid = true
		h.state.applications[i].FeePaidAt = &now
		c.JSON(http.StatusOK, gin.H{"message": "Fee status updated"})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Application not found"})
}
