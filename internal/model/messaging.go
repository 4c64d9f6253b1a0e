package model

// Admin is an administrator a student can message.
type Admin struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Conversation is a student/admin message thread.
type Conversation struct {
	ID int64 `json:"id"`
}

// Message is a single chat message inside a conversation.
type Message struct {
	ID             int64  `json:"id"`
	ConversationID int64  `json:"conversation_id"`
	SenderUserID   int64  `json:"sender_user_id"`
	Content        string `json:"content"`
	CreatedAt      string `json:"created_at"`
}
