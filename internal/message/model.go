package message

import "time"

// Conversation is the single chat thread between a user and a coach. It is
// opened from a session the pair shares and reused for every later session
// between them.
type Conversation struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	CoachID   int       `db:"coach_id" json:"coach_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Message struct {
	ID             int       `db:"id" json:"id"`
	ConversationID int       `db:"conversation_id" json:"conversation_id"`
	SenderID       int       `db:"sender_id" json:"sender_id"`
	Content        string    `db:"content" json:"content"`
	IsRead         bool      `db:"is_read" json:"is_read"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// ConversationSummary is a conversation with its latest message and the
// unread count from the other participant's messages.
type ConversationSummary struct {
	Conversation
	LastMessage *Message `json:"last_message,omitempty"`
	UnreadCount int      `json:"unread_count"`
}

type StartConversationRequest struct {
	SessionID int `json:"session_id" binding:"required"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}
