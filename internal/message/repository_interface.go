package message

import "context"

type Repository interface {
	CreateOrGetConversation(ctx context.Context, userID, coachID int) (*Conversation, error)
	GetConversation(ctx context.Context, id int) (*Conversation, error)
	ListConversations(ctx context.Context, participantID int) ([]ConversationSummary, error)
	CreateMessage(ctx context.Context, conversationID, senderID int, content string) (*Message, error)
	ListMessages(ctx context.Context, conversationID, limit, offset int) ([]Message, int, error)
	MarkConversationRead(ctx context.Context, conversationID, readerID int) error
}
