package message

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/auth"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/metrics"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/session"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("not a participant of this conversation")
)

const defaultPageSize = 50

// sessionReader is the slice of the session repository needed to open a
// conversation from a booked session.
type sessionReader interface {
	GetByID(ctx context.Context, id int) (*session.Session, error)
}

type Service interface {
	StartConversation(ctx context.Context, caller auth.Identity, sessionID int) (*Conversation, error)
	ListConversations(ctx context.Context, caller auth.Identity) ([]ConversationSummary, error)
	ListMessages(ctx context.Context, caller auth.Identity, conversationID, limit, offset int) ([]Message, int, error)
	Send(ctx context.Context, caller auth.Identity, conversationID int, content string) (*Message, error)
}

type service struct {
	repo     Repository
	sessions sessionReader
}

func NewService(repo Repository, sessions sessionReader) Service {
	return &service{repo: repo, sessions: sessions}
}

// StartConversation opens (or returns) the thread between the session's
// user and coach. Only the two participants may open it.
func (s *service) StartConversation(ctx context.Context, caller auth.Identity, sessionID int) (*Conversation, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if caller.UserID != sess.UserID && caller.UserID != sess.CoachID {
		return nil, ErrNotParticipant
	}

	return s.repo.CreateOrGetConversation(ctx, sess.UserID, sess.CoachID)
}

func (s *service) ListConversations(ctx context.Context, caller auth.Identity) ([]ConversationSummary, error) {
	return s.repo.ListConversations(ctx, caller.UserID)
}

// ListMessages returns a page of messages, newest first, and marks the
// other participant's messages read when the reader is a participant.
// Admins may read but their reads never flip unread flags.
func (s *service) ListMessages(ctx context.Context, caller auth.Identity, conversationID, limit, offset int) ([]Message, int, error) {
	conv, err := s.getGated(ctx, caller, conversationID, true)
	if err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 200 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	messages, total, err := s.repo.ListMessages(ctx, conv.ID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if caller.UserID == conv.UserID || caller.UserID == conv.CoachID {
		if err := s.repo.MarkConversationRead(ctx, conv.ID, caller.UserID); err != nil {
			return nil, 0, err
		}
	}

	return messages, total, nil
}

func (s *service) Send(ctx context.Context, caller auth.Identity, conversationID int, content string) (*Message, error) {
	conv, err := s.getGated(ctx, caller, conversationID, false)
	if err != nil {
		return nil, err
	}

	msg, err := s.repo.CreateMessage(ctx, conv.ID, caller.UserID, content)
	if err != nil {
		return nil, err
	}

	metrics.RecordMessageSent()
	return msg, nil
}

func (s *service) getGated(ctx context.Context, caller auth.Identity, conversationID int, adminMayRead bool) (*Conversation, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}

	if caller.UserID == conv.UserID || caller.UserID == conv.CoachID {
		return conv, nil
	}
	if adminMayRead && caller.IsAdmin() {
		return conv, nil
	}

	return nil, ErrNotParticipant
}
