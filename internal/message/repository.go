package message

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrGetConversation(ctx context.Context, userID, coachID int) (*Conversation, error) {
	query := `
		INSERT INTO conversations (user_id, coach_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, coach_id)
		DO UPDATE SET updated_at = conversations.updated_at
		RETURNING id, user_id, coach_id, created_at, updated_at
	`

	var conv Conversation
	if err := r.db.GetContext(ctx, &conv, query, userID, coachID); err != nil {
		return nil, err
	}

	return &conv, nil
}

func (r *repository) GetConversation(ctx context.Context, id int) (*Conversation, error) {
	query := `
		SELECT id, user_id, coach_id, created_at, updated_at
		FROM conversations
		WHERE id = $1
	`

	var conv Conversation
	if err := r.db.GetContext(ctx, &conv, query, id); err != nil {
		return nil, err
	}

	return &conv, nil
}

func (r *repository) ListConversations(ctx context.Context, participantID int) ([]ConversationSummary, error) {
	query := `
		SELECT
			c.id, c.user_id, c.coach_id, c.created_at, c.updated_at,
			lm.id, lm.conversation_id, lm.sender_id, lm.content, lm.is_read, lm.created_at,
			COALESCE(uc.unread_count, 0)
		FROM conversations c
		LEFT JOIN LATERAL (
			SELECT id, conversation_id, sender_id, content, is_read, created_at
			FROM messages
			WHERE conversation_id = c.id
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		) lm ON TRUE
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS unread_count
			FROM messages
			WHERE conversation_id = c.id
			  AND sender_id <> $1
			  AND is_read = FALSE
		) uc ON TRUE
		WHERE c.user_id = $1 OR c.coach_id = $1
		ORDER BY COALESCE(lm.created_at, c.updated_at) DESC, c.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]ConversationSummary, 0)
	for rows.Next() {
		var s ConversationSummary
		var msgID, msgConvID, msgSenderID sql.NullInt64
		var msgContent sql.NullString
		var msgIsRead sql.NullBool
		var msgCreatedAt sql.NullTime

		err := rows.Scan(
			&s.ID, &s.UserID, &s.CoachID, &s.CreatedAt, &s.UpdatedAt,
			&msgID, &msgConvID, &msgSenderID, &msgContent, &msgIsRead, &msgCreatedAt,
			&s.UnreadCount,
		)
		if err != nil {
			return nil, err
		}

		if msgID.Valid {
			s.LastMessage = &Message{
				ID:             int(msgID.Int64),
				ConversationID: int(msgConvID.Int64),
				SenderID:       int(msgSenderID.Int64),
				Content:        msgContent.String,
				IsRead:         msgIsRead.Bool,
				CreatedAt:      msgCreatedAt.Time,
			}
		}

		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (r *repository) CreateMessage(ctx context.Context, conversationID, senderID int, content string) (*Message, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO messages (conversation_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, conversation_id, sender_id, content, is_read, created_at
	`

	var msg Message
	if err := tx.GetContext(ctx, &msg, query, conversationID, senderID, content); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE conversations SET updated_at = NOW() WHERE id = $1`,
		conversationID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &msg, nil
}

func (r *repository) ListMessages(ctx context.Context, conversationID, limit, offset int) ([]Message, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM messages WHERE conversation_id = $1`,
		conversationID)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, conversation_id, sender_id, content, is_read, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	var messages []Message
	if err := r.db.SelectContext(ctx, &messages, query, conversationID, limit, offset); err != nil {
		return nil, 0, err
	}
	if messages == nil {
		messages = []Message{}
	}

	return messages, total, nil
}

func (r *repository) MarkConversationRead(ctx context.Context, conversationID, readerID int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE messages
		SET is_read = TRUE
		WHERE conversation_id = $1
		  AND sender_id <> $2
		  AND is_read = FALSE
	`, conversationID, readerID)
	return err
}
