package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"gslase-backend/internal/features/chat/models"
	"gslase-backend/internal/features/chat/repository"
)

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (sender_id, receiver_id, content, content_type, invitation_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		msg.SenderID, msg.ReceiverID, msg.Content, msg.ContentType, msg.InvitationID).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// Thread uses one symmetric predicate for any pair, bot included. Ties on
// timestamp break by insertion order.
func (r *messageRepository) Thread(ctx context.Context, a, b int64) ([]*models.Message, error) {
	query := `
		SELECT m.id, m.sender_id, m.receiver_id, m.content, m.content_type, m.invitation_id, m.created_at, u.username
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE (m.sender_id = $1 AND m.receiver_id = $2)
		   OR (m.sender_id = $2 AND m.receiver_id = $1)
		ORDER BY m.created_at ASC, m.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, a, b)
	if err != nil {
		return nil, fmt.Errorf("failed to get thread: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var msg models.Message
		var receiverID sql.NullInt64
		var invitationID sql.NullInt64
		err := rows.Scan(
			&msg.ID, &msg.SenderID, &receiverID, &msg.Content, &msg.ContentType,
			&invitationID, &msg.CreatedAt, &msg.SenderUsername)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.ReceiverID = receiverID.Int64
		if invitationID.Valid {
			msg.InvitationID = &invitationID.Int64
		}
		messages = append(messages, &msg)
	}

	return messages, rows.Err()
}

type chatRepository struct {
	db *sql.DB
}

func NewChatRepository(db *sql.DB) repository.ChatRepository {
	return &chatRepository{db: db}
}

// GetOrCreate normalizes the pair to (min, max) before touching the table, so
// both call orientations hit the same row. The unique pair constraint plus
// ON CONFLICT DO NOTHING keeps concurrent callers from double-inserting; the
// follow-up select reads whichever row won.
func (r *chatRepository) GetOrCreate(ctx context.Context, a, b int64) (*models.Chat, error) {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO chats (user1_id, user2_id) VALUES ($1, $2) ON CONFLICT (user1_id, user2_id) DO NOTHING",
		lo, hi)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	var chat models.Chat
	err = r.db.QueryRowContext(ctx,
		"SELECT id, user1_id, user2_id, created_at FROM chats WHERE user1_id = $1 AND user2_id = $2",
		lo, hi).Scan(&chat.ID, &chat.User1ID, &chat.User2ID, &chat.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	return &chat, nil
}

// Summaries derives the latest message per chat from the message log, not
// from the chat row. Chats that never saw a message sort last.
func (r *chatRepository) Summaries(ctx context.Context, userID int64) ([]*models.ChatSummary, error) {
	query := `
		SELECT c.id, o.id, o.username, lm.content, lm.created_at
		FROM chats c
		JOIN users o ON o.id = CASE WHEN c.user1_id = $1 THEN c.user2_id ELSE c.user1_id END
		LEFT JOIN LATERAL (
			SELECT m.content, m.created_at
			FROM messages m
			WHERE (m.sender_id = $1 AND m.receiver_id = o.id)
			   OR (m.sender_id = o.id AND m.receiver_id = $1)
			ORDER BY m.created_at DESC, m.id DESC
			LIMIT 1
		) lm ON TRUE
		WHERE c.user1_id = $1 OR c.user2_id = $1
		ORDER BY lm.created_at DESC NULLS LAST, c.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	var summaries []*models.ChatSummary
	for rows.Next() {
		var s models.ChatSummary
		var content sql.NullString
		var at sql.NullTime
		if err := rows.Scan(&s.ChatID, &s.OtherUserID, &s.OtherUsername, &content, &at); err != nil {
			return nil, fmt.Errorf("failed to scan chat summary: %w", err)
		}
		s.LastMessage = content.String
		if at.Valid {
			s.LastMessageTime = &at.Time
		}
		summaries = append(summaries, &s)
	}

	return summaries, rows.Err()
}
