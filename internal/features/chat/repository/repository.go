package repository

import (
	"context"
	"errors"

	"gslase-backend/internal/features/chat/models"
)

var ErrChatNotFound = errors.New("chat not found")

// MessageRepository is the append-only message log.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	// Thread returns every message exchanged between a and b, ascending by
	// timestamp, with SenderUsername filled.
	Thread(ctx context.Context, a, b int64) ([]*models.Message, error)
}

// ChatRepository manages the explicit conversation handles.
type ChatRepository interface {
	// GetOrCreate returns the chat for the unordered pair {a, b}, creating it
	// if absent. Safe under concurrent calls for both orientations.
	GetOrCreate(ctx context.Context, a, b int64) (*models.Chat, error)
	// Summaries lists every chat userID participates in, annotated with the
	// counterpart and the latest message, newest conversation first.
	Summaries(ctx context.Context, userID int64) ([]*models.ChatSummary, error)
}
