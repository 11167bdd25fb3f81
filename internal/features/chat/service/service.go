package service

import (
	"context"
	"errors"
	"strings"

	apperrors "gslase-backend/internal/common/errors"
	"gslase-backend/internal/features/chat/models"
	"gslase-backend/internal/features/chat/repository"
	usermodels "gslase-backend/internal/features/user/models"
	userrepo "gslase-backend/internal/features/user/repository"
)

// ChatService is the messaging engine plus the conversation index. Every
// operation takes the authenticated caller explicitly.
type ChatService interface {
	Send(ctx context.Context, sender *usermodels.User, receiverID int64, content string) (*models.Message, error)
	Thread(ctx context.Context, caller *usermodels.User, counterpartID int64) ([]*models.ThreadMessage, error)
	OpenChat(ctx context.Context, caller *usermodels.User, otherID int64) (*models.Chat, error)
	ListChats(ctx context.Context, caller *usermodels.User) ([]*models.ChatSummary, error)
}

type chatService struct {
	messages repository.MessageRepository
	chats    repository.ChatRepository
	users    userrepo.UserRepository
}

func NewChatService(messages repository.MessageRepository, chats repository.ChatRepository, users userrepo.UserRepository) ChatService {
	return &chatService{
		messages: messages,
		chats:    chats,
		users:    users,
	}
}

// Send appends a text message from sender to receiverID. The receiver must
// exist; the original let messages to unknown ids through silently.
func (s *chatService) Send(ctx context.Context, sender *usermodels.User, receiverID int64, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.New(apperrors.ErrCodeEmptyContent, "message must not be empty")
	}

	if _, err := s.users.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return nil, apperrors.NewUserNotFoundError(receiverID)
		}
		return nil, apperrors.NewDatabaseError("lookup receiver", err)
	}

	msg := &models.Message{
		SenderID:    sender.ID,
		ReceiverID:  receiverID,
		Content:     content,
		ContentType: models.ContentTypeText,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.NewDatabaseError("create message", err)
	}
	msg.SenderUsername = sender.Username

	return msg, nil
}

// Thread replays the conversation between the caller and counterpartID in
// ascending timestamp order. is_own is derived from the caller, never stored.
func (s *chatService) Thread(ctx context.Context, caller *usermodels.User, counterpartID int64) ([]*models.ThreadMessage, error) {
	messages, err := s.messages.Thread(ctx, caller.ID, counterpartID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("get thread", err)
	}

	thread := make([]*models.ThreadMessage, 0, len(messages))
	for _, msg := range messages {
		thread = append(thread, &models.ThreadMessage{
			ID:           msg.ID,
			Content:      msg.Content,
			Sender:       msg.SenderUsername,
			ContentType:  msg.ContentType,
			InvitationID: msg.InvitationID,
			Timestamp:    msg.CreatedAt,
			IsOwn:        msg.SenderID == caller.ID,
		})
	}

	return thread, nil
}

// OpenChat returns the conversation handle for {caller, other}, creating it
// on first use. Idempotent under races in either orientation.
func (s *chatService) OpenChat(ctx context.Context, caller *usermodels.User, otherID int64) (*models.Chat, error) {
	if otherID == caller.ID {
		return nil, apperrors.NewValidationError("receiver_id", "cannot open a chat with yourself")
	}

	if _, err := s.users.GetByID(ctx, otherID); err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return nil, apperrors.NewUserNotFoundError(otherID)
		}
		return nil, apperrors.NewDatabaseError("lookup user", err)
	}

	chat, err := s.chats.GetOrCreate(ctx, caller.ID, otherID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("get or create chat", err)
	}

	return chat, nil
}

func (s *chatService) ListChats(ctx context.Context, caller *usermodels.User) ([]*models.ChatSummary, error) {
	summaries, err := s.chats.Summaries(ctx, caller.ID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list chats", err)
	}
	return summaries, nil
}
