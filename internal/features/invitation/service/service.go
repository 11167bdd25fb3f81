package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "gslase-backend/internal/common/errors"
	chatmodels "gslase-backend/internal/features/chat/models"
	"gslase-backend/internal/features/invitation/models"
	"gslase-backend/internal/features/invitation/repository"
	usermodels "gslase-backend/internal/features/user/models"
	userrepo "gslase-backend/internal/features/user/repository"
)

// InvitationService drives the channel invitation state machine. Every state
// change is announced by a bot message written in the same transaction.
type InvitationService interface {
	Send(ctx context.Context, inviter *usermodels.User, invitedUsername, channelName string) (*models.Invitation, error)
	Respond(ctx context.Context, responder *usermodels.User, invitationID int64, accept bool) (string, error)
	ListPending(ctx context.Context, user *usermodels.User) ([]*models.Invitation, error)
}

type invitationService struct {
	repo  repository.InvitationRepository
	users userrepo.UserRepository
}

func NewInvitationService(repo repository.InvitationRepository, users userrepo.UserRepository) InvitationService {
	return &invitationService{
		repo:  repo,
		users: users,
	}
}

// Send creates a pending invitation and the bot announcement carrying its id.
// Both rows commit together.
func (s *invitationService) Send(ctx context.Context, inviter *usermodels.User, invitedUsername, channelName string) (*models.Invitation, error) {
	channelName = strings.TrimSpace(channelName)
	if channelName == "" {
		return nil, apperrors.NewValidationError("channel_name", "must not be empty")
	}

	invited, err := s.users.GetByUsername(ctx, strings.TrimSpace(invitedUsername))
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return nil, apperrors.NewUserNotFoundError(invitedUsername)
		}
		return nil, apperrors.NewDatabaseError("lookup invited user", err)
	}

	inv := &models.Invitation{
		InviterID:     inviter.ID,
		InvitedUserID: invited.ID,
		ChannelName:   channelName,
		Status:        models.StatusPending,
	}
	announcement := &chatmodels.Message{
		SenderID:    usermodels.BotUserID,
		ReceiverID:  invited.ID,
		Content:     fmt.Sprintf("%s invites you to join the channel %q", inviter.Username, channelName),
		ContentType: chatmodels.ContentTypeInvitation,
	}

	if err := s.repo.CreateWithAnnouncement(ctx, inv, announcement); err != nil {
		return nil, apperrors.NewDatabaseError("create invitation", err)
	}

	return inv, nil
}

// Respond resolves a pending invitation exactly once. Only the invited user
// may respond; a repeated response is an error, not a silent overwrite.
func (s *invitationService) Respond(ctx context.Context, responder *usermodels.User, invitationID int64, accept bool) (string, error) {
	inv, err := s.repo.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, repository.ErrInvitationNotFound) {
			return "", apperrors.Newf(apperrors.ErrCodeInvitationNotFound, "invitation not found: %d", invitationID)
		}
		return "", apperrors.NewDatabaseError("get invitation", err)
	}

	if inv.InvitedUserID != responder.ID {
		return "", apperrors.NewForbiddenError("only the invited user may respond to an invitation")
	}
	if inv.Status != models.StatusPending {
		return "", apperrors.Newf(apperrors.ErrCodeAlreadyResolved, "invitation %d is already %s", invitationID, inv.Status)
	}

	status := models.StatusRejected
	outcomeText := fmt.Sprintf("You rejected the invitation to the channel %q", inv.ChannelName)
	if accept {
		status = models.StatusAccepted
		outcomeText = fmt.Sprintf("You accepted the invitation to the channel %q", inv.ChannelName)
	}

	outcome := &chatmodels.Message{
		SenderID:     usermodels.BotUserID,
		ReceiverID:   responder.ID,
		Content:      outcomeText,
		ContentType:  chatmodels.ContentTypeText,
		InvitationID: &inv.ID,
	}

	if err := s.repo.Resolve(ctx, invitationID, status, outcome); err != nil {
		// The pending check above can lose a race; the conditional update is
		// the authoritative gate.
		if errors.Is(err, repository.ErrAlreadyResolved) {
			return "", apperrors.Newf(apperrors.ErrCodeAlreadyResolved, "invitation %d is already resolved", invitationID)
		}
		return "", apperrors.NewDatabaseError("resolve invitation", err)
	}

	return outcomeText, nil
}

func (s *invitationService) ListPending(ctx context.Context, user *usermodels.User) ([]*models.Invitation, error) {
	invitations, err := s.repo.ListPendingFor(ctx, user.ID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list pending invitations", err)
	}
	return invitations, nil
}
