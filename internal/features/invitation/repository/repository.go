package repository

import (
	"context"
	"errors"

	chatmodels "gslase-backend/internal/features/chat/models"
	"gslase-backend/internal/features/invitation/models"
)

var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrAlreadyResolved    = errors.New("invitation already resolved")
)

type InvitationRepository interface {
	// CreateWithAnnouncement inserts the invitation and its announcing bot
	// message in one transaction; neither row is visible without the other.
	// The message's InvitationID is filled from the new invitation row.
	CreateWithAnnouncement(ctx context.Context, inv *models.Invitation, announcement *chatmodels.Message) error
	GetByID(ctx context.Context, id int64) (*models.Invitation, error)
	// Resolve moves a pending invitation to a terminal status and inserts the
	// bot outcome message in one transaction. The conditional update's row
	// count gates the message: a second resolve returns ErrAlreadyResolved
	// and writes nothing.
	Resolve(ctx context.Context, id int64, status string, outcome *chatmodels.Message) error
	ListPendingFor(ctx context.Context, userID int64) ([]*models.Invitation, error)
}
