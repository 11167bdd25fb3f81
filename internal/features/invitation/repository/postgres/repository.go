package postgres

import (
	"context"
	"database/sql"
	"fmt"

	chatmodels "gslase-backend/internal/features/chat/models"
	"gslase-backend/internal/features/invitation/models"
	"gslase-backend/internal/features/invitation/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.InvitationRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateWithAnnouncement(ctx context.Context, inv *models.Invitation, announcement *chatmodels.Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO invitations (inviter_id, invited_user_id, channel_name, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, inv.InviterID, inv.InvitedUserID, inv.ChannelName, inv.Status).
		Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}

	announcement.InvitationID = &inv.ID
	err = tx.QueryRowContext(ctx, `
		INSERT INTO messages (sender_id, receiver_id, content, content_type, invitation_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, announcement.SenderID, announcement.ReceiverID, announcement.Content,
		announcement.ContentType, announcement.InvitationID).
		Scan(&announcement.ID, &announcement.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create announcement message: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*models.Invitation, error) {
	var inv models.Invitation
	err := r.db.QueryRowContext(ctx, `
		SELECT id, inviter_id, invited_user_id, channel_name, status, created_at
		FROM invitations
		WHERE id = $1
	`, id).Scan(&inv.ID, &inv.InviterID, &inv.InvitedUserID, &inv.ChannelName, &inv.Status, &inv.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	return &inv, nil
}

// Resolve is the single writer of terminal invitation states. The WHERE
// status='pending' guard makes concurrent resolves lose cleanly: zero rows
// affected means someone else already resolved it, and no outcome message is
// emitted.
func (r *postgresRepository) Resolve(ctx context.Context, id int64, status string, outcome *chatmodels.Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE invitations SET status = $2 WHERE id = $1 AND status = $3",
		id, status, models.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrAlreadyResolved
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO messages (sender_id, receiver_id, content, content_type, invitation_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, outcome.SenderID, outcome.ReceiverID, outcome.Content,
		outcome.ContentType, outcome.InvitationID).
		Scan(&outcome.ID, &outcome.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create outcome message: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

func (r *postgresRepository) ListPendingFor(ctx context.Context, userID int64) ([]*models.Invitation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, inviter_id, invited_user_id, channel_name, status, created_at
		FROM invitations
		WHERE invited_user_id = $1 AND status = $2
		ORDER BY created_at DESC
	`, userID, models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending invitations: %w", err)
	}
	defer rows.Close()

	var invitations []*models.Invitation
	for rows.Next() {
		var inv models.Invitation
		err := rows.Scan(&inv.ID, &inv.InviterID, &inv.InvitedUserID, &inv.ChannelName, &inv.Status, &inv.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, &inv)
	}

	return invitations, rows.Err()
}
