package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gslase-backend/internal/features/channel/models"
	"gslase-backend/internal/features/channel/repository"

	"github.com/lib/pq"
)

const channelColumns = "id, name, description, is_public, is_private, cost_to_join, creator_id, created_at"

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.ChannelRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, channel *models.Channel) error {
	query := `
		INSERT INTO channels (name, description, is_public, is_private, cost_to_join, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		channel.Name, channel.Description, channel.IsPublic, channel.IsPrivate,
		channel.CostToJoin, channel.CreatorID).
		Scan(&channel.ID, &channel.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return repository.ErrNameTaken
		}
		return fmt.Errorf("failed to create channel: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByName(ctx context.Context, name string) (*models.Channel, error) {
	var channel models.Channel
	err := r.db.QueryRowContext(ctx,
		"SELECT "+channelColumns+" FROM channels WHERE name = $1", name).
		Scan(&channel.ID, &channel.Name, &channel.Description, &channel.IsPublic,
			&channel.IsPrivate, &channel.CostToJoin, &channel.CreatorID, &channel.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrChannelNotFound
		}
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}

	return &channel, nil
}

func (r *postgresRepository) ListPublic(ctx context.Context) ([]*models.Channel, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+channelColumns+" FROM channels WHERE is_public ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer rows.Close()

	var channels []*models.Channel
	for rows.Next() {
		var channel models.Channel
		err := rows.Scan(&channel.ID, &channel.Name, &channel.Description, &channel.IsPublic,
			&channel.IsPrivate, &channel.CostToJoin, &channel.CreatorID, &channel.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		channels = append(channels, &channel)
	}

	return channels, rows.Err()
}
