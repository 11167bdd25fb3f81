package repository

import (
	"context"
	"errors"

	"gslase-backend/internal/features/channel/models"
)

var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrNameTaken       = errors.New("channel name already taken")
)

type ChannelRepository interface {
	Create(ctx context.Context, channel *models.Channel) error
	GetByName(ctx context.Context, name string) (*models.Channel, error)
	ListPublic(ctx context.Context) ([]*models.Channel, error)
}
