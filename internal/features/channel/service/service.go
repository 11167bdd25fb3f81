package service

import (
	"context"
	"errors"
	"strings"

	apperrors "gslase-backend/internal/common/errors"
	"gslase-backend/internal/features/channel/models"
	"gslase-backend/internal/features/channel/repository"
	usermodels "gslase-backend/internal/features/user/models"
)

type ChannelService interface {
	Create(ctx context.Context, creator *usermodels.User, name, description string, isPublic bool, costToJoin int) (*models.Channel, error)
	GetByName(ctx context.Context, name string) (*models.Channel, error)
	ListPublic(ctx context.Context) ([]*models.Channel, error)
}

type channelService struct {
	repo repository.ChannelRepository
}

func NewChannelService(repo repository.ChannelRepository) ChannelService {
	return &channelService{repo: repo}
}

func (s *channelService) Create(ctx context.Context, creator *usermodels.User, name, description string, isPublic bool, costToJoin int) (*models.Channel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "must not be empty")
	}
	if costToJoin < 0 {
		return nil, apperrors.NewValidationError("cost_to_join", "must not be negative")
	}

	channel := &models.Channel{
		Name:        name,
		Description: strings.TrimSpace(description),
		IsPublic:    isPublic,
		IsPrivate:   !isPublic,
		CostToJoin:  costToJoin,
		CreatorID:   creator.ID,
	}

	if err := s.repo.Create(ctx, channel); err != nil {
		if errors.Is(err, repository.ErrNameTaken) {
			return nil, apperrors.Newf(apperrors.ErrCodeConflict, "channel %q already exists", name)
		}
		return nil, apperrors.NewDatabaseError("create channel", err)
	}

	return channel, nil
}

func (s *channelService) GetByName(ctx context.Context, name string) (*models.Channel, error) {
	channel, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrChannelNotFound) {
			return nil, apperrors.Newf(apperrors.ErrCodeChannelNotFound, "channel not found: %s", name)
		}
		return nil, apperrors.NewDatabaseError("get channel", err)
	}
	return channel, nil
}

func (s *channelService) ListPublic(ctx context.Context) ([]*models.Channel, error) {
	channels, err := s.repo.ListPublic(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list channels", err)
	}
	return channels, nil
}
