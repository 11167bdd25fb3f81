package service

import (
	"context"
	"testing"

	apperrors "gslase-backend/internal/common/errors"
	"gslase-backend/internal/features/channel/models"
	"gslase-backend/internal/features/channel/repository"
	usermodels "gslase-backend/internal/features/user/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannelRepo struct {
	channels map[string]*models.Channel
	nextID   int64
}

func newFakeChannelRepo() *fakeChannelRepo {
	return &fakeChannelRepo{channels: map[string]*models.Channel{}}
}

func (r *fakeChannelRepo) Create(_ context.Context, channel *models.Channel) error {
	if _, ok := r.channels[channel.Name]; ok {
		return repository.ErrNameTaken
	}
	r.nextID++
	channel.ID = r.nextID
	r.channels[channel.Name] = channel
	return nil
}

func (r *fakeChannelRepo) GetByName(_ context.Context, name string) (*models.Channel, error) {
	if c, ok := r.channels[name]; ok {
		return c, nil
	}
	return nil, repository.ErrChannelNotFound
}

func (r *fakeChannelRepo) ListPublic(_ context.Context) ([]*models.Channel, error) {
	var out []*models.Channel
	for _, c := range r.channels {
		if c.IsPublic {
			out = append(out, c)
		}
	}
	return out, nil
}

func TestCreateChannel(t *testing.T) {
	ctx := context.Background()
	creator := &usermodels.User{ID: 3, Username: "alice"}

	t.Run("creates with trimmed name and derived privacy", func(t *testing.T) {
		svc := NewChannelService(newFakeChannelRepo())

		channel, err := svc.Create(ctx, creator, "  gophers  ", "go talk", false, 10)
		require.NoError(t, err)
		assert.Equal(t, "gophers", channel.Name)
		assert.False(t, channel.IsPublic)
		assert.True(t, channel.IsPrivate)
		assert.Equal(t, 10, channel.CostToJoin)
		assert.Equal(t, creator.ID, channel.CreatorID)
	})

	t.Run("rejects empty name and negative cost", func(t *testing.T) {
		svc := NewChannelService(newFakeChannelRepo())

		_, err := svc.Create(ctx, creator, "   ", "", true, 0)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))

		_, err = svc.Create(ctx, creator, "gophers", "", true, -1)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		svc := NewChannelService(newFakeChannelRepo())

		_, err := svc.Create(ctx, creator, "gophers", "", true, 0)
		require.NoError(t, err)

		_, err = svc.Create(ctx, creator, "gophers", "", true, 0)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeConflict))
	})
}

func TestGetAndListChannels(t *testing.T) {
	ctx := context.Background()
	creator := &usermodels.User{ID: 3, Username: "alice"}
	svc := NewChannelService(newFakeChannelRepo())

	_, err := svc.Create(ctx, creator, "gophers", "", true, 0)
	require.NoError(t, err)
	_, err = svc.Create(ctx, creator, "secret", "", false, 5)
	require.NoError(t, err)

	channel, err := svc.GetByName(ctx, "gophers")
	require.NoError(t, err)
	assert.Equal(t, "gophers", channel.Name)

	_, err = svc.GetByName(ctx, "missing")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeChannelNotFound))

	public, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "gophers", public[0].Name)
}
