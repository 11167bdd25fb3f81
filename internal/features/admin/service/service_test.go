package service

import (
	"context"
	"testing"

	apperrors "gslase-backend/internal/common/errors"
	chatmodels "gslase-backend/internal/features/chat/models"
	"gslase-backend/internal/features/user/models"
	"gslase-backend/internal/features/user/repository"
	userservice "gslase-backend/internal/features/user/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) add(u *models.User) *models.User {
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Username == user.Username {
			return repository.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	r.add(user)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *fakeUserRepo) SetBanned(_ context.Context, id int64, banned bool) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.IsBanned = banned
	return nil
}

func (r *fakeUserRepo) AddGlass(_ context.Context, id int64, amount int) (int, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, repository.ErrUserNotFound
	}
	u.GlassBalance += amount
	return u.GlassBalance, nil
}

func (r *fakeUserRepo) AddGlassAll(_ context.Context, amount int) (int, error) {
	affected := 0
	for _, u := range r.users {
		if u.ID == models.BotUserID {
			continue
		}
		u.GlassBalance += amount
		affected++
	}
	return affected, nil
}

func (r *fakeUserRepo) Search(context.Context, string, []int64, int) ([]*models.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

type noopMessageRepo struct{}

func (noopMessageRepo) Create(context.Context, *chatmodels.Message) error { return nil }
func (noopMessageRepo) Thread(context.Context, int64, int64) ([]*chatmodels.Message, error) {
	return nil, nil
}

func fixture() (AdminService, *fakeUserRepo, *models.User, *models.User, *models.User) {
	repo := newFakeUserRepo()
	bot := repo.add(&models.User{Username: "GSLASE_Bot", Email: "bot@gslase.com", Role: models.RoleBot})
	admin := repo.add(&models.User{Username: "admin", Email: "admin@gslase.com", Role: models.RoleAdmin, GlassBalance: 1000})
	alice := repo.add(&models.User{Username: "alice", Email: "a@x.com", Role: models.RoleUser, GlassBalance: 100})

	identity := userservice.NewUserService(repo, noopMessageRepo{})
	return NewAdminService(repo, identity), repo, bot, admin, alice
}

func TestGrantGlass(t *testing.T) {
	ctx := context.Background()

	t.Run("credits a single user", func(t *testing.T) {
		svc, _, _, admin, alice := fixture()

		balance, err := svc.GrantGlass(ctx, admin, "alice", 50)
		require.NoError(t, err)
		assert.Equal(t, 150, balance)
		assert.Equal(t, 150, alice.GlassBalance)
	})

	t.Run("negative amount deducts", func(t *testing.T) {
		svc, _, _, admin, alice := fixture()

		balance, err := svc.GrantGlass(ctx, admin, "alice", -30)
		require.NoError(t, err)
		assert.Equal(t, 70, balance)
		assert.Equal(t, 70, alice.GlassBalance)
	})

	t.Run("forbidden for non-admin", func(t *testing.T) {
		svc, _, _, _, alice := fixture()

		_, err := svc.GrantGlass(ctx, alice, "admin", 50)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeForbidden))
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _, _, admin, _ := fixture()

		_, err := svc.GrantGlass(ctx, admin, "nobody", 50)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeUserNotFound))
	})
}

func TestGrantGlassAll(t *testing.T) {
	ctx := context.Background()

	t.Run("credits everyone except the bot", func(t *testing.T) {
		svc, _, bot, admin, alice := fixture()

		affected, err := svc.GrantGlassAll(ctx, admin, 25)
		require.NoError(t, err)
		assert.Equal(t, 2, affected)
		assert.Equal(t, 0, bot.GlassBalance)
		assert.Equal(t, 1025, admin.GlassBalance)
		assert.Equal(t, 125, alice.GlassBalance)
	})

	t.Run("rejects zero and negative amounts", func(t *testing.T) {
		svc, _, _, admin, alice := fixture()

		for _, amount := range []int{0, -10} {
			_, err := svc.GrantGlassAll(ctx, admin, amount)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidAmount))
		}
		assert.Equal(t, 100, alice.GlassBalance)
	})

	t.Run("forbidden for non-admin, balances untouched", func(t *testing.T) {
		svc, _, _, admin, alice := fixture()

		_, err := svc.GrantGlassAll(ctx, alice, 25)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeForbidden))
		assert.Equal(t, 100, alice.GlassBalance)
		assert.Equal(t, 1000, admin.GlassBalance)
	})
}

func TestBanUnban(t *testing.T) {
	ctx := context.Background()
	svc, _, _, admin, alice := fixture()

	require.NoError(t, svc.BanUser(ctx, admin, "alice"))
	assert.True(t, alice.IsBanned)

	require.NoError(t, svc.UnbanUser(ctx, admin, "alice"))
	assert.False(t, alice.IsBanned)

	err := svc.BanUser(ctx, alice, "admin")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeForbidden))

	err = svc.BanUser(ctx, admin, "nobody")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeUserNotFound))
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	svc, _, _, admin, alice := fixture()

	require.NoError(t, svc.ResetPassword(ctx, admin, "alice", "fresh"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(alice.PasswordHash), []byte("fresh")))

	err := svc.ResetPassword(ctx, alice, "admin", "fresh")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeForbidden))

	err = svc.ResetPassword(ctx, admin, "alice", "")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
}

func TestUserInfoAndList(t *testing.T) {
	ctx := context.Background()
	svc, _, _, admin, alice := fixture()

	user, err := svc.UserInfo(ctx, admin, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)

	_, err = svc.UserInfo(ctx, alice, "admin")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeForbidden))

	users, err := svc.ListUsers(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	_, err = svc.ListUsers(ctx, alice)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeForbidden))
}
