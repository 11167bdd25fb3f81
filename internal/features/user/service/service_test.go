package service

import (
	"context"
	"strings"
	"testing"

	apperrors "gslase-backend/internal/common/errors"
	chatmodels "gslase-backend/internal/features/chat/models"
	"gslase-backend/internal/features/user/models"
	"gslase-backend/internal/features/user/repository"

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

func (r *fakeUserRepo) Search(_ context.Context, pattern string, excludeIDs []int64, limit int) ([]*models.User, error) {
	excluded := map[int64]bool{}
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var out []*models.User
	for _, u := range r.users {
		if excluded[u.ID] {
			continue
		}
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(pattern)) {
			out = append(out, u)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeMessageRepo struct {
	messages []*chatmodels.Message
	nextID   int64
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *chatmodels.Message) error {
	r.nextID++
	msg.ID = r.nextID
	r.messages = append(r.messages, msg)
	return nil
}

func (r *fakeMessageRepo) Thread(_ context.Context, a, b int64) ([]*chatmodels.Message, error) {
	var out []*chatmodels.Message
	for _, m := range r.messages {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	return out, nil
}

func seededRepo() *fakeUserRepo {
	repo := newFakeUserRepo()
	repo.add(&models.User{Username: "GSLASE_Bot", Email: "bot@gslase.com", Role: models.RoleBot})
	repo.add(&models.User{Username: "admin", Email: "admin@gslase.com", Role: models.RoleAdmin, GlassBalance: 1000})
	return repo
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with default balance and welcome message", func(t *testing.T) {
		repo := seededRepo()
		messages := &fakeMessageRepo{}
		svc := NewUserService(repo, messages)

		user, err := svc.Register(ctx, "alice", "a@x.com", "secret", "secret")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.Equal(t, models.DefaultGlassBalance, user.GlassBalance)
		assert.False(t, user.IsBanned)

		require.Len(t, messages.messages, 1)
		welcome := messages.messages[0]
		assert.Equal(t, models.BotUserID, welcome.SenderID)
		assert.Equal(t, user.ID, welcome.ReceiverID)
		assert.Equal(t, chatmodels.ContentTypeText, welcome.ContentType)
	})

	t.Run("rejects mismatched passwords", func(t *testing.T) {
		svc := NewUserService(seededRepo(), &fakeMessageRepo{})

		_, err := svc.Register(ctx, "alice", "a@x.com", "secret", "other")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		repo := seededRepo()
		svc := NewUserService(repo, &fakeMessageRepo{})

		_, err := svc.Register(ctx, "alice", "a@x.com", "secret", "secret")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice", "other@x.com", "secret", "secret")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeUsernameTaken))
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := seededRepo()
		svc := NewUserService(repo, &fakeMessageRepo{})

		_, err := svc.Register(ctx, "alice", "a@x.com", "secret", "secret")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "bob", "a@x.com", "secret", "secret")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeEmailTaken))
	})

	t.Run("rejects empty fields", func(t *testing.T) {
		svc := NewUserService(seededRepo(), &fakeMessageRepo{})

		for _, tc := range []struct{ username, email, password string }{
			{"", "a@x.com", "secret"},
			{"alice", "", "secret"},
			{"alice", "a@x.com", ""},
		} {
			_, err := svc.Register(ctx, tc.username, tc.email, tc.password, tc.password)
			assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
		}
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo()
	svc := NewUserService(repo, &fakeMessageRepo{})

	registered, err := svc.Register(ctx, "alice", "a@x.com", "secret", "secret")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "alice", "nope")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidCredentials))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody", "secret")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidCredentials))
	})

	t.Run("banned account is refused", func(t *testing.T) {
		require.NoError(t, repo.SetBanned(ctx, registered.ID, true))
		defer func() { _ = repo.SetBanned(ctx, registered.ID, false) }()

		_, err := svc.Authenticate(ctx, "alice", "secret")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeUserBanned))
	})
}

func TestSetPassword(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(seededRepo(), &fakeMessageRepo{})

	user, err := svc.Register(ctx, "alice", "a@x.com", "secret", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.SetPassword(ctx, user, "changed"))

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("changed")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))

	err = svc.SetPassword(ctx, user, "")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo()
	svc := NewUserService(repo, &fakeMessageRepo{})

	alice, err := svc.Register(ctx, "alice", "a@x.com", "secret", "secret")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "alicia", "al@x.com", "secret", "secret")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "bob", "b@x.com", "secret", "secret")
	require.NoError(t, err)

	t.Run("matches substring, excludes caller and bot", func(t *testing.T) {
		results, err := svc.Search(ctx, alice, "ali")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "alicia", results[0].Username)
	})

	t.Run("empty query returns nothing", func(t *testing.T) {
		results, err := svc.Search(ctx, alice, "   ")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
