package service

import (
	"context"
	"errors"
	"strings"

	apperrors "gslase-backend/internal/common/errors"
	"gslase-backend/internal/common/logger"
	chatmodels "gslase-backend/internal/features/chat/models"
	chatrepo "gslase-backend/internal/features/chat/repository"
	"gslase-backend/internal/features/user/models"
	"gslase-backend/internal/features/user/repository"

	"golang.org/x/crypto/bcrypt"
)

const welcomeText = "Welcome to GSLASE! Here you can chat with other users."

const searchLimit = 10

// UserService is the identity store: registration, authentication and
// credential management. The caller is always passed explicitly.
type UserService interface {
	Register(ctx context.Context, username, email, password, confirmPassword string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	SetPassword(ctx context.Context, user *models.User, newPassword string) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Search(ctx context.Context, caller *models.User, query string) ([]*models.SearchResult, error)
}

type userService struct {
	repo     repository.UserRepository
	messages chatrepo.MessageRepository
}

func NewUserService(repo repository.UserRepository, messages chatrepo.MessageRepository) UserService {
	return &userService{
		repo:     repo,
		messages: messages,
	}
}

// Register creates an account with the default glass balance and has the bot
// welcome the new user. The welcome write happens after the user row commits;
// a failure there is logged but does not undo the registration.
func (s *userService) Register(ctx context.Context, username, email, password, confirmPassword string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	switch {
	case username == "":
		return nil, apperrors.NewValidationError("username", "must not be empty")
	case email == "":
		return nil, apperrors.NewValidationError("email", "must not be empty")
	case password == "":
		return nil, apperrors.NewValidationError("password", "must not be empty")
	case password != confirmPassword:
		return nil, apperrors.NewValidationError("confirm_password", "passwords do not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to hash password")
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		GlassBalance: models.DefaultGlassBalance,
		AvatarURL:    models.DefaultAvatarURL,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameTaken):
			return nil, apperrors.Newf(apperrors.ErrCodeUsernameTaken, "username %q is already taken", username)
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, apperrors.Newf(apperrors.ErrCodeEmailTaken, "email %q is already in use", email)
		default:
			return nil, apperrors.NewDatabaseError("create user", err)
		}
	}

	welcome := &chatmodels.Message{
		SenderID:    models.BotUserID,
		ReceiverID:  user.ID,
		Content:     welcomeText,
		ContentType: chatmodels.ContentTypeText,
	}
	if err := s.messages.Create(ctx, welcome); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to send welcome message")
	}

	return user, nil
}

// Authenticate verifies the credential. Unknown username and wrong password
// are indistinguishable to the caller. Banned accounts are refused here, a
// deliberate departure from the original which let them through.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeInvalidCredentials, "invalid username or password")
		}
		return nil, apperrors.NewDatabaseError("lookup user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidCredentials, "invalid username or password")
	}

	if user.IsBanned {
		return nil, apperrors.Newf(apperrors.ErrCodeUserBanned, "account %q is banned", username)
	}

	return user, nil
}

// SetPassword rehashes and replaces the credential. No history, no old
// password check; the admin gate relies on that for forced resets.
func (s *userService) SetPassword(ctx context.Context, user *models.User, newPassword string) error {
	if newPassword == "" {
		return apperrors.NewValidationError("new_password", "must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to hash password")
	}

	if err := s.repo.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperrors.NewUserNotFoundError(user.Username)
		}
		return apperrors.NewDatabaseError("update password", err)
	}
	user.PasswordHash = string(hash)

	return nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.NewUserNotFoundError(id)
		}
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	return user, nil
}

// Search finds users by username substring, skipping the caller and the bot.
func (s *userService) Search(ctx context.Context, caller *models.User, query string) ([]*models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*models.SearchResult{}, nil
	}

	users, err := s.repo.Search(ctx, query, []int64{caller.ID, models.BotUserID}, searchLimit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("search users", err)
	}

	results := make([]*models.SearchResult, 0, len(users))
	for _, u := range users {
		results = append(results, &models.SearchResult{
			ID:        u.ID,
			Username:  u.Username,
			AvatarURL: u.AvatarURL,
		})
	}

	return results, nil
}
