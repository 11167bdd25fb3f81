package service

import (
	"context"
	"errors"

	apperrors "gslase-backend/internal/common/errors"
	"gslase-backend/internal/features/user/models"
	"gslase-backend/internal/features/user/repository"
	userservice "gslase-backend/internal/features/user/service"
)

// AdminService wraps the privileged mutations over the identity store. Every
// operation checks the role predicate itself and refuses with a forbidden
// error; the HTTP layer only translates, never decides.
type AdminService interface {
	UserInfo(ctx context.Context, actor *models.User, username string) (*models.User, error)
	ListUsers(ctx context.Context, actor *models.User) ([]*models.User, error)
	GrantGlass(ctx context.Context, actor *models.User, username string, amount int) (int, error)
	GrantGlassAll(ctx context.Context, actor *models.User, amount int) (int, error)
	BanUser(ctx context.Context, actor *models.User, username string) error
	UnbanUser(ctx context.Context, actor *models.User, username string) error
	ResetPassword(ctx context.Context, actor *models.User, username, newPassword string) error
}

type adminService struct {
	users    repository.UserRepository
	identity userservice.UserService
}

func NewAdminService(users repository.UserRepository, identity userservice.UserService) AdminService {
	return &adminService{
		users:    users,
		identity: identity,
	}
}

func (s *adminService) authorize(actor *models.User) error {
	if !actor.IsAdmin() {
		return apperrors.NewForbiddenError("admin role required")
	}
	return nil
}

func (s *adminService) UserInfo(ctx context.Context, actor *models.User, username string) (*models.User, error) {
	if err := s.authorize(actor); err != nil {
		return nil, err
	}
	return s.getByUsername(ctx, username)
}

func (s *adminService) ListUsers(ctx context.Context, actor *models.User) ([]*models.User, error) {
	if err := s.authorize(actor); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list users", err)
	}
	return users, nil
}

// GrantGlass adjusts a single balance and returns the new value. The amount
// is unrestricted here; negative values act as deductions.
func (s *adminService) GrantGlass(ctx context.Context, actor *models.User, username string, amount int) (int, error) {
	if err := s.authorize(actor); err != nil {
		return 0, err
	}

	user, err := s.getByUsername(ctx, username)
	if err != nil {
		return 0, err
	}

	balance, err := s.users.AddGlass(ctx, user.ID, amount)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, apperrors.NewUserNotFoundError(username)
		}
		return 0, apperrors.NewDatabaseError("add glass", err)
	}

	return balance, nil
}

// GrantGlassAll credits every account except the bot atomically and reports
// how many were touched. Zero and negative amounts are refused.
func (s *adminService) GrantGlassAll(ctx context.Context, actor *models.User, amount int) (int, error) {
	if err := s.authorize(actor); err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, apperrors.New(apperrors.ErrCodeInvalidAmount, "amount must be positive")
	}

	affected, err := s.users.AddGlassAll(ctx, amount)
	if err != nil {
		return 0, apperrors.NewDatabaseError("add glass to all users", err)
	}

	return affected, nil
}

func (s *adminService) BanUser(ctx context.Context, actor *models.User, username string) error {
	return s.setBanned(ctx, actor, username, true)
}

func (s *adminService) UnbanUser(ctx context.Context, actor *models.User, username string) error {
	return s.setBanned(ctx, actor, username, false)
}

func (s *adminService) setBanned(ctx context.Context, actor *models.User, username string, banned bool) error {
	if err := s.authorize(actor); err != nil {
		return err
	}

	user, err := s.getByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := s.users.SetBanned(ctx, user.ID, banned); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperrors.NewUserNotFoundError(username)
		}
		return apperrors.NewDatabaseError("set ban flag", err)
	}

	return nil
}

// ResetPassword forces a new credential without verifying the old one.
func (s *adminService) ResetPassword(ctx context.Context, actor *models.User, username, newPassword string) error {
	if err := s.authorize(actor); err != nil {
		return err
	}

	user, err := s.getByUsername(ctx, username)
	if err != nil {
		return err
	}

	return s.identity.SetPassword(ctx, user, newPassword)
}

func (s *adminService) getByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.NewUserNotFoundError(username)
		}
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	return user, nil
}
