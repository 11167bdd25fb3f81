package repository

import (
	"context"
	"errors"

	"gslase-backend/internal/features/user/models"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already in use")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	SetBanned(ctx context.Context, id int64, banned bool) error
	AddGlass(ctx context.Context, id int64, amount int) (int, error)
	// AddGlassAll credits every account except the bot in one statement and
	// reports how many rows it touched.
	AddGlassAll(ctx context.Context, amount int) (int, error)
	Search(ctx context.Context, pattern string, excludeIDs []int64, limit int) ([]*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}
