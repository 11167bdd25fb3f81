package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gslase-backend/internal/features/user/models"
	"gslase-backend/internal/features/user/repository"

	"github.com/lib/pq"
)

const userColumns = "id, username, email, password_hash, role, glass_balance, is_premium, is_banned, avatar_url, created_at"

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.UserRepository {
	return &postgresRepository{db: db}
}

// Create inserts a new user and fills in the generated id and created_at.
// Unique violations are mapped to the taken-username/email sentinels.
func (r *postgresRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, role, glass_balance, is_premium, is_banned, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Role,
		user.GlassBalance, user.IsPremium, user.IsBanned, user.AvatarURL).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			if strings.Contains(pqErr.Constraint, "email") {
				return repository.ErrEmailTaken
			}
			return repository.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

func (r *postgresRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role,
		&user.GlassBalance, &user.IsPremium, &user.IsBanned, &user.AvatarURL,
		&user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpdatePasswordHash replaces the stored credential. No history is kept.
func (r *postgresRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET password_hash = $2 WHERE id = $1", id, hash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return requireRow(result, repository.ErrUserNotFound)
}

func (r *postgresRepository) SetBanned(ctx context.Context, id int64, banned bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET is_banned = $2 WHERE id = $1", id, banned)
	if err != nil {
		return fmt.Errorf("failed to set ban flag: %w", err)
	}
	return requireRow(result, repository.ErrUserNotFound)
}

// AddGlass adjusts one balance and returns the new value. Amount may be
// negative (admin deduction).
func (r *postgresRepository) AddGlass(ctx context.Context, id int64, amount int) (int, error) {
	var balance int
	err := r.db.QueryRowContext(ctx,
		"UPDATE users SET glass_balance = glass_balance + $2 WHERE id = $1 RETURNING glass_balance",
		id, amount).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, repository.ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to add glass: %w", err)
	}
	return balance, nil
}

// AddGlassAll credits everyone but the bot in a single atomic statement.
func (r *postgresRepository) AddGlassAll(ctx context.Context, amount int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET glass_balance = glass_balance + $1 WHERE id <> $2",
		amount, models.BotUserID)
	if err != nil {
		return 0, fmt.Errorf("failed to add glass to all users: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(affected), nil
}

// Search matches usernames by case-insensitive substring, skipping the given
// ids (the caller and the bot).
func (r *postgresRepository) Search(ctx context.Context, pattern string, excludeIDs []int64, limit int) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username ILIKE $1 AND id <> ALL($2)
		ORDER BY username
		LIMIT $3
	`

	rows, err := r.db.QueryContext(ctx, query, "%"+pattern+"%", pq.Array(excludeIDs), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (r *postgresRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func scanUsers(rows *sql.Rows) ([]*models.User, error) {
	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role,
			&user.GlassBalance, &user.IsPremium, &user.IsBanned, &user.AvatarURL,
			&user.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

func requireRow(result sql.Result, missing error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return missing
	}
	return nil
}
