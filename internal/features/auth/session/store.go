package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound means the token is unknown or the session expired.
var ErrNotFound = errors.New("session not found")

const keyPrefix = "session:"

// Store keeps opaque bearer tokens mapped to user ids in redis. This is the
// whole identity/session collaborator: the rest of the system only ever asks
// "who is calling".
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Create issues a fresh token for userID.
func (s *Store) Create(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	err := s.rdb.Set(ctx, keyPrefix+token, userID, s.ttl).Err()
	if err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

// Resolve returns the user id behind a token and refreshes its TTL.
func (s *Store) Resolve(ctx context.Context, token string) (int64, error) {
	val, err := s.rdb.GetEx(ctx, keyPrefix+token, s.ttl).Result()
	if err == redis.Nil {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve session: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value: %w", err)
	}
	return userID, nil
}

// Destroy invalidates a token. Unknown tokens are not an error.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
