package db

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Reserved accounts created at bootstrap. The bot must be row 1: every
// automated message names it as sender.
const (
	BotUserID     = 1
	BotUsername   = "GSLASE_Bot"
	AdminUserID   = 2
	AdminUsername = "admin"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      VARCHAR(64) NOT NULL UNIQUE,
		email         VARCHAR(120) NOT NULL UNIQUE,
		password_hash VARCHAR(256) NOT NULL,
		role          VARCHAR(20) NOT NULL DEFAULT 'user',
		glass_balance INTEGER NOT NULL DEFAULT 100,
		is_premium    BOOLEAN NOT NULL DEFAULT FALSE,
		is_banned     BOOLEAN NOT NULL DEFAULT FALSE,
		avatar_url    VARCHAR(256) NOT NULL DEFAULT '/static/default-avatar.png',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id            BIGSERIAL PRIMARY KEY,
		sender_id     BIGINT NOT NULL REFERENCES users(id),
		receiver_id   BIGINT REFERENCES users(id),
		content       TEXT NOT NULL,
		content_type  VARCHAR(20) NOT NULL DEFAULT 'text',
		invitation_id BIGINT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_pair
		ON messages (sender_id, receiver_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS chats (
		id         BIGSERIAL PRIMARY KEY,
		user1_id   BIGINT NOT NULL REFERENCES users(id),
		user2_id   BIGINT NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT chats_pair_ordered CHECK (user1_id < user2_id),
		CONSTRAINT chats_pair_unique UNIQUE (user1_id, user2_id)
	)`,
	`CREATE TABLE IF NOT EXISTS invitations (
		id              BIGSERIAL PRIMARY KEY,
		inviter_id      BIGINT NOT NULL REFERENCES users(id),
		invited_user_id BIGINT NOT NULL REFERENCES users(id),
		channel_name    VARCHAR(100) NOT NULL,
		status          VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS channels (
		id           BIGSERIAL PRIMARY KEY,
		name         VARCHAR(100) NOT NULL UNIQUE,
		description  TEXT NOT NULL DEFAULT '',
		is_public    BOOLEAN NOT NULL DEFAULT TRUE,
		is_private   BOOLEAN NOT NULL DEFAULT FALSE,
		cost_to_join INTEGER NOT NULL DEFAULT 0,
		creator_id   BIGINT REFERENCES users(id),
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the schema and seeds the two reserved accounts. Safe to run
// on every startup.
func Migrate(ctx context.Context, db *sql.DB, botPassword, adminPassword string) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return seed(ctx, db, botPassword, adminPassword)
}

// seed inserts the bot and admin rows with fixed ids. ON CONFLICT keeps
// repeated startups from duplicating them; the sequence is advanced past the
// seeded ids so registration never collides with them.
func seed(ctx context.Context, db *sql.DB, botPassword, adminPassword string) error {
	botHash, err := bcrypt.GenerateFromPassword([]byte(botPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash bot password: %w", err)
	}
	adminHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, role, glass_balance, is_premium)
		VALUES
			($1, $2, 'bot@gslase.com', $3, 'bot', 0, FALSE),
			($4, $5, 'admin@gslase.com', $6, 'admin', 1000, TRUE)
		ON CONFLICT (username) DO NOTHING
	`, BotUserID, BotUsername, string(botHash), AdminUserID, AdminUsername, string(adminHash))
	if err != nil {
		return fmt.Errorf("seed reserved users: %w", err)
	}

	_, err = db.ExecContext(ctx,
		"SELECT setval('users_id_seq', GREATEST((SELECT MAX(id) FROM users), $1))", AdminUserID)
	if err != nil {
		return fmt.Errorf("advance users sequence: %w", err)
	}

	return nil
}
