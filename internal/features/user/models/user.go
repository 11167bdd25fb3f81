package models

import "time"

// Roles held by the role column. The bot and admin accounts are seeded at
// bootstrap; everyone registering gets RoleUser.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleBot   = "bot"
)

// BotUserID is the reserved identity that authors every automated message
// (welcome, invitation announcements, invitation outcomes). Seeded as the
// first row at bootstrap.
const BotUserID int64 = 1

// DefaultGlassBalance is the starting balance granted at registration.
const DefaultGlassBalance = 100

// DefaultAvatarURL is assigned to accounts that never uploaded an avatar.
const DefaultAvatarURL = "/static/default-avatar.png"

// User is the full account record, including the credential hash. Never
// serialized to clients directly; use Response().
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	GlassBalance int       `json:"glass_balance"`
	IsPremium    bool      `json:"is_premium"`
	IsBanned     bool      `json:"is_banned"`
	AvatarURL    string    `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserResponse is the public projection of a user.
// @Description Public user information
type UserResponse struct {
	ID           int64     `json:"id" example:"3"`
	Username     string    `json:"username" example:"alice"`
	Email        string    `json:"email" example:"alice@example.com"`
	Role         string    `json:"role" example:"user" enums:"user,admin,bot"`
	GlassBalance int       `json:"glass_balance" example:"100"`
	IsPremium    bool      `json:"is_premium" example:"false"`
	AvatarURL    string    `json:"avatar_url" example:"/static/default-avatar.png"`
	CreatedAt    time.Time `json:"created_at" example:"2024-03-15T14:30:00Z"`
}

// SearchResult is the trimmed projection returned by user search.
type SearchResult struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar"`
}

// Response converts a User to its public projection.
func (u *User) Response() *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role,
		GlassBalance: u.GlassBalance,
		IsPremium:    u.IsPremium,
		AvatarURL:    u.AvatarURL,
		CreatedAt:    u.CreatedAt,
	}
}

// IsAdmin is the authorization predicate for the admin gate. A role claim on
// the record, not a username comparison.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
