package models

import "time"

// Invitation statuses. pending is the only non-terminal state; it moves to
// accepted or rejected exactly once, and only by the invited user.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Invitation is a pending offer to join a named channel. Channels are
// referenced by name, not id; the channel row does not have to exist.
type Invitation struct {
	ID            int64     `json:"id"`
	InviterID     int64     `json:"inviter_id"`
	InvitedUserID int64     `json:"invited_user_id"`
	ChannelName   string    `json:"channel_name"`
	Status        string    `json:"status" enums:"pending,accepted,rejected"`
	CreatedAt     time.Time `json:"created_at"`
}
