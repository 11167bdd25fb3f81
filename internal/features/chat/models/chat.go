package models

import "time"

// Chat is the explicit handle for a two-party conversation. The pair is
// stored normalized (User1ID < User2ID) and a unique constraint over the pair
// makes get-or-create race-safe. Conversation content is not linked to this
// row; it is derived from the message log by participant pair.
type Chat struct {
	ID        int64     `json:"id"`
	User1ID   int64     `json:"user1_id"`
	User2ID   int64     `json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Other returns the counterpart of userID in this chat.
func (c *Chat) Other(userID int64) int64 {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// ChatSummary is one row of a user's chat list: the counterpart plus the most
// recent message between the two participants.
// @Description Chat list entry
type ChatSummary struct {
	ChatID          int64      `json:"chat_id" example:"7"`
	OtherUserID     int64      `json:"other_user_id" example:"4"`
	OtherUsername   string     `json:"other_username" example:"bob"`
	LastMessage     string     `json:"last_message" example:"see you"`
	LastMessageTime *time.Time `json:"last_message_time,omitempty"`
}
