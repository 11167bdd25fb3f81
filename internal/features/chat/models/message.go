package models

import "time"

// Content types carried by the content_type column. Invitation messages hold
// a back-reference to the invitation they announce.
const (
	ContentTypeText       = "text"
	ContentTypeInvitation = "invitation"
)

// Message is one append-only row of the message log. There is no update or
// delete anywhere in the system.
type Message struct {
	ID             int64     `json:"id"`
	SenderID       int64     `json:"sender_id"`
	ReceiverID     int64     `json:"receiver_id"`
	Content        string    `json:"content"`
	ContentType    string    `json:"content_type"`
	InvitationID   *int64    `json:"invitation_id,omitempty"`
	CreatedAt      time.Time `json:"timestamp"`
	SenderUsername string    `json:"-"` // filled on reads that join users
}

// ThreadMessage is one element of a conversation replay, annotated with the
// derived is_own flag for the requesting user.
// @Description Message within a two-party conversation
type ThreadMessage struct {
	ID           int64     `json:"id" example:"42"`
	Content      string    `json:"content" example:"hello"`
	Sender       string    `json:"sender" example:"alice"`
	ContentType  string    `json:"content_type" example:"text" enums:"text,invitation"`
	InvitationID *int64    `json:"invitation_id,omitempty"`
	Timestamp    time.Time `json:"timestamp" example:"2024-03-15T14:30:00Z"`
	IsOwn        bool      `json:"is_own" example:"true"`
}
