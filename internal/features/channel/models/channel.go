package models

import "time"

// Channel is a named destination for invitations. Membership is not tracked
// here; invitations reference channels by name only.
type Channel struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"is_public"`
	IsPrivate   bool      `json:"is_private"`
	CostToJoin  int       `json:"cost_to_join"`
	CreatorID   int64     `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
}
