package models

// FeedEvent is what the live feed socket pushes to clients.
type FeedEvent struct {
	Event   string `json:"event"`
	GramID  uint   `json:"gram_id"`
	UserID  uint   `json:"user_id"`
	Payload any    `json:"payload,omitempty"`
}
