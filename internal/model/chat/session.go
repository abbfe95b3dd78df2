package chat

import "time"

// Session is an owned, append-only conversation transcript held in memory.
type Session struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"-"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}

// Summary is the listing projection of a session.
type Summary struct {
	ID           string    `json:"id"`
	MessageCount int       `json:"messageCount"`
	Preview      string    `json:"preview"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}
