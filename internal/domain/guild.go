package domain

import "time"

// GuildRecord is a persisted guild
type GuildRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
