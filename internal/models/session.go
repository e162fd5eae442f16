package models

import "time"

// Session is the database shape of a sessions row.
type Session struct {
	SessionID string    `db:"session_id"`
	UserID    string    `db:"user_id"`
	TokenHash string    `db:"token_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
