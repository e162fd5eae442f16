package domain

import "time"

// Session is a server-side login session. Only a SHA-256 hash of the token
// is stored; the raw token lives in the client's cookie.
type Session struct {
	SessionID string    `json:"sessionID"`
	UserID    string    `json:"userID"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
