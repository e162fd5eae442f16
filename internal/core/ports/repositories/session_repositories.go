package repositories

import (
	"context"
	"time"

	"github.com/taleskillz/data_collect_app/internal/core/domain"
)

// SessionRepositoryFacade persists login sessions.
type SessionRepositoryFacade interface {
	// SaveSession persists a new session row.
	SaveSession(ctx context.Context, session domain.Session) error

	// FindSessionByTokenHash retrieves a session by its hashed token.
	FindSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)

	// DeleteSession removes a session (logout).
	DeleteSession(ctx context.Context, sessionID string) error

	// DeleteExpiredSessions removes sessions that expired before the cutoff.
	DeleteExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error)
}
