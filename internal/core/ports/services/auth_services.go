package services

import (
	"context"
	"time"

	"github.com/taleskillz/data_collect_app/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade issues and validates JWT access tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user, returning the
	// token and its expiry.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// SessionSvcFacade manages server-side login sessions backed by the
// sessions table. The raw token only ever lives in the client cookie; the
// store holds a SHA-256 hash.
type SessionSvcFacade interface {
	// CreateSession opens a session for the user and returns the raw token.
	CreateSession(ctx context.Context, user *domain.User) (string, *domain.Session, error)

	// ResolveSession maps a raw token to the logged-in user. Expired or
	// unknown tokens yield apperrors.ErrUnauthorized.
	ResolveSession(ctx context.Context, rawToken string) (*domain.User, error)

	// RevokeSession deletes the session behind the raw token (logout).
	RevokeSession(ctx context.Context, rawToken string) error

	// PurgeExpired removes sessions that have passed their expiry.
	PurgeExpired(ctx context.Context) (int64, error)
}

// GoogleOAuthHandlerSvcFacade wraps the Google OAuth code exchange and ID
// token validation used by the Google sign-in flow.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a CSRF state token for the OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)

	// GetGoogleLoginURL returns the Google consent URL for the state.
	GetGoogleLoginURL(ctx context.Context, state string) string

	// ExchangeCodeForToken trades an authorization code for tokens.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// ValidateGoogleIDToken verifies an ID token and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
