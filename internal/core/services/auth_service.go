package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/taleskillz/data_collect_app/internal/apperrors"
	"github.com/taleskillz/data_collect_app/internal/core/domain"
	portsrepo "github.com/taleskillz/data_collect_app/internal/core/ports/repositories"
	portssvc "github.com/taleskillz/data_collect_app/internal/core/ports/services"
	"github.com/taleskillz/data_collect_app/internal/platform/config"
	"github.com/taleskillz/data_collect_app/internal/utils"
)

// tokenService implements TokenSvcFacade for stateless JWT access tokens.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, expiryTime, nil
}

// sessionService implements SessionSvcFacade on top of the sessions table.
type sessionService struct {
	cfg         *config.Config
	sessionRepo portsrepo.SessionRepositoryFacade
	userService portssvc.UserSvcFacade
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(cfg *config.Config, sessionRepo portsrepo.SessionRepositoryFacade, userService portssvc.UserSvcFacade) portssvc.SessionSvcFacade {
	return &sessionService{
		cfg:         cfg,
		sessionRepo: sessionRepo,
		userService: userService,
	}
}

// CreateSession opens a session and returns the raw token. The store only
// ever sees the SHA-256 hash.
func (s *sessionService) CreateSession(ctx context.Context, user *domain.User) (string, *domain.Session, error) {
	rawToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := domain.Session{
		SessionID: uuid.NewString(),
		UserID:    user.UserID,
		TokenHash: utils.HashSessionToken(rawToken),
		ExpiresAt: now.Add(s.cfg.SessionTTL),
		CreatedAt: now,
	}
	if err := s.sessionRepo.SaveSession(ctx, session); err != nil {
		return "", nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return rawToken, &session, nil
}

// ResolveSession maps a raw cookie token to the logged-in user.
func (s *sessionService) ResolveSession(ctx context.Context, rawToken string) (*domain.User, error) {
	if rawToken == "" {
		return nil, apperrors.ErrUnauthorized
	}

	session, err := s.sessionRepo.FindSessionByTokenHash(ctx, utils.HashSessionToken(rawToken))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if session.Expired(time.Now()) {
		// Lazily drop the row; the periodic purge catches the rest.
		_ = s.sessionRepo.DeleteSession(ctx, session.SessionID)
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.userService.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to resolve session user: %w", err)
	}
	return user, nil
}

// RevokeSession deletes the session behind the raw token.
func (s *sessionService) RevokeSession(ctx context.Context, rawToken string) error {
	session, err := s.sessionRepo.FindSessionByTokenHash(ctx, utils.HashSessionToken(rawToken))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Already gone; logout is idempotent.
			return nil
		}
		return fmt.Errorf("failed to look up session for revocation: %w", err)
	}
	if err := s.sessionRepo.DeleteSession(ctx, session.SessionID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// PurgeExpired removes sessions past their expiry.
func (s *sessionService) PurgeExpired(ctx context.Context) (int64, error) {
	removed, err := s.sessionRepo.DeleteExpiredSessions(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	return removed, nil
}

// googleOAuthHandlerService implements the GoogleOAuthHandlerSvcFacade.
type googleOAuthHandlerService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg *config.Config) portssvc.GoogleOAuthHandlerSvcFacade {
	return &googleOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// GenerateStateString creates a secure random string used as a CSRF token
// for the OAuth flow.
func (s *googleOAuthHandlerService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthHandlerService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *googleOAuthHandlerService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// ValidateGoogleIDToken validates an ID token received from Google and
// returns the payload if valid.
func (s *googleOAuthHandlerService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	return payload, nil
}
