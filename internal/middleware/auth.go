package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/taleskillz/data_collect_app/internal/core/domain"
	portssvc "github.com/taleskillz/data_collect_app/internal/core/ports/services"
)

// AuthMiddleware resolves the current user either from the session cookie
// (server-side sessions table) or from a Bearer JWT, and rejects the
// request with 401 when neither yields an active account.
func AuthMiddleware(jwtSecret string, cookieName string, sessions portssvc.SessionSvcFacade, users portssvc.UserSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		user, err := resolveUser(c, jwtSecret, cookieName, sessions, users)
		if err != nil {
			logger.Warn("Authentication failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		if !user.IsActive() {
			logger.Warn("Inactive account attempted access", slog.String("user_id", user.UserID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account is not active"})
			return
		}

		// Store the user in the context and enrich the logger with identity.
		ctxWithUser := context.WithValue(c.Request.Context(), currentUserKey, user)
		enrichedLogger := logger.With(
			slog.String("user_id", user.UserID),
			slog.String("role", string(user.Role)),
		)
		ctxWithLoggerAndUser := context.WithValue(ctxWithUser, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctxWithLoggerAndUser)

		c.Next()
	}
}

func resolveUser(c *gin.Context, jwtSecret string, cookieName string, sessions portssvc.SessionSvcFacade, users portssvc.UserSvcFacade) (domain.User, error) {
	// Session cookie first: browsers carry it on every request.
	if rawToken, err := c.Cookie(cookieName); err == nil && rawToken != "" {
		user, err := sessions.ResolveSession(c.Request.Context(), rawToken)
		if err != nil {
			return domain.User{}, err
		}
		return *user, nil
	}

	// Fall back to a Bearer access token.
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return domain.User{}, errors.New("no session cookie or authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return domain.User{}, errors.New("authorization header format must be Bearer {token}")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return domain.User{}, err
	}
	if !token.Valid || claims.Subject == "" {
		return domain.User{}, errors.New("invalid token claims")
	}

	user, err := users.GetUserByID(c.Request.Context(), claims.Subject)
	if err != nil {
		return domain.User{}, err
	}
	return *user, nil
}
