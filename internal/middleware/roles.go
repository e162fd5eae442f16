package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taleskillz/data_collect_app/internal/core/domain"
)

// RequireRoles aborts with 403 unless the authenticated user's role is in
// the allow-list. It assumes AuthMiddleware already ran; a missing user is
// a 401. Per-route allow-lists live at route registration instead of being
// re-implemented inside each handler.
func RequireRoles(allowed ...domain.Role) gin.HandlerFunc {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		user, ok := GetCurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		if _, ok := allowedSet[user.Role]; !ok {
			logger.Warn("Insufficient permissions",
				slog.String("role", string(user.Role)),
				slog.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}
