package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/taleskillz/data_collect_app/internal/core/domain"
)

// currentUserKey is the key used to store the authenticated user in the
// request context.
const currentUserKey = contextKey("currentUser")

// GetCurrentUser retrieves the authenticated user resolved by the auth
// middleware. It returns the user and a boolean indicating if it was found.
func GetCurrentUser(c *gin.Context) (domain.User, bool) {
	userVal := c.Request.Context().Value(currentUserKey)
	if userVal == nil {
		return domain.User{}, false
	}
	user, ok := userVal.(domain.User)
	if !ok {
		return domain.User{}, false
	}
	return user, true
}
