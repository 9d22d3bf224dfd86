package middleware

import (
	"github.com/festra/event_registration_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the
// request context.
const userIDKey = contextKey("userID")

// currentUserKey is the key used to store the authenticated user in the Gin
// context.
const currentUserKey = "currentUser"

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if user, ok := GetCurrentUser(c); ok {
		return user.UserID, true
	}
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	return userID, ok
}

// GetCurrentUser retrieves the authenticated user loaded by the auth
// middleware from the Gin context.
func GetCurrentUser(c *gin.Context) (*domain.User, bool) {
	userVal, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := userVal.(*domain.User)
	if !ok {
		return nil, false
	}
	return user, true
}
